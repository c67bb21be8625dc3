package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/marcus/campaign-compliance/internal/db"
	"github.com/marcus/campaign-compliance/internal/engine"
	"github.com/marcus/campaign-compliance/internal/schemas"
	"github.com/marcus/campaign-compliance/internal/scraping"
	"github.com/marcus/campaign-compliance/internal/types"
	"github.com/marcus/campaign-compliance/internal/verify"
)

// decodeSubmission reads and schema-validates a submission payload.
func decodeSubmission(r *http.Request) (types.Submission, error) {
	var sub types.Submission

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return sub, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}
	if err := schemas.ValidateSubmission(body); err != nil {
		return sub, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := json.Unmarshal(body, &sub); err != nil {
		return sub, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := sub.Validate(); err != nil {
		return sub, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return sub, nil
}

// handleAnalyzeSubmission runs the full analysis: scrape the brand website,
// evaluate the rules, verify the business against regulatory databases, and
// store the outcome.
func (s *Server) handleAnalyzeSubmission(w http.ResponseWriter, r *http.Request) {
	clientIP := s.clientIP(r)
	sessionID := db.SessionID(clientIP)

	sub, err := decodeSubmission(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.events.SessionStart(sessionID, sub)

	pkg, err := scraping.BuildPackage(r.Context(), sub, s.fetchOpts)
	if err != nil {
		s.events.WebsiteScraping(sessionID, sub.BrandWebsite, false, err)
		s.events.Error(sessionID, "website_scraping", err.Error())
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"error":      fmt.Sprintf("Analysis failed: %v", err),
			"session_id": sessionID,
		})
		return
	}
	s.events.WebsiteScraping(sessionID, sub.BrandWebsite, true, nil)

	result := engine.Evaluate(pkg.Submission)

	// Regulatory findings adjust the score and surface as extra violations,
	// but never change the rule engine's own verdict logic.
	verification := s.regulatory.VerifyBusiness(r.Context(), sub.BrandName)
	if verification.IssuesFound {
		adjustment := s.regulatory.RiskScoreAdjustment(verification)
		result.Score += adjustment
		if result.Score < 0 {
			result.Score = 0
		}
		for _, issue := range verification.Issues {
			result.Violations = append(result.Violations, types.Violation{
				Category: "regulatory",
				Message:  fmt.Sprintf("Regulatory Check: %s", issue),
			})
		}
	}

	s.events.ComplianceResult(sessionID, &result)

	var submissionID string
	if s.db != nil {
		submissionID, err = s.db.StoreSubmission(r.Context(), clientIP, pkg.Submission, &result, &verification)
		if err != nil {
			s.events.Error(sessionID, "submission_storage", err.Error())
		}
	}

	var stats *db.SubmissionStats
	if s.db != nil {
		if userStats, statsErr := s.db.GetSubmissionStats(r.Context(), clientIP); statsErr == nil {
			stats = userStats
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"submission_package":    pkg,
		"compliance_result":     result,
		"business_verification": verification,
		"recommendation":        engine.FinalRecommendationFor(result),
		"submission_id":         orNil(submissionID),
		"user_stats":            stats,
		"session_id":            sessionID,
	})
}

// handleComplianceCheck evaluates a submission as-is, without scraping.
func (s *Server) handleComplianceCheck(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result := engine.Evaluate(sub)
	s.jsonResponse(w, http.StatusOK, result)
}

// batchRequest is a set of messages sharing one submission context.
type batchRequest struct {
	Messages []string         `json:"messages"`
	Context  types.Submission `json:"context"`
}

// handleBatchMessages evaluates each message independently against the
// shared context and returns per-message results plus the aggregate summary.
func (s *Server) handleBatchMessages(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	subs := make([]types.Submission, 0, len(req.Messages))
	for i, message := range req.Messages {
		sub := req.Context
		sub.ID = fmt.Sprintf("message_%d", i+1)
		sub.SampleMessages = []string{message}
		subs = append(subs, sub)
	}

	results := engine.EvaluateBatch(subs)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": results,
		"summary": engine.Summarize(results),
	})
}

// handleRecommendations returns just the remediation advice for a submission.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result := engine.Evaluate(sub)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendations": result.Recommendations,
		"violations":      result.ViolationMessages(),
		"score":           result.Score,
		"status":          result.Status,
	})
}

// handleScrapeWebsite scrapes one URL and returns the content with its
// compliance analysis.
func (s *Server) handleScrapeWebsite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}

	site, err := scraping.ScrapeSite(r.Context(), req.URL, s.fetchOpts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"website_data":        site,
		"compliance_analysis": scraping.AnalyzeSite(site),
	})
}

// handleValidateData checks field formats. Only fields present in the
// request appear in the response.
func (s *Server) handleValidateData(w http.ResponseWriter, r *http.Request) {
	var sub types.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	results := map[string]bool{}
	if sub.CompanyEIN != "" {
		results["ein_valid"] = verify.ValidEIN(sub.CompanyEIN)
	}
	if sub.StreetAddress != "" {
		results["address_valid"] = verify.ValidAddress(sub.StreetAddress)
	}
	if sub.SupportEmail != "" {
		results["email_valid"] = verify.ValidEmail(sub.SupportEmail)
		results["email_domain_match"] = verify.EmailDomainMatches(sub.SupportEmail, sub.BrandWebsite)
	}
	if sub.SupportPhone != "" {
		results["phone_valid"] = verify.ValidPhone(sub.SupportPhone)
	}

	s.jsonResponse(w, http.StatusOK, results)
}

// handleVerifyAddress checks whether the street address appears in the
// supplied website and policy content.
func (s *Server) handleVerifyAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StreetAddress  string `json:"street_address"`
		WebsiteContent string `json:"website_content"`
		PrivacyContent string `json:"privacy_content"`
		TermsContent   string `json:"terms_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	found := verify.AddressAppearsIn(req.StreetAddress,
		req.WebsiteContent, req.PrivacyContent, req.TermsContent)

	s.jsonResponse(w, http.StatusOK, map[string]bool{"address_found_on_website": found})
}

// handleChat answers a compliance question via the advisor.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := db.SessionID(s.clientIP(r))

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	reply := s.advisor.Chat(r.Context(), req.Message)
	s.events.ChatInteraction(sessionID, req.Message, reply)

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"response":     reply,
		"user_message": req.Message,
		"session_id":   sessionID,
	})
}

// handleUserHistory returns the session's stored submissions and stats.
func (s *Server) handleUserHistory(w http.ResponseWriter, r *http.Request) {
	clientIP := s.clientIP(r)

	submissions := []db.SubmissionRecord{}
	stats := &db.SubmissionStats{}
	if s.db != nil {
		if records, err := s.db.GetUserSubmissions(r.Context(), clientIP, 10); err == nil && records != nil {
			submissions = records
		}
		if userStats, err := s.db.GetSubmissionStats(r.Context(), clientIP); err == nil {
			stats = userStats
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"submissions": submissions,
		"stats":       stats,
	})
}

// handleUserStats returns just the session's statistics.
func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats := &db.SubmissionStats{}
	if s.db != nil {
		if userStats, err := s.db.GetSubmissionStats(r.Context(), s.clientIP(r)); err == nil {
			stats = userStats
		}
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleAdminLogin verifies admin credentials and returns a JWT.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if s.adminUser == "" || s.adminPasswordHash == "" ||
		req.Username != s.adminUser ||
		!s.passwords.VerifyPassword(req.Password, s.adminPasswordHash) {
		err := &ErrInvalidCredentials{}
		s.jsonResponse(w, HTTPStatus(err), map[string]any{"success": false, "error": err.Error()})
		return
	}

	token, err := s.jwtService.GenerateToken(req.Username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// handleAdminSubmissions returns every stored submission, admin-only.
func (s *Server) handleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	if err := s.requireAdmin(r); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	submissions := []db.SubmissionRecord{}
	if s.db != nil {
		records, err := s.db.GetAllSubmissions(r.Context())
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		if records != nil {
			submissions = records
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"submissions": submissions})
}

// requireAdmin validates the bearer token on admin routes.
func (s *Server) requireAdmin(r *http.Request) error {
	token, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return &ErrNotAuthenticated{}
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil || claims.Username != s.adminUser {
		return &ErrNotAuthenticated{}
	}
	return nil
}

// orNil maps the empty string to JSON null.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
