package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/config"
	"github.com/marcus/campaign-compliance/internal/fetch"
	"github.com/marcus/campaign-compliance/internal/llm"
	"github.com/marcus/campaign-compliance/internal/observability"
	"github.com/marcus/campaign-compliance/internal/verify"
)

// newTestServer builds a Server without a database or LLM client, with
// regulatory lookups pointed at unreachable endpoints.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	passwords := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwords.HashPassword("correct horse")
	require.NoError(t, err)

	return &Server{
		advisor: llm.NewAdvisor(nil),
		regulatory: verify.NewRegulatoryVerifier(
			verify.WithCFPBURL("http://127.0.0.1:1"),
			verify.WithFCCURL("http://127.0.0.1:1"),
		),
		events:            observability.NewEventLog(io.Discard),
		fetchOpts:         fetch.DefaultOptions(),
		jwtService:        NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}),
		passwords:         passwords,
		adminUser:         "admin",
		adminPasswordHash: hash,
	}
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

const cleanSubmission = `{
	"brand_name": "Acme Dental",
	"use_case": "appointment reminders",
	"sample_messages": ["Your appointment is tomorrow at 2pm. Reply STOP to opt out."],
	"opt_in_description": "customers sign up through the web form",
	"privacy_url": "https://acme.example.com/privacy",
	"terms_url": "https://acme.example.com/terms"
}`

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHandleComplianceCheck_CleanSubmission(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/compliance/check", cleanSubmission)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "approvable", result["status"])
	assert.Equal(t, float64(100), result["score"])
	assert.Empty(t, result["violations"])
}

func TestHandleComplianceCheck_UnknownFieldRejected(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/compliance/check", `{"brand_nmae": "Acme"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBatchMessages(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"messages": [
			"Your order shipped. Reply STOP to opt out.",
			"Your order shipped."
		],
		"context": {
			"brand_name": "Acme",
			"privacy_url": "https://acme.example.com/privacy",
			"terms_url": "https://acme.example.com/terms"
		}
	}`
	rec := doJSON(t, s, http.MethodPost, "/api/compliance/batch-messages", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			SubmissionID string `json:"submission_id"`
			Status       string `json:"status"`
		} `json:"results"`
		Summary struct {
			Total           int     `json:"total_communications"`
			ApprovableCount int     `json:"approvable_count"`
			ApprovalRate    float64 `json:"approval_rate"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "message_1", resp.Results[0].SubmissionID)
	assert.Equal(t, "approvable", resp.Results[0].Status)
	assert.Equal(t, "rejection_likely", resp.Results[1].Status)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.ApprovableCount)
	assert.InDelta(t, 50.0, resp.Summary.ApprovalRate, 0.001)
}

func TestHandleRecommendations(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/compliance/recommendations", `{"brand_name": "Acme"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recommendations []string `json:"recommendations"`
		Score           int      `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Recommendations, "Provide valid Privacy Policy URL")
	assert.Contains(t, resp.Recommendations, "Provide valid Terms & Conditions URL")
	assert.Equal(t, 70, resp.Score)
}

func TestHandleScrapeWebsite_MissingURL(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/scrape-website", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidateData(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"company_ein": "12-3456789",
		"support_phone": "415-555-0123",
		"support_email": "team@acme.com",
		"brand_website": "https://www.acme.com"
	}`
	rec := doJSON(t, s, http.MethodPost, "/api/validate-data", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var results map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.True(t, results["ein_valid"])
	assert.True(t, results["phone_valid"])
	assert.True(t, results["email_valid"])
	assert.True(t, results["email_domain_match"])
	_, hasAddress := results["address_valid"]
	assert.False(t, hasAddress, "absent fields should not be validated")
}

func TestHandleVerifyAddress(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"street_address": "123 Main Street, Springfield, IL 62704",
		"website_content": "Visit us at 123 Main St",
		"privacy_content": "Acme, 62704"
	}`
	rec := doJSON(t, s, http.MethodPost, "/api/verify-address", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"address_found_on_website":true`)
}

func TestHandleChat_FallbackWithoutLLM(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/chat", `{"message": "what is 10dlc?"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "10DLC registration")
	assert.NotEmpty(t, resp["session_id"])
}

func TestHandleUserStats_NoDatabase(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/user/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_submissions":0`)
}

func TestAdminLogin_And_Submissions(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/admin/login",
		`{"username": "admin", "password": "correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authRec := httptest.NewRecorder()
	s.router().ServeHTTP(authRec, req)

	assert.Equal(t, http.StatusOK, authRec.Code)
	assert.Contains(t, authRec.Body.String(), `"submissions":[]`)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/admin/login",
		`{"username": "admin", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminSubmissions_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/admin/submissions", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	badRec := httptest.NewRecorder()
	s.router().ServeHTTP(badRec, req)
	assert.Equal(t, http.StatusUnauthorized, badRec.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	_, ok = BearerToken("abc123")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}
