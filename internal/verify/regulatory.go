package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Public regulatory complaint databases.
const (
	CFPBBaseURL = "https://www.consumerfinance.gov/data-research/consumer-complaints/search/api/v1/"
	FCCBaseURL  = "https://opendata.fcc.gov/resource/3xyp-aqkj.json"

	regulatoryTimeout = 15 * time.Second
)

// Complaint is one record from a regulatory database, kept as raw JSON since
// the CFPB and FCC schemas differ and we only count records.
type Complaint = json.RawMessage

// Verification is the outcome of checking a brand against regulatory
// databases. It informs the human reviewer; it does not change the
// compliance score.
type Verification struct {
	Status          string   `json:"verification_status"`
	IssuesFound     bool     `json:"issues_found"`
	RiskLevel       string   `json:"risk_level,omitempty"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Confidence      string   `json:"confidence,omitempty"`
	BusinessName    string   `json:"business_name,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// RegulatoryVerifier queries the CFPB consumer complaint database and the
// FCC consumer complaints dataset for a brand name.
type RegulatoryVerifier struct {
	client  *http.Client
	cfpbURL string
	fccURL  string
}

// RegulatoryOption configures a RegulatoryVerifier.
type RegulatoryOption func(*RegulatoryVerifier)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) RegulatoryOption {
	return func(v *RegulatoryVerifier) { v.client = client }
}

// WithCFPBURL overrides the CFPB endpoint, for tests.
func WithCFPBURL(u string) RegulatoryOption {
	return func(v *RegulatoryVerifier) { v.cfpbURL = u }
}

// WithFCCURL overrides the FCC endpoint, for tests.
func WithFCCURL(u string) RegulatoryOption {
	return func(v *RegulatoryVerifier) { v.fccURL = u }
}

// NewRegulatoryVerifier returns a verifier backed by the public CFPB and FCC
// endpoints.
func NewRegulatoryVerifier(opts ...RegulatoryOption) *RegulatoryVerifier {
	v := &RegulatoryVerifier{
		client:  &http.Client{Timeout: regulatoryTimeout},
		cfpbURL: CFPBBaseURL,
		fccURL:  FCCBaseURL,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CFPBComplaints returns consumer complaints filed against the company with
// the Consumer Financial Protection Bureau.
func (v *RegulatoryVerifier) CFPBComplaints(ctx context.Context, company string, size int) ([]Complaint, error) {
	params := url.Values{
		"company": {company},
		"field":   {"all"},
		"size":    {strconv.Itoa(size)},
		"format":  {"json"},
		"no_aggs": {"true"},
	}

	var payload struct {
		Hits struct {
			Hits []Complaint `json:"hits"`
		} `json:"hits"`
	}
	if err := v.getJSON(ctx, v.cfpbURL, params, &payload); err != nil {
		return nil, fmt.Errorf("cfpb query for %q: %w", company, err)
	}
	return payload.Hits.Hits, nil
}

// FCCComplaints returns records from the FCC consumer complaints dataset
// matching the company name.
func (v *RegulatoryVerifier) FCCComplaints(ctx context.Context, company string, limit int) ([]Complaint, error) {
	params := url.Values{
		"$limit": {strconv.Itoa(limit)},
		"$q":     {company},
	}

	var records []Complaint
	if err := v.getJSON(ctx, v.fccURL, params, &records); err != nil {
		return nil, fmt.Errorf("fcc query for %q: %w", company, err)
	}
	return records, nil
}

// VerifyBusiness checks the brand against both databases. Lookup failures
// are tolerated: a database that cannot be reached simply contributes no
// issues, and the verification still completes.
func (v *RegulatoryVerifier) VerifyBusiness(ctx context.Context, brandName string) Verification {
	var issues []string

	if complaints, err := v.CFPBComplaints(ctx, brandName, 5); err == nil && len(complaints) > 0 {
		issues = append(issues, fmt.Sprintf("Found %d CFPB complaints", len(complaints)))
	}
	if complaints, err := v.FCCComplaints(ctx, brandName, 5); err == nil && len(complaints) > 0 {
		issues = append(issues, fmt.Sprintf("Found %d FCC complaints", len(complaints)))
	}

	return Verification{
		Status:          "completed",
		IssuesFound:     len(issues) > 0,
		RiskLevel:       "low",
		Issues:          issues,
		Recommendations: []string{},
		Confidence:      "high",
		BusinessName:    brandName,
	}
}

// RiskScoreAdjustment converts regulatory findings into a compliance score
// adjustment. Findings are advisory for now, so the adjustment is zero.
func (v *RegulatoryVerifier) RiskScoreAdjustment(Verification) int {
	return 0
}

func (v *RegulatoryVerifier) getJSON(ctx context.Context, base string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
