package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcus/campaign-compliance/internal/types"
	"github.com/marcus/campaign-compliance/internal/verify"
)

type stubClient struct {
	content string
	json    string
	err     error
}

func (s *stubClient) GenerateContent(context.Context, string, ModelTier) (string, error) {
	return s.content, s.err
}

func (s *stubClient) GenerateJSON(context.Context, string, ModelTier) (string, error) {
	return s.json, s.err
}

func (s *stubClient) Close() error { return nil }

func TestChat_UsesClient(t *testing.T) {
	advisor := NewAdvisor(&stubClient{content: "10DLC registration takes 1-2 weeks."})

	reply := advisor.Chat(context.Background(), "how long does registration take?")

	assert.Equal(t, "10DLC registration takes 1-2 weeks.", reply)
}

func TestChat_FallsBackOnError(t *testing.T) {
	advisor := NewAdvisor(&stubClient{err: fmt.Errorf("quota exceeded")})

	reply := advisor.Chat(context.Background(), "tell me about tcpa consent")

	assert.Contains(t, reply, "TCPA requires proper consent")
}

func TestChat_NilClientUsesFallback(t *testing.T) {
	advisor := NewAdvisor(nil)

	assert.Contains(t, advisor.Chat(context.Background(), "what is 10dlc?"), "10DLC registration")
	assert.Contains(t, advisor.Chat(context.Background(), "debt collection rules?"), "FDCPA")
	assert.Contains(t, advisor.Chat(context.Background(), "hello"), "Type 'start'")
}

func TestVerifyBusiness_ParsesVerdict(t *testing.T) {
	advisor := NewAdvisor(&stubClient{json: `{
		"issues_found": true,
		"risk_level": "high",
		"issues": ["CFPB enforcement action in 2023"],
		"recommendations": ["Resolve outstanding enforcement action"],
		"confidence": "medium"
	}`})

	result := advisor.VerifyBusiness(context.Background(), types.Submission{BrandName: "Acme Collections"})

	assert.Equal(t, "completed", result.Status)
	assert.True(t, result.IssuesFound)
	assert.Equal(t, "high", result.RiskLevel)
	assert.Equal(t, "Acme Collections", result.BusinessName)
}

func TestVerifyBusiness_NilClientSkips(t *testing.T) {
	advisor := NewAdvisor(nil)

	result := advisor.VerifyBusiness(context.Background(), types.Submission{BrandName: "Acme"})

	assert.Equal(t, "skipped", result.Status)
	assert.False(t, result.IssuesFound)
}

func TestVerifyBusiness_UnparseableVerdictDegrades(t *testing.T) {
	advisor := NewAdvisor(&stubClient{json: "the model rambled instead of emitting JSON"})

	result := advisor.VerifyBusiness(context.Background(), types.Submission{BrandName: "Acme"})

	assert.Equal(t, "completed", result.Status)
	assert.False(t, result.IssuesFound)
	assert.Equal(t, "low", result.Confidence)
}

func TestRiskScoreAdjustment(t *testing.T) {
	assert.Equal(t, 0, RiskScoreAdjustment(verify.Verification{IssuesFound: false, RiskLevel: "high"}))
	assert.Equal(t, -25, RiskScoreAdjustment(verify.Verification{IssuesFound: true, RiskLevel: "high"}))
	assert.Equal(t, -10, RiskScoreAdjustment(verify.Verification{IssuesFound: true, RiskLevel: "medium"}))
	assert.Equal(t, -5, RiskScoreAdjustment(verify.Verification{IssuesFound: true, RiskLevel: "low"}))
}

func TestFormatVerificationReport(t *testing.T) {
	assert.Equal(t, "Business verification skipped",
		FormatVerificationReport(verify.Verification{Status: "skipped"}))
	assert.Contains(t,
		FormatVerificationReport(verify.Verification{Status: "error", Error: "timeout"}),
		"timeout")
	assert.Equal(t, "No compliance issues found for this business",
		FormatVerificationReport(verify.Verification{Status: "completed"}))

	report := FormatVerificationReport(verify.Verification{
		Status:          "completed",
		IssuesFound:     true,
		RiskLevel:       "medium",
		Issues:          []string{"FCC complaints on record"},
		Recommendations: []string{"Review messaging consent flow"},
	})
	assert.Contains(t, report, "Risk Level: MEDIUM")
	assert.Contains(t, report, "1. FCC complaints on record")
	assert.Contains(t, report, "- Review messaging consent flow")
}
