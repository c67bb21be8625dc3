package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcus/campaign-compliance/internal/types"
	"github.com/marcus/campaign-compliance/internal/verify"
)

const chatSystemPrompt = `You are an A2P 10DLC Compliance Expert with deep knowledge of:
- A2P (Application-to-Person) messaging compliance
- 10DLC (10-Digit Long Code) registration requirements
- TCPA (Telephone Consumer Protection Act) regulations
- FDCPA (Fair Debt Collection Practices Act) compliance
- CFPB (Consumer Financial Protection Bureau) guidelines
- Carrier compliance requirements (Verizon, AT&T, T-Mobile)
- Message content analysis and optimization
- Brand registration and campaign approval processes

You are professional, knowledgeable, and focused on compliance best practices.
Answer questions about A2P compliance, but also guide users to start their formal compliance analysis by typing 'start' when appropriate.
Keep responses concise and actionable.`

// Advisor answers compliance questions and runs LLM-assisted business
// verification. A nil Client is allowed: chat falls back to canned answers
// and verification reports itself as skipped.
type Advisor struct {
	client Client
}

// NewAdvisor returns an Advisor backed by the given client, which may be
// nil when no API key is configured.
func NewAdvisor(client Client) *Advisor {
	return &Advisor{client: client}
}

// Chat answers one user message. LLM failures degrade to the keyword-based
// fallback rather than erroring, so the chat surface stays responsive.
func (a *Advisor) Chat(ctx context.Context, userMessage string) string {
	if a.client != nil {
		prompt := chatSystemPrompt + "\n\nUser question: " + userMessage
		if reply, err := a.client.GenerateContent(ctx, prompt, TierLite); err == nil {
			return reply
		}
	}
	return fallbackResponse(userMessage)
}

func fallbackResponse(userMessage string) string {
	lower := strings.ToLower(userMessage)

	switch {
	case containsAnyTerm(lower, "10dlc", "10-dlc", "ten dlc"):
		return "10DLC registration is required for business messaging. I can help analyze your compliance setup. Type 'start' to begin your submission."
	case containsAnyTerm(lower, "tcpa", "consent", "opt-in"):
		return "TCPA requires proper consent and opt-out mechanisms. I can review your opt-in processes. Type 'start' for analysis."
	case containsAnyTerm(lower, "fdcpa", "debt", "collection"):
		return "FDCPA has strict rules for debt collection messaging. I can analyze your compliance. Type 'start' to begin."
	case containsAnyTerm(lower, "help", "what", "how"):
		return "I'm an A2P 10DLC compliance expert. I analyze messaging campaigns for regulatory compliance. Type 'start' to begin."
	default:
		return "I can help with A2P compliance questions and analyze your messaging setup. Type 'start' to begin your compliance review."
	}
}

func containsAnyTerm(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// VerifyBusiness asks the model to assess the business for regulatory red
// flags and parses its JSON verdict. Without a client the verification is
// skipped, never failed.
func (a *Advisor) VerifyBusiness(ctx context.Context, sub types.Submission) verify.Verification {
	if a.client == nil {
		return verify.Verification{Status: "skipped", IssuesFound: false}
	}

	prompt := fmt.Sprintf(`You are a compliance verification specialist. Analyze this business information for potential regulatory or compliance issues:

Business Name: %s
Address: %s
Phone: %s
Website: %s

Check for:
1. Known regulatory violations or enforcement actions
2. Consumer complaints or legal issues
3. Debt collection or financial services violations
4. TCPA, FDCPA, or CFPB enforcement actions
5. State or federal sanctions
6. Business license issues
7. Bankruptcy or financial distress

Respond in JSON format:
{
    "issues_found": true/false,
    "risk_level": "low/medium/high",
    "issues": ["list of specific issues found"],
    "recommendations": ["list of recommendations"],
    "confidence": "low/medium/high"
}

If no issues are found, return issues_found: false with empty arrays.`,
		sub.BrandName, sub.StreetAddress, sub.SupportPhone, sub.BrandWebsite)

	raw, err := a.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return verify.Verification{Status: "error", IssuesFound: false, Error: err.Error()}
	}

	var result verify.Verification
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		// Unparseable verdicts degrade to a low-confidence pass.
		return verify.Verification{
			Status:          "completed",
			IssuesFound:     false,
			RiskLevel:       "unknown",
			Issues:          []string{},
			Recommendations: []string{},
			Confidence:      "low",
			BusinessName:    sub.BrandName,
		}
	}

	result.Status = "completed"
	result.BusinessName = sub.BrandName
	return result
}

// RiskScoreAdjustment converts a verification verdict into a compliance
// score delta.
func RiskScoreAdjustment(result verify.Verification) int {
	if !result.IssuesFound {
		return 0
	}
	switch result.RiskLevel {
	case "high":
		return -25
	case "medium":
		return -10
	default:
		return -5
	}
}

// FormatVerificationReport renders a verification verdict for display.
func FormatVerificationReport(result verify.Verification) string {
	switch result.Status {
	case "skipped":
		return "Business verification skipped"
	case "error":
		return fmt.Sprintf("Business verification failed: %s", result.Error)
	}

	if !result.IssuesFound {
		return "No compliance issues found for this business"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Business verification found %d issue(s) - Risk Level: %s\n",
		len(result.Issues), strings.ToUpper(result.RiskLevel))
	for i, issue := range result.Issues {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, issue)
	}
	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
	}
	return sb.String()
}
