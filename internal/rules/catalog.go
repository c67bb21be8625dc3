// Package rules holds the static compliance rule catalog. The catalog is
// versioned as a whole, never mutated at runtime, and safe to share across
// concurrent evaluations.
package rules

import "regexp"

// Version identifies the rule set as a whole. Bump when any rule changes.
const Version = "v1.0"

// Category tags a rule with the submission facet it inspects. The order of
// these values is the canonical checker execution order.
type Category string

const (
	CategoryBrand      Category = "brand"
	CategoryOptIn      Category = "opt_in"
	CategoryTemplate   Category = "template"
	CategoryURL        Category = "url"
	CategoryLegal      Category = "legal"
	CategoryRegulatory Category = "regulatory"
)

// Categories lists every category in canonical order.
func Categories() []Category {
	return []Category{
		CategoryBrand,
		CategoryOptIn,
		CategoryTemplate,
		CategoryURL,
		CategoryLegal,
		CategoryRegulatory,
	}
}

// PatternRule is a regex-backed rule entry. Matching is case-insensitive.
type PatternRule struct {
	Pattern     string
	Description string
	Penalty     int
	re          *regexp.Regexp
}

// Regexp returns the compiled case-insensitive pattern.
func (r *PatternRule) Regexp() *regexp.Regexp {
	return r.re
}

func mustPattern(pattern, description string, penalty int) PatternRule {
	return PatternRule{
		Pattern:     pattern,
		Description: description,
		Penalty:     penalty,
		re:          regexp.MustCompile(`(?i)` + pattern),
	}
}

// Penalty points per rule family. Checker code references these rather than
// repeating magic numbers.
const (
	PenaltyThirdParty       = 30
	PenaltyAutoFail         = 30
	PenaltyUseCase          = 25
	PenaltyOptInMethod      = 25
	PenaltyMissingStop      = 15
	PenaltyPlaceholder      = 15
	PenaltyThreatening      = 10
	PenaltyURLShortener     = 20
	PenaltyDomainMismatch   = 5
	PenaltyDomainParseError = 3
	PenaltyMissingPrivacy   = 15
	PenaltyMissingTerms     = 15
)

// ThirdPartyPatterns flags language presenting the brand as a third-party
// debt collector. One violation fires per pattern regardless of how many
// times the pattern repeats on the site.
var ThirdPartyPatterns = []PatternRule{
	mustPattern(`third[-\s]?party debt collector`, "third-party debt collector", PenaltyThirdParty),
	mustPattern(`we collect debts on behalf of`, "third-party debt collection", PenaltyThirdParty),
	mustPattern(`collection agency`, "collection agency", PenaltyThirdParty),
	mustPattern(`debt collection agency`, "debt collection agency", PenaltyThirdParty),
}

// AutoFailTriggers are website content categories carriers reject outright.
var AutoFailTriggers = []PatternRule{
	mustPattern(`skip[-\s]?tracing`, "skip-tracing services", PenaltyAutoFail),
	mustPattern(`payday loan`, "payday loan content", PenaltyAutoFail),
	mustPattern(`personal loan solicitation`, "personal loan solicitation", PenaltyAutoFail),
	mustPattern(`lead generation`, "lead generation services", PenaltyAutoFail),
	mustPattern(`data brokerage`, "data brokerage services", PenaltyAutoFail),
	mustPattern(`crypto`, "cryptocurrency content", PenaltyAutoFail),
	mustPattern(`credit repair`, "credit repair services", PenaltyAutoFail),
}

// UseCaseTerms trigger a single flat penalty when any of them appears in the
// declared use case.
var UseCaseTerms = []string{"marketing", "lead generation", "loan offers"}

// Disallowed opt-in consent descriptions. Each is a literal substring match
// against the lower-cased opt-in description.
var (
	OptInBusinessRelationship = "existing business relationship"
	OptInCollectedDuringCalls = "customers provide number when calling"
)

// CheckFirstNMessages bounds the STOP-keyword check to the initial messages
// of the campaign. Carriers require opt-out language in the first message
// only; later messages are exempt.
const CheckFirstNMessages = 1

// StopKeyword is the opt-out keyword required in the initial message.
const StopKeyword = "stop"

// ProhibitedPlaceholders are template tokens carriers reject. {{brandname}}
// is deliberately absent: brand personalization is allowed.
var ProhibitedPlaceholders = []string{"{{url}}", "{{company}}", "{{agentname}}"}

// ThreateningTerms are phrases the FDCPA treats as coercive.
var ThreateningTerms = []string{"urgent", "final notice", "last attempt", "respond immediately"}

// URLShorteners are link-shortening domains banned in A2P campaigns.
var URLShorteners = []string{"bit.ly", "tinyurl", "t.co"}

// SiteAnalysisPatterns is the extended pattern set used by the website
// scraping analysis step. It overlaps the brand checker's families but adds
// descriptions suited to human review and two patterns that only matter when
// scanning a full site.
var SiteAnalysisPatterns = []PatternRule{
	mustPattern(`third[-\s]?party debt collector`, "third-party debt collector", PenaltyThirdParty),
	mustPattern(`we collect debts on behalf of`, "third-party debt collection", PenaltyThirdParty),
	mustPattern(`skip[-\s]?tracing`, "skip-tracing services", PenaltyAutoFail),
	mustPattern(`payday loan`, "payday loan content", PenaltyAutoFail),
	mustPattern(`lead generation`, "lead generation services", PenaltyAutoFail),
	mustPattern(`data brokerage`, "data brokerage services", PenaltyAutoFail),
	mustPattern(`debt collection agency`, "debt collection agency", PenaltyAutoFail),
	mustPattern(`collection services`, "collection services", PenaltyAutoFail),
	mustPattern(`crypto`, "cryptocurrency content", PenaltyAutoFail),
	mustPattern(`credit repair`, "credit repair services", PenaltyAutoFail),
}

// DebtTermPatterns and MarketingTermPatterns feed the debt/marketing
// proximity check during site analysis.
var (
	DebtTermPatterns      = []string{`\bdebt\b`, `\bcollection\b`, `\bowe\b`, `\bpayment\b`}
	MarketingTermPatterns = []string{`\bmarketing\b`, `\badvertising\b`, `\bpromotion\b`, `\bcampaign\b`}
)
