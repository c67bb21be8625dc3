package scraping

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/textmatch"
)

// ProximityWindow is the maximum character distance between a debt term and
// a marketing term for the pair to count as a proximity finding.
const ProximityWindow = 200

// Risk levels for the website analysis.
const (
	RiskHigh = "HIGH"
	RiskLow  = "LOW"
)

// Violation types reported by the analysis.
const (
	ViolationAutoFail  = "auto_fail_trigger"
	ViolationProximity = "debt_marketing_proximity"
)

// MatchLocation pinpoints one pattern occurrence for human review.
type MatchLocation struct {
	ViolationType     string `json:"violation_type"`
	Description       string `json:"description"`
	MatchedText       string `json:"matched_text,omitempty"`
	Context           string `json:"context,omitempty"`
	Section           string `json:"section,omitempty"`
	URL               string `json:"url,omitempty"`
	PageTitle         string `json:"page_title,omitempty"`
	CharacterPosition int    `json:"character_position"`

	// Set only for proximity findings.
	DebtMatch      *TermMatch `json:"debt_match,omitempty"`
	MarketingMatch *TermMatch `json:"marketing_match,omitempty"`
}

// TermMatch is one debt or marketing term occurrence.
type TermMatch struct {
	MatchedText string `json:"matched_text"`
	Context     string `json:"context"`
	Position    int    `json:"position"`
}

// Analysis is the outcome of scanning scraped website content.
type Analysis struct {
	Issues          []string        `json:"compliance_issues"`
	Locations       []MatchLocation `json:"violation_locations"`
	RiskLevel       string          `json:"risk_level"`
	DebtMatches     int             `json:"debt_matches_found"`
	MarketingMatches int            `json:"marketing_matches_found"`
	TotalViolations int             `json:"total_violations"`
}

// AnalyzeSite scans scraped content for auto-fail triggers with exact match
// locations, then looks for marketing language near debt content. It never
// fails: empty content simply yields an empty, low-risk analysis.
func AnalyzeSite(site *SiteData) *Analysis {
	analysis := &Analysis{Issues: []string{}, Locations: []MatchLocation{}}
	if site == nil {
		analysis.RiskLevel = RiskLow
		return analysis
	}

	content := strings.ToLower(site.TextContent)
	lowerSections := make(map[string]string, len(site.Sections))
	for name, text := range site.Sections {
		lowerSections[name] = strings.ToLower(text)
	}

	for i := range rules.SiteAnalysisPatterns {
		rule := &rules.SiteAnalysisPatterns[i]
		matches := textmatch.FindAll(rule.Regexp(), content, textmatch.PrimaryContextRadius)
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			analysis.Locations = append(analysis.Locations, MatchLocation{
				ViolationType:     ViolationAutoFail,
				Description:       rule.Description,
				MatchedText:       m.Text,
				Context:           fmt.Sprintf("...%s...", m.Context),
				Section:           sectionFor(rule.Regexp(), lowerSections),
				URL:               site.URL,
				PageTitle:         site.Title,
				CharacterPosition: m.Offset,
			})
		}
		last := matches[len(matches)-1]
		analysis.Issues = append(analysis.Issues,
			fmt.Sprintf("Auto-fail trigger detected: %s - '%s'", rule.Description, last.Text))
	}

	debtMatches := findTermMatches(rules.DebtTermPatterns, content)
	marketingMatches := findTermMatches(rules.MarketingTermPatterns, content)
	analysis.DebtMatches = len(debtMatches)
	analysis.MarketingMatches = len(marketingMatches)

	// Each debt occurrence pairs with at most one nearby marketing
	// occurrence.
	for _, debt := range debtMatches {
		for _, marketing := range marketingMatches {
			if abs(debt.Position-marketing.Position) < ProximityWindow {
				d, m := debt, marketing
				analysis.Locations = append(analysis.Locations, MatchLocation{
					ViolationType:  ViolationProximity,
					Description:    "Marketing language detected near debt content",
					URL:            site.URL,
					PageTitle:      site.Title,
					DebtMatch:      &d,
					MarketingMatch: &m,
				})
				analysis.Issues = append(analysis.Issues,
					fmt.Sprintf("Marketing + debt content: '%s' near '%s'", marketing.MatchedText, debt.MatchedText))
				break
			}
		}
	}

	analysis.TotalViolations = len(analysis.Locations)
	analysis.RiskLevel = RiskLow
	if analysis.TotalViolations > 0 {
		analysis.RiskLevel = RiskHigh
	}
	return analysis
}

func findTermMatches(patterns []string, content string) []TermMatch {
	var found []TermMatch
	for _, pattern := range patterns {
		re := regexp.MustCompile(`(?i)` + pattern)
		for _, m := range textmatch.FindAll(re, content, textmatch.SecondaryContextRadius) {
			found = append(found, TermMatch{
				MatchedText: m.Text,
				Context:     fmt.Sprintf("...%s...", m.Context),
				Position:    m.Offset,
			})
		}
	}
	return found
}

func sectionFor(re *regexp.Regexp, sections map[string]string) string {
	// The "Main Content" bucket holds the full page text and would match
	// everything; only consult it as the fallback.
	filtered := make(map[string]string, len(sections))
	for name, text := range sections {
		if name == "Main Content" {
			continue
		}
		filtered[name] = text
	}
	return textmatch.SectionFor(re, filtered)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
