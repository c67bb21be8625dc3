package engine

import (
	"strings"

	"github.com/marcus/campaign-compliance/internal/types"
)

// remediation pairs a violation-message substring with the fixed remediation
// text to emit. Entries are tried in order and the first hit wins, so the
// broad "terms" key must stay last.
var remediations = []struct {
	needle string
	advice string
}{
	{"third-party debt collection", "Remove all references to third-party debt collection from website"},
	{"stop instructions", "Include 'Reply STOP to opt out' in initial message"},
	{"privacy policy", "Provide valid Privacy Policy URL"},
	{"terms", "Provide valid Terms & Conditions URL"},
}

// recommendationsFor maps violations to actionable remediation strings.
// Violations with no known remediation are silently dropped. The result is
// deduplicated; callers must not rely on its order.
func recommendationsFor(violations []types.Violation) []string {
	seen := make(map[string]bool)
	var recs []string

	for _, v := range violations {
		lower := strings.ToLower(v.Message)
		for _, r := range remediations {
			if strings.Contains(lower, r.needle) {
				if !seen[r.advice] {
					seen[r.advice] = true
					recs = append(recs, r.advice)
				}
				break
			}
		}
	}

	if recs == nil {
		recs = []string{}
	}
	return recs
}
