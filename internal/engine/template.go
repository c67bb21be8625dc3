package engine

import (
	"fmt"
	"strings"

	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/types"
)

// checkTemplate is Section C: message template compliance. Every sample
// message is scanned independently; penalties accumulate per message and are
// not capped.
func checkTemplate(sub *types.Submission) ([]types.Violation, int) {
	var violations []types.Violation
	penalty := 0

	for i, message := range sub.SampleMessages {
		lower := strings.ToLower(message)

		for _, placeholder := range rules.ProhibitedPlaceholders {
			if strings.Contains(lower, placeholder) {
				violations = append(violations, types.Violation{
					Category: string(rules.CategoryTemplate),
					Message:  fmt.Sprintf("C2: Prohibited placeholder %s in message %d", placeholder, i+1),
					Penalty:  rules.PenaltyPlaceholder,
				})
				penalty += rules.PenaltyPlaceholder
			}
		}

		for _, term := range rules.ThreateningTerms {
			if strings.Contains(lower, term) {
				violations = append(violations, types.Violation{
					Category: string(rules.CategoryTemplate),
					Message:  fmt.Sprintf("C3: Threatening language '%s' in message %d", term, i+1),
					Penalty:  rules.PenaltyThreatening,
				})
				penalty += rules.PenaltyThreatening
			}
		}
	}

	return violations, penalty
}
