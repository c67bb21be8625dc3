package engine

import (
	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/types"
)

// checkLegal is Section E: terms and privacy validation. The two checks are
// independent; both can fire.
func checkLegal(sub *types.Submission) ([]types.Violation, int) {
	var violations []types.Violation
	penalty := 0

	if sub.PrivacyURL == "" {
		violations = append(violations, types.Violation{
			Category: string(rules.CategoryLegal),
			Message:  "E1: Privacy Policy URL missing",
			Penalty:  rules.PenaltyMissingPrivacy,
		})
		penalty += rules.PenaltyMissingPrivacy
	}

	if sub.TermsURL == "" {
		violations = append(violations, types.Violation{
			Category: string(rules.CategoryLegal),
			Message:  "E1: Terms & Conditions URL missing",
			Penalty:  rules.PenaltyMissingTerms,
		})
		penalty += rules.PenaltyMissingTerms
	}

	return violations, penalty
}
