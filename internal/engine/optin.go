package engine

import (
	"strings"

	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/textmatch"
	"github.com/marcus/campaign-compliance/internal/types"
)

// disallowedOptIn pairs each rejected consent phrasing with its violation
// message.
var disallowedOptIn = []struct {
	Literal string
	Message string
}{
	{rules.OptInBusinessRelationship, "B1: 'Existing business relationship' is not sufficient for SMS consent"},
	{rules.OptInCollectedDuringCalls, "B1: Phone number collection during calls is non-compliant"},
}

// checkOptIn is Section B: opt-in validation. It rejects consent models that
// do not satisfy TCPA express-consent requirements and verifies that the
// initial message carries STOP instructions.
func checkOptIn(sub *types.Submission) ([]types.Violation, int) {
	var violations []types.Violation
	penalty := 0

	// One hit per disallowed phrasing, with the surrounding description text
	// attached for review.
	for _, rule := range disallowedOptIn {
		matches := textmatch.FindAllLiteral(sub.OptInDescription, rule.Literal, textmatch.SecondaryContextRadius)
		if len(matches) == 0 {
			continue
		}
		m := matches[0]
		offset := m.Offset
		violations = append(violations, types.Violation{
			Category:    string(rules.CategoryOptIn),
			Message:     rule.Message,
			MatchedText: m.Text,
			Offset:      &offset,
			Context:     m.Context,
			Penalty:     rules.PenaltyOptInMethod,
		})
		penalty += rules.PenaltyOptInMethod
	}

	// Only the first CheckFirstNMessages messages need STOP language. When
	// no sample messages exist the check is skipped, not penalized.
	limit := rules.CheckFirstNMessages
	if limit > len(sub.SampleMessages) {
		limit = len(sub.SampleMessages)
	}
	for i := 0; i < limit; i++ {
		if !strings.Contains(strings.ToLower(sub.SampleMessages[i]), rules.StopKeyword) {
			violations = append(violations, types.Violation{
				Category: string(rules.CategoryOptIn),
				Message:  "B1: Missing STOP instructions in initial message",
				Penalty:  rules.PenaltyMissingStop,
			})
			penalty += rules.PenaltyMissingStop
		}
	}

	return violations, penalty
}
