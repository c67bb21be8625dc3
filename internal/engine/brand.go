package engine

import (
	"fmt"
	"strings"

	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/textmatch"
	"github.com/marcus/campaign-compliance/internal/types"
)

// checkBrand is Section A: brand identity and category review. Website copy
// is scanned for third-party collector phrasing and the carrier auto-fail
// list; the declared use case is checked for prohibited campaign types.
func checkBrand(sub *types.Submission) ([]types.Violation, int) {
	var violations []types.Violation
	penalty := 0

	content := strings.ToLower(sub.WebsiteContent)

	// One hit per pattern: repeat occurrences of the same phrase on the
	// site do not stack within this section.
	for i := range rules.ThirdPartyPatterns {
		rule := &rules.ThirdPartyPatterns[i]
		matches := textmatch.FindAll(rule.Regexp(), content, textmatch.PrimaryContextRadius)
		if len(matches) == 0 {
			continue
		}
		m := matches[0]
		offset := m.Offset
		violations = append(violations, types.Violation{
			Category:    string(rules.CategoryBrand),
			Message:     "A1: Website references third-party debt collection (CRITICAL)",
			MatchedText: m.Text,
			Offset:      &offset,
			Context:     m.Context,
			Section:     textmatch.SectionFor(rule.Regexp(), sub.WebsiteSections),
			Penalty:     rule.Penalty,
		})
		penalty += rule.Penalty
	}

	for i := range rules.AutoFailTriggers {
		rule := &rules.AutoFailTriggers[i]
		matches := textmatch.FindAll(rule.Regexp(), content, textmatch.PrimaryContextRadius)
		if len(matches) == 0 {
			continue
		}
		m := matches[0]
		offset := m.Offset
		violations = append(violations, types.Violation{
			Category:    string(rules.CategoryBrand),
			Message:     fmt.Sprintf("A1: Website contains prohibited content: %s", rule.Description),
			MatchedText: m.Text,
			Offset:      &offset,
			Context:     m.Context,
			Section:     textmatch.SectionFor(rule.Regexp(), sub.WebsiteSections),
			Penalty:     rule.Penalty,
		})
		penalty += rule.Penalty
	}

	// Use case check carries a single flat penalty however many terms hit.
	if textmatch.ContainsAny(sub.UseCase, rules.UseCaseTerms) {
		violations = append(violations, types.Violation{
			Category: string(rules.CategoryBrand),
			Message:  "A2: Use case indicates prohibited marketing/lead generation",
			Penalty:  rules.PenaltyUseCase,
		})
		penalty += rules.PenaltyUseCase
	}

	return violations, penalty
}
