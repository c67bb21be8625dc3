package engine

import (
	"math"
	"strings"

	"github.com/marcus/campaign-compliance/internal/types"
)

// Summarize computes aggregate statistics over a batch of results. Violation
// counts are grouped by the message prefix before the first colon ("A1",
// "B1", ...). An empty batch yields zeros, never a division failure.
func Summarize(results []types.ComplianceResult) types.Summary {
	summary := types.Summary{
		CommonViolations: make(map[string]int),
	}
	summary.Total = len(results)

	scoreSum := 0
	for _, result := range results {
		if result.Compliant() {
			summary.ApprovableCount++
		}
		scoreSum += result.Score

		for _, v := range result.Violations {
			section := v.Message
			if i := strings.Index(section, ":"); i >= 0 {
				section = section[:i]
			}
			summary.CommonViolations[section]++
		}
	}
	summary.RejectionCount = summary.Total - summary.ApprovableCount

	if summary.Total > 0 {
		rate := float64(summary.ApprovableCount) / float64(summary.Total) * 100
		summary.ApprovalRate = math.Round(rate*100) / 100
		avg := float64(scoreSum) / float64(summary.Total)
		summary.AverageScore = math.Round(avg*10) / 10
	}

	return summary
}
