package engine

import (
	"github.com/marcus/campaign-compliance/internal/types"
)

// FinalRecommendationFor derives the submit/fix/reject advice from a result.
func FinalRecommendationFor(result types.ComplianceResult) types.FinalRecommendation {
	switch {
	case result.Status == types.StatusApprovable && result.Score >= approvalThreshold:
		return types.FinalRecommendation{
			Action:     types.ActionSubmit,
			Confidence: "HIGH",
			Message:    "Campaign meets all compliance requirements and is ready for submission.",
		}
	case result.Score >= 90:
		return types.FinalRecommendation{
			Action:     types.ActionReviewAndFix,
			Confidence: "MEDIUM",
			Message:    "Campaign has minor issues that should be addressed before submission.",
		}
	default:
		return types.FinalRecommendation{
			Action:     types.ActionDoNotSubmit,
			Confidence: "HIGH",
			Message:    "Campaign has critical compliance issues and will likely be rejected.",
		}
	}
}
