// Package engine implements the compliance rule evaluation engine. One call
// to Evaluate runs every section checker over a submission, accumulates
// penalties, and derives the verdict. The engine performs no I/O: its only
// external reads are the static rule catalog.
package engine

import (
	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/types"
)

// checker inspects one facet of a submission and returns its violations and
// penalty subtotal. Checkers are pure functions and must return a result for
// any input, including empty submissions.
type checker func(*types.Submission) ([]types.Violation, int)

// sectionCheckers is the canonical execution order: Brand, Opt-in, Template,
// URL, Legal, Regulatory. All six run unconditionally; a critical violation
// in one section never short-circuits the rest.
var sectionCheckers = []checker{
	checkBrand,
	checkOptIn,
	checkTemplate,
	checkURL,
	checkLegal,
	checkRegulatory,
}

// Evaluate runs the full rule set against one submission. It is synchronous,
// side-effect-free, and safe to call concurrently.
func Evaluate(sub types.Submission) types.ComplianceResult {
	var violations []types.Violation
	score := 100

	for _, check := range sectionCheckers {
		sectionViolations, penalty := check(&sub)
		violations = append(violations, sectionViolations...)
		score -= penalty
	}

	if score < 0 {
		score = 0
	}

	// Approval requires both the score threshold and a clean violation
	// list. The conjunction is deliberate: a future low-penalty rule must
	// still block approval on its own.
	status := types.StatusRejectionLikely
	if score >= approvalThreshold && len(violations) == 0 {
		status = types.StatusApprovable
	}

	return types.ComplianceResult{
		SubmissionID:    sub.ID,
		Status:          status,
		Violations:      violations,
		Recommendations: recommendationsFor(violations),
		ConfidenceScore: confidenceFor(score),
		Score:           score,
		RulesVersion:    rules.Version,
	}
}

// EvaluateBatch evaluates each submission independently, in order, tagging
// every result with its submission's identifier.
func EvaluateBatch(subs []types.Submission) []types.ComplianceResult {
	results := make([]types.ComplianceResult, 0, len(subs))
	for _, sub := range subs {
		result := Evaluate(sub)
		if result.SubmissionID == "" {
			result.SubmissionID = "unknown"
		}
		results = append(results, result)
	}
	return results
}
