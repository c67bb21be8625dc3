package types

import "encoding/json"

// Status is the closed set of compliance verdicts. The string values are
// wire values and must stay stable for persisted history.
type Status string

const (
	// StatusApprovable means the submission passed every check.
	StatusApprovable Status = "approvable"
	// StatusRejectionLikely means at least one check failed or the score
	// dropped below the approval threshold.
	StatusRejectionLikely Status = "rejection_likely"
)

// Violation describes a single failed compliance check. Message carries the
// section prefix (e.g. "A1: ...") used for summary grouping. Match details
// are present only when the violation came from a text scan.
type Violation struct {
	Category    string `json:"category"`
	Message     string `json:"message"`
	MatchedText string `json:"matched_text,omitempty"`
	Offset      *int   `json:"offset,omitempty"`
	Context     string `json:"context,omitempty"`
	Section     string `json:"section,omitempty"`
	Penalty     int    `json:"penalty"`
}

// ComplianceResult is the output record of one evaluation. It is plain data
// with no references back into the submission and is safe to serialize as-is.
type ComplianceResult struct {
	SubmissionID    string      `json:"submission_id,omitempty"`
	Status          Status      `json:"status"`
	Violations      []Violation `json:"violations"`
	Recommendations []string    `json:"recommendations"`
	ConfidenceScore float64     `json:"confidence_score"`
	Score           int         `json:"score"`
	RulesVersion    string      `json:"rules_version"`
}

// Compliant reports whether the result carries the approvable status.
func (r *ComplianceResult) Compliant() bool {
	return r.Status == StatusApprovable
}

// ViolationMessages returns just the message strings, in violation order.
func (r *ComplianceResult) ViolationMessages() []string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// Summary aggregates a batch of compliance results.
type Summary struct {
	Total            int            `json:"total_communications"`
	ApprovableCount  int            `json:"approvable_count"`
	RejectionCount   int            `json:"rejection_likely_count"`
	ApprovalRate     float64        `json:"approval_rate"`
	AverageScore     float64        `json:"average_score"`
	CommonViolations map[string]int `json:"common_violations"`
}

// RecommendationAction is the final submit/fix/reject advice derived from a result.
type RecommendationAction string

const (
	ActionSubmit       RecommendationAction = "SUBMIT"
	ActionReviewAndFix RecommendationAction = "REVIEW_AND_FIX"
	ActionDoNotSubmit  RecommendationAction = "DO_NOT_SUBMIT"
)

// FinalRecommendation packages the submit/fix/reject advice for a result.
type FinalRecommendation struct {
	Action     RecommendationAction `json:"action"`
	Confidence string               `json:"confidence"`
	Message    string               `json:"message"`
}

// MarshalJSON guards against a nil violations or recommendations slice
// serializing as null; callers expect arrays.
func (r ComplianceResult) MarshalJSON() ([]byte, error) {
	type alias ComplianceResult
	a := alias(r)
	if a.Violations == nil {
		a.Violations = []Violation{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return json.Marshal(a)
}
