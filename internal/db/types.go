package db

import "time"

// SubmissionRecord is a stored submission row, without the full JSON
// payloads.
type SubmissionRecord struct {
	SubmissionID       string    `json:"submission_id"`
	SessionID          string    `json:"session_id"`
	BrandName          string    `json:"brand_name"`
	BrandWebsite       string    `json:"brand_website"`
	UseCase            string    `json:"use_case"`
	ComplianceScore    int       `json:"compliance_score"`
	ComplianceStatus   string    `json:"compliance_status"`
	ViolationsCount    int       `json:"violations_count"`
	VerificationStatus string    `json:"verification_status"`
	VerificationIssues bool      `json:"verification_issues"`
	CreatedAt          time.Time `json:"created_at"`
}

// SubmissionStats summarizes one session's submission history.
type SubmissionStats struct {
	TotalSubmissions     int        `json:"total_submissions"`
	CompliantSubmissions int        `json:"compliant_submissions"`
	ComplianceRate       float64    `json:"compliance_rate"`
	AverageScore         float64    `json:"average_score"`
	LastSubmission       *time.Time `json:"last_submission,omitempty"`
}
