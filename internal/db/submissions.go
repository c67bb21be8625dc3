package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marcus/campaign-compliance/internal/types"
	"github.com/marcus/campaign-compliance/internal/verify"
)

// compliantThreshold is the score at or above which a stored submission
// counts as compliant in user statistics.
const compliantThreshold = 80

// SessionID derives a stable anonymous session identifier from a client IP
// address. The raw address is never stored.
func SessionID(ipAddress string) string {
	sum := sha256.Sum256([]byte(ipAddress))
	return hex.EncodeToString(sum[:])[:16]
}

// StoreSubmission persists a submission together with its compliance result
// and optional business verification, and returns the new submission ID.
func (db *DB) StoreSubmission(ctx context.Context, ipAddress string, sub types.Submission, result *types.ComplianceResult, verification *verify.Verification) (string, error) {
	sessionID := SessionID(ipAddress)
	submissionID := fmt.Sprintf("%s_%d", sessionID, time.Now().Unix())

	subJSON, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal compliance result: %w", err)
	}

	verificationStatus := "not_run"
	verificationIssues := false
	var verificationJSON []byte
	if verification != nil {
		verificationStatus = verification.Status
		verificationIssues = verification.IssuesFound
		if verificationJSON, err = json.Marshal(verification); err != nil {
			return "", fmt.Errorf("failed to marshal verification: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO submissions (submission_id, session_id, brand_name, brand_website, use_case,
			compliance_score, compliance_status, violations_count,
			submission_data, compliance_result,
			verification_status, verification_issues, verification_json)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		submissionID, sessionID, sub.BrandName, sub.BrandWebsite, sub.UseCase,
		result.Score, string(result.Status), len(result.Violations),
		subJSON, resultJSON,
		verificationStatus, verificationIssues, verificationJSON,
	)
	if err != nil {
		return "", fmt.Errorf("failed to store submission: %w", err)
	}
	return submissionID, nil
}

// GetUserSubmissions returns the most recent stored submissions for the
// session derived from this IP address.
func (db *DB) GetUserSubmissions(ctx context.Context, ipAddress string, limit int) ([]SubmissionRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT submission_id, session_id, brand_name, brand_website, use_case,
			compliance_score, compliance_status, violations_count,
			verification_status, verification_issues, created_at
		 FROM submissions WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		SessionID(ipAddress), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetAllSubmissions returns every stored submission, newest first, for the
// admin dashboard.
func (db *DB) GetAllSubmissions(ctx context.Context) ([]SubmissionRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT submission_id, session_id, brand_name, brand_website, use_case,
			compliance_score, compliance_status, violations_count,
			verification_status, verification_issues, created_at
		 FROM submissions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetSubmissionStats summarizes the session's recent submission history.
func (db *DB) GetSubmissionStats(ctx context.Context, ipAddress string) (*SubmissionStats, error) {
	submissions, err := db.GetUserSubmissions(ctx, ipAddress, 50)
	if err != nil {
		return nil, err
	}
	return statsFor(submissions), nil
}

func statsFor(submissions []SubmissionRecord) *SubmissionStats {
	stats := &SubmissionStats{TotalSubmissions: len(submissions)}
	if len(submissions) == 0 {
		return stats
	}

	total := 0
	for _, s := range submissions {
		total += s.ComplianceScore
		if s.ComplianceScore >= compliantThreshold {
			stats.CompliantSubmissions++
		}
	}

	stats.ComplianceRate = math.Round(float64(stats.CompliantSubmissions)/float64(len(submissions))*100*100) / 100
	stats.AverageScore = math.Round(float64(total)/float64(len(submissions))*10) / 10
	last := submissions[0].CreatedAt
	stats.LastSubmission = &last
	return stats
}

func scanRecords(rows pgx.Rows) ([]SubmissionRecord, error) {
	var records []SubmissionRecord
	for rows.Next() {
		var r SubmissionRecord
		if err := rows.Scan(&r.SubmissionID, &r.SessionID, &r.BrandName, &r.BrandWebsite, &r.UseCase,
			&r.ComplianceScore, &r.ComplianceStatus, &r.ViolationsCount,
			&r.VerificationStatus, &r.VerificationIssues, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
