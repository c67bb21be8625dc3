package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID_StableAndTruncated(t *testing.T) {
	a := SessionID("203.0.113.9")
	b := SessionID("203.0.113.9")
	c := SessionID("203.0.113.10")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
	assert.NotContains(t, a, "203.0.113.9")
}

func TestStatsFor_Empty(t *testing.T) {
	stats := statsFor(nil)

	assert.Zero(t, stats.TotalSubmissions)
	assert.Zero(t, stats.CompliantSubmissions)
	assert.Zero(t, stats.ComplianceRate)
	assert.Zero(t, stats.AverageScore)
	assert.Nil(t, stats.LastSubmission)
}

func TestStatsFor_MixedScores(t *testing.T) {
	now := time.Now()
	records := []SubmissionRecord{
		{ComplianceScore: 100, CreatedAt: now},
		{ComplianceScore: 85, CreatedAt: now.Add(-time.Hour)},
		{ComplianceScore: 40, CreatedAt: now.Add(-2 * time.Hour)},
	}

	stats := statsFor(records)

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 2, stats.CompliantSubmissions)
	assert.InDelta(t, 66.67, stats.ComplianceRate, 0.001)
	assert.InDelta(t, 75.0, stats.AverageScore, 0.001)
	require.NotNil(t, stats.LastSubmission)
	assert.Equal(t, now, *stats.LastSubmission)
}

func TestStatsFor_ThresholdBoundary(t *testing.T) {
	records := []SubmissionRecord{
		{ComplianceScore: 80},
		{ComplianceScore: 79},
	}

	stats := statsFor(records)

	assert.Equal(t, 1, stats.CompliantSubmissions)
	assert.InDelta(t, 50.0, stats.ComplianceRate, 0.001)
}
