package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/types"
)

func TestCheckOptIn_ExistingBusinessRelationship(t *testing.T) {
	sub := &types.Submission{
		OptInDescription: "We text anyone with an Existing Business Relationship.",
	}

	violations, penalty := checkOptIn(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "B1: 'Existing business relationship' is not sufficient for SMS consent", violations[0].Message)
	assert.Equal(t, 25, penalty)
}

func TestCheckOptIn_NumberCollectedDuringCalls(t *testing.T) {
	sub := &types.Submission{
		OptInDescription: "customers provide number when calling our support line",
	}

	violations, penalty := checkOptIn(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "B1: Phone number collection during calls is non-compliant", violations[0].Message)
	assert.Equal(t, 25, penalty)
}

func TestCheckOptIn_ViolationCarriesMatchEvidence(t *testing.T) {
	sub := &types.Submission{
		OptInDescription: "Consent basis: existing business relationship with all clients.",
	}

	violations, _ := checkOptIn(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "existing business relationship", violations[0].MatchedText)
	require.NotNil(t, violations[0].Offset)
	assert.Equal(t, 15, *violations[0].Offset)
	assert.Contains(t, violations[0].Context, "with all clients")
}

func TestCheckOptIn_BothDisallowedMethods(t *testing.T) {
	sub := &types.Submission{
		OptInDescription: "existing business relationship; customers provide number when calling",
	}

	_, penalty := checkOptIn(sub)

	assert.Equal(t, 50, penalty)
}

func TestCheckOptIn_FirstMessageHasStop(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"Reply STOP to end"}}

	violations, penalty := checkOptIn(sub)

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}

func TestCheckOptIn_FirstMessageMissingStop(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"Your balance is due."}}

	violations, penalty := checkOptIn(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "B1: Missing STOP instructions in initial message", violations[0].Message)
	assert.Equal(t, 15, penalty)
}

func TestCheckOptIn_OnlyFirstMessageChecked(t *testing.T) {
	// Later messages are exempt from the STOP requirement.
	sub := &types.Submission{SampleMessages: []string{
		"Reply STOP to end",
		"Second message with no opt-out language",
	}}

	violations, penalty := checkOptIn(sub)

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}

func TestCheckOptIn_NoMessagesSkipsStopCheck(t *testing.T) {
	violations, penalty := checkOptIn(&types.Submission{})

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}
