package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/types"
)

func TestCheckTemplate_ProhibitedPlaceholder(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"Visit {{company}} today"}}

	violations, penalty := checkTemplate(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "C2: Prohibited placeholder {{company}} in message 1", violations[0].Message)
	assert.Equal(t, 15, penalty)
}

func TestCheckTemplate_BrandNamePlaceholderExempt(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"{{brandname}}: your order shipped"}}

	violations, penalty := checkTemplate(sub)

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}

func TestCheckTemplate_MixedPlaceholdersInOneMessage(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"{{brandname}} says: visit {{url}} or call {{agentname}}"}}

	violations, penalty := checkTemplate(sub)

	require.Len(t, violations, 2)
	assert.Equal(t, "C2: Prohibited placeholder {{url}} in message 1", violations[0].Message)
	assert.Equal(t, "C2: Prohibited placeholder {{agentname}} in message 1", violations[1].Message)
	assert.Equal(t, 30, penalty)
}

func TestCheckTemplate_ThreateningLanguage(t *testing.T) {
	sub := &types.Submission{SampleMessages: []string{"URGENT: this is our final notice"}}

	violations, penalty := checkTemplate(sub)

	require.Len(t, violations, 2)
	assert.Equal(t, "C3: Threatening language 'urgent' in message 1", violations[0].Message)
	assert.Equal(t, "C3: Threatening language 'final notice' in message 1", violations[1].Message)
	assert.Equal(t, 20, penalty)
}

func TestCheckTemplate_EveryMessageScanned(t *testing.T) {
	// Penalties accumulate across messages with no per-message cap.
	sub := &types.Submission{SampleMessages: []string{
		"urgent payment needed",
		"last attempt to reach you",
		"a perfectly polite reminder",
	}}

	violations, penalty := checkTemplate(sub)

	require.Len(t, violations, 2)
	assert.Equal(t, "C3: Threatening language 'urgent' in message 1", violations[0].Message)
	assert.Equal(t, "C3: Threatening language 'last attempt' in message 2", violations[1].Message)
	assert.Equal(t, 20, penalty)
}

func TestCheckTemplate_NoMessages(t *testing.T) {
	violations, penalty := checkTemplate(&types.Submission{})

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}
