package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/types"
)

func violationWith(message string) types.Violation {
	return types.Violation{Message: message}
}

func TestRecommendationsFor_KnownCategories(t *testing.T) {
	violations := []types.Violation{
		violationWith("A1: Website references third-party debt collection (CRITICAL)"),
		violationWith("B1: Missing STOP instructions in initial message"),
		violationWith("E1: Privacy Policy URL missing"),
		violationWith("E1: Terms & Conditions URL missing"),
	}

	recs := recommendationsFor(violations)

	assert.ElementsMatch(t, []string{
		"Remove all references to third-party debt collection from website",
		"Include 'Reply STOP to opt out' in initial message",
		"Provide valid Privacy Policy URL",
		"Provide valid Terms & Conditions URL",
	}, recs)
}

func TestRecommendationsFor_Deduplicates(t *testing.T) {
	violations := []types.Violation{
		violationWith("E1: Terms & Conditions URL missing"),
		violationWith("E1: Terms & Conditions URL missing"),
	}

	recs := recommendationsFor(violations)

	require.Len(t, recs, 1)
	assert.Equal(t, "Provide valid Terms & Conditions URL", recs[0])
}

func TestRecommendationsFor_UnknownViolationsDropped(t *testing.T) {
	violations := []types.Violation{
		violationWith("C3: Threatening language 'urgent' in message 1"),
		violationWith("D1: URL shorteners are not allowed"),
	}

	recs := recommendationsFor(violations)

	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestRecommendationsFor_FirstRemediationWins(t *testing.T) {
	// A privacy-policy message must map to the privacy advice even though
	// the broad "terms" needle sits in the table.
	recs := recommendationsFor([]types.Violation{violationWith("E1: Privacy Policy URL missing")})

	require.Len(t, recs, 1)
	assert.Equal(t, "Provide valid Privacy Policy URL", recs[0])
}

func TestRecommendationsFor_NoViolations(t *testing.T) {
	assert.Empty(t, recommendationsFor(nil))
}
