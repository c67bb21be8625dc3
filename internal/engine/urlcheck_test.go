package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/types"
)

func TestCheckURL_Shorteners(t *testing.T) {
	sub := &types.Submission{URLs: []string{
		"https://bit.ly/3abc",
		"https://example.com/promo",
		"https://tinyurl.com/xyz",
	}}

	violations, penalty := checkURL(sub)

	require.Len(t, violations, 2)
	assert.Equal(t, "D1: URL shorteners are not allowed", violations[0].Message)
	assert.Equal(t, 40, penalty)
}

func TestCheckURL_DomainMatch(t *testing.T) {
	sub := &types.Submission{
		SupportEmail: "help@Example.com",
		BrandWebsite: "https://www.example.com",
	}

	violations, penalty := checkURL(sub)

	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}

func TestCheckURL_DomainMismatchIsMinor(t *testing.T) {
	sub := &types.Submission{
		SupportEmail: "a@x.com",
		BrandWebsite: "https://y.com",
	}

	violations, penalty := checkURL(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "D2: Support email domain (x.com) does not match website domain (y.com)", violations[0].Message)
	assert.Equal(t, 5, penalty)
}

func TestCheckURL_ParseFailureCheaperThanMismatch(t *testing.T) {
	sub := &types.Submission{
		SupportEmail: "no-at-sign.example.com",
		BrandWebsite: "https://example.com",
	}

	violations, penalty := checkURL(sub)

	require.Len(t, violations, 1)
	assert.Equal(t, "D3: Unable to validate email domain match", violations[0].Message)
	assert.Equal(t, 3, penalty)
}

func TestCheckURL_SkippedWhenEitherFieldMissing(t *testing.T) {
	violations, penalty := checkURL(&types.Submission{SupportEmail: "a@x.com"})
	assert.Empty(t, violations)
	assert.Zero(t, penalty)

	violations, penalty = checkURL(&types.Submission{BrandWebsite: "https://x.com"})
	assert.Empty(t, violations)
	assert.Zero(t, penalty)
}

func TestCompareDomains_StripsWWWOnce(t *testing.T) {
	emailDomain, websiteDomain, err := compareDomains("a@www.example.com", "https://www.example.com")

	require.NoError(t, err)
	assert.Equal(t, "www.example.com", emailDomain)
	assert.Equal(t, "example.com", websiteDomain)
}
