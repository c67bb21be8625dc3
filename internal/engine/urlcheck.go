package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/marcus/campaign-compliance/internal/rules"
	"github.com/marcus/campaign-compliance/internal/types"
)

// checkURL is Section D: URL and domain validation. Shortened links are
// rejected outright; the support email domain is compared against the
// website domain. A confirmed mismatch costs more than a failed parse: an
// unverifiable claim is cheaper than a disproven one.
func checkURL(sub *types.Submission) ([]types.Violation, int) {
	var violations []types.Violation
	penalty := 0

	for _, u := range sub.URLs {
		for _, shortener := range rules.URLShorteners {
			if strings.Contains(u, shortener) {
				violations = append(violations, types.Violation{
					Category: string(rules.CategoryURL),
					Message:  "D1: URL shorteners are not allowed",
					Penalty:  rules.PenaltyURLShortener,
				})
				penalty += rules.PenaltyURLShortener
				break
			}
		}
	}

	if sub.SupportEmail != "" && sub.BrandWebsite != "" {
		emailDomain, websiteDomain, err := compareDomains(sub.SupportEmail, sub.BrandWebsite)
		switch {
		case err != nil:
			violations = append(violations, types.Violation{
				Category: string(rules.CategoryURL),
				Message:  "D3: Unable to validate email domain match",
				Penalty:  rules.PenaltyDomainParseError,
			})
			penalty += rules.PenaltyDomainParseError
		case emailDomain != websiteDomain:
			violations = append(violations, types.Violation{
				Category: string(rules.CategoryURL),
				Message:  fmt.Sprintf("D2: Support email domain (%s) does not match website domain (%s)", emailDomain, websiteDomain),
				Penalty:  rules.PenaltyDomainMismatch,
			})
			penalty += rules.PenaltyDomainMismatch
		}
	}

	return violations, penalty
}

// compareDomains extracts the email and website domains, lower-cased, with
// any leading "www." stripped from the website host.
func compareDomains(email, website string) (emailDomain, websiteDomain string, err error) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", "", fmt.Errorf("email has no domain part: %s", email)
	}
	emailDomain = strings.ToLower(email[at+1:])

	parsed, err := url.Parse(website)
	if err != nil {
		return "", "", fmt.Errorf("unparsable website URL: %w", err)
	}
	websiteDomain = strings.ToLower(parsed.Host)
	websiteDomain = strings.TrimPrefix(websiteDomain, "www.")

	return emailDomain, websiteDomain, nil
}
