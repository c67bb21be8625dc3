package scraping

import (
	"context"
	"strings"

	"github.com/marcus/campaign-compliance/internal/fetch"
	"github.com/marcus/campaign-compliance/internal/types"
)

// Package is a submission enriched with scraped website evidence, ready for
// the compliance engine.
type Package struct {
	Submission types.Submission `json:"submission"`
	Website    *SiteData        `json:"website_data,omitempty"`
	Policies   *PolicyPages     `json:"policy_data,omitempty"`
	Analysis   *Analysis        `json:"compliance_analysis,omitempty"`
}

// BuildPackage scrapes the brand website and policy pages and folds the
// findings into the submission. The caller's privacy/terms URLs win over
// discovered ones. A website scrape failure is returned as an error: the
// caller decides whether to evaluate without website evidence, and the
// failure is never disguised as a zero compliance score.
func BuildPackage(ctx context.Context, sub types.Submission, opts *fetch.Options) (*Package, error) {
	pkg := &Package{Submission: sub}

	if sub.BrandWebsite == "" {
		pkg.Analysis = AnalyzeSite(nil)
		return pkg, nil
	}

	site, err := ScrapeSite(ctx, sub.BrandWebsite, opts)
	if err != nil {
		return nil, err
	}
	pkg.Website = site

	// The engine expects plain lower-cased text; it does not parse markup.
	pkg.Submission.WebsiteContent = strings.ToLower(site.TextContent)
	pkg.Submission.WebsiteSections = lowerSections(site.Sections)

	if pkg.Submission.PrivacyURL == "" {
		pkg.Submission.PrivacyURL = site.PrivacyURL
	}
	if pkg.Submission.TermsURL == "" {
		pkg.Submission.TermsURL = site.TermsURL
	}

	pkg.Submission.URLs = appendMissing(pkg.Submission.URLs, sub.BrandWebsite)

	pkg.Policies = ScrapePolicies(ctx, pkg.Submission.PrivacyURL, pkg.Submission.TermsURL, opts)
	pkg.Analysis = AnalyzeSite(site)

	return pkg, nil
}

func lowerSections(sections map[string]string) map[string]string {
	if sections == nil {
		return nil
	}
	lowered := make(map[string]string, len(sections))
	for name, text := range sections {
		lowered[name] = strings.ToLower(text)
	}
	return lowered
}

func appendMissing(urls []string, u string) []string {
	for _, existing := range urls {
		if existing == u {
			return urls
		}
	}
	return append(urls, u)
}
