// Package scraping collects website content for a campaign submission: the
// page text, a per-heading section map for violation attribution, and the
// privacy/terms page links. Scrape failures surface as errors so callers can
// tell "could not evaluate" apart from a failed compliance check.
package scraping

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/campaign-compliance/internal/fetch"
)

// SiteData is the scraped content of one page.
type SiteData struct {
	URL         string            `json:"url"`
	StatusCode  int               `json:"status_code"`
	Title       string            `json:"title"`
	TextContent string            `json:"text_content"`
	Sections    map[string]string `json:"sections,omitempty"`
	PrivacyURL  string            `json:"privacy_url,omitempty"`
	TermsURL    string            `json:"terms_url,omitempty"`
}

// PolicyPages holds the scraped privacy and terms pages. Either may be nil
// when the page was not found or failed to load.
type PolicyPages struct {
	Privacy *SiteData `json:"privacy,omitempty"`
	Terms   *SiteData `json:"terms,omitempty"`
}

var (
	privacyKeywords = []string{"privacy", "privacy-policy"}
	termsKeywords   = []string{"terms", "terms-of-service", "terms-conditions"}
)

// ScrapeSite fetches a page and extracts its text, heading sections, and
// policy links.
func ScrapeSite(ctx context.Context, pageURL string, opts *fetch.Options) (*SiteData, error) {
	result, err := fetch.URL(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}

	// JS-heavy sites serve a near-empty shell; re-render in a headless
	// browser when enabled and the plain fetch came back too thin.
	if opts != nil && opts.UseBrowser {
		if text, _ := fetch.ExtractBodyText(result.HTML); fetch.ShouldUseBrowser(text) {
			if rendered, browserErr := fetch.WithBrowser(ctx, pageURL, fetch.DefaultTimeout); browserErr == nil {
				result.HTML = rendered
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, &fetch.Error{URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}

	site := &SiteData{
		URL:        pageURL,
		StatusCode: result.StatusCode,
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		Sections:   map[string]string{},
	}
	if site.Title == "" {
		site.Title = "Untitled"
	}

	// Map each heading to the text of its following siblings, stopping at
	// the next heading. This gives the engine labeled sub-sections for
	// match attribution.
	doc.Find("h1, h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		label := strings.TrimSpace(heading.Text())
		if label == "" {
			return
		}
		var parts []string
		heading.NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
			if sibling.Is("h1, h2, h3, h4") {
				return false
			}
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				parts = append(parts, text)
			}
			return true
		})
		site.Sections[label] = fetch.CleanWhitespace(strings.Join(parts, " "))
	})

	text, err := fetch.ExtractBodyText(result.HTML)
	if err != nil {
		return nil, &fetch.Error{URL: pageURL, Message: "failed to extract text", Cause: err}
	}
	site.TextContent = text
	site.Sections["Main Content"] = text

	site.PrivacyURL = findPolicyURL(doc, pageURL, privacyKeywords)
	site.TermsURL = findPolicyURL(doc, pageURL, termsKeywords)

	return site, nil
}

// findPolicyURL locates a privacy/terms link by keyword in the href or the
// anchor text, resolved against the base URL. Returns "" when none found.
func findPolicyURL(doc *goquery.Document, baseURL string, keywords []string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		lowerHref := strings.ToLower(href)
		lowerText := strings.ToLower(link.Text())

		for _, keyword := range keywords {
			if strings.Contains(lowerHref, keyword) || strings.Contains(lowerText, keyword) {
				if ref, err := url.Parse(href); err == nil {
					found = base.ResolveReference(ref).String()
					return false
				}
			}
		}
		return true
	})
	return found
}

// ScrapePolicies fetches the privacy and terms pages concurrently. A page
// that fails to load is left nil rather than failing the pair: policy pages
// are evidence, not prerequisites.
func ScrapePolicies(ctx context.Context, privacyURL, termsURL string, opts *fetch.Options) *PolicyPages {
	pages := &PolicyPages{}
	g, ctx := errgroup.WithContext(ctx)

	if privacyURL != "" {
		g.Go(func() error {
			if site, err := ScrapeSite(ctx, privacyURL, opts); err == nil {
				pages.Privacy = site
			}
			return nil
		})
	}
	if termsURL != "" {
		g.Go(func() error {
			if site, err := ScrapeSite(ctx, termsURL, opts); err == nil {
				pages.Terms = site
			}
			return nil
		})
	}

	_ = g.Wait()
	return pages
}
