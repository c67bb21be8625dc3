// Package verify provides business-information verification: submission
// field format checks, address-on-website verification, and regulatory
// database lookups. None of it feeds the rule engine directly; findings are
// layered onto the compliance result by the serving layer.
package verify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	digitsRe    = regexp.MustCompile(`\D`)
	streetNumRe = regexp.MustCompile(`\b\d+\b`)
	zipRe       = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	hasDigitRe  = regexp.MustCompile(`\d+`)

	stateAbbrevRe = regexp.MustCompile(`\b(al|ak|az|ar|ca|co|ct|de|fl|ga|hi|id|il|in|ia|ks|ky|la|me|md|ma|mi|mn|ms|mo|mt|ne|nv|nh|nj|nm|ny|nc|nd|oh|ok|or|pa|ri|sc|sd|tn|tx|ut|vt|va|wa|wv|wi|wy)\b`)
	stateNameRe   = regexp.MustCompile(`\b(alabama|alaska|arizona|arkansas|california|colorado|connecticut|delaware|florida|georgia|hawaii|idaho|illinois|indiana|iowa|kansas|kentucky|louisiana|maine|maryland|massachusetts|michigan|minnesota|mississippi|missouri|montana|nebraska|nevada|new hampshire|new jersey|new mexico|new york|north carolina|north dakota|ohio|oklahoma|oregon|pennsylvania|rhode island|south carolina|south dakota|tennessee|texas|utah|vermont|virginia|washington|west virginia|wisconsin|wyoming)\b`)
)

var streetWords = []string{
	"street", "st", "avenue", "ave", "road", "rd", "drive", "dr",
	"lane", "ln", "boulevard", "blvd", "parkway", "pkwy", "suite", "ste",
}

var fieldValidator = validator.New()

// ValidEIN reports whether the EIN has exactly nine digits once separators
// are stripped.
func ValidEIN(ein string) bool {
	return len(digitsRe.ReplaceAllString(ein, "")) == 9
}

// ValidPhone reports whether the phone number has ten or eleven digits
// (US format, optionally with country code).
func ValidPhone(phone string) bool {
	n := len(digitsRe.ReplaceAllString(phone, ""))
	return n == 10 || n == 11
}

// ValidEmail reports whether the string is a plausible email address.
func ValidEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}

// ValidAddress reports whether the string looks like a complete US street
// address: a street number, a state, a ZIP code, and either a street word
// or enough overall length.
func ValidAddress(address string) bool {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) < 10 {
		return false
	}
	lower := strings.ToLower(trimmed)

	hasNumber := hasDigitRe.MatchString(address)
	hasState := stateAbbrevRe.MatchString(lower) || stateNameRe.MatchString(lower)
	hasZip := zipRe.MatchString(address)

	hasStreetWord := false
	for _, word := range streetWords {
		if strings.Contains(lower, word) {
			hasStreetWord = true
			break
		}
	}

	return hasNumber && hasState && hasZip && (hasStreetWord || len(address) > 25)
}

// addressParts extracts the components used for address-on-website matching:
// the street number, the ZIP code, and up to two significant street words.
func addressParts(address string) []string {
	var parts []string

	if num := streetNumRe.FindString(address); num != "" {
		parts = append(parts, num)
	}
	if zip := zipRe.FindString(address); zip != "" {
		parts = append(parts, zip)
	}

	cleaned := strings.ToLower(address)
	for _, word := range streetWords {
		cleaned = strings.ReplaceAll(cleaned, word, "")
	}
	significant := 0
	for _, word := range strings.Fields(cleaned) {
		word = strings.TrimSpace(word)
		if len(word) > 2 && isAlpha(word) {
			parts = append(parts, word)
			significant++
			if significant == 2 {
				break
			}
		}
	}

	return parts
}

// AddressAppearsIn reports whether the address plausibly appears in any of
// the given content bodies. At least two address components must be found.
func AddressAppearsIn(address string, contents ...string) bool {
	if address == "" {
		return false
	}

	all := strings.ToLower(strings.Join(contents, " "))
	found := 0
	for _, part := range addressParts(address) {
		if strings.Contains(all, strings.ToLower(part)) {
			found++
		}
	}
	return found >= 2
}

// EmailDomainMatches reports whether the email's domain equals the website's
// host, ignoring a leading "www.".
func EmailDomainMatches(email, website string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	emailDomain := strings.ToLower(email[at+1:])

	parsed, err := url.Parse(website)
	if err != nil || parsed.Host == "" {
		return false
	}
	websiteDomain := strings.ToLower(parsed.Hostname())
	websiteDomain = strings.TrimPrefix(websiteDomain, "www.")

	return emailDomain == websiteDomain
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
