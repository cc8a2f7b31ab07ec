package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ArticleCurator/internal/authority"
)

var markupExpr = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

const maxMarkupPasses = 4

// CleanText reduces markup to text and collapses whitespace. Escaped markup
// such as &lt;i&gt; decodes into tags, so stripping repeats until no tag is
// left; the result is a fixed point of CleanText.
func CleanText(value string) string {
	for pass := 0; pass < maxMarkupPasses && markupExpr.MatchString(value); pass++ {
		value = stripMarkup(value)
	}
	for markupExpr.MatchString(value) {
		value = markupExpr.ReplaceAllString(value, " ")
	}
	return strings.Join(strings.Fields(value), " ")
}

func stripMarkup(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	doc.Find("script, style").Remove()
	doc.Find("p, div, li, br, h1, h2, h3, h4, td").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})
	return doc.Text()
}

// DomainFromURL extracts the lower-cased host of a URL without www. or port.
// Scheme-less values such as "bbc.com/sport" are accepted.
func DomainFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("http://" + strings.TrimPrefix(raw, "//"))
		if err != nil {
			return ""
		}
	}

	return authority.CanonicalDomain(parsed.Hostname())
}

func resolveDomain(rawURL, suppliedDomain string) string {
	if rawURL != "" {
		return DomainFromURL(rawURL)
	}
	return authority.CanonicalDomain(suppliedDomain)
}
