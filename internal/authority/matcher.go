// Package authority decides whether an article's source belongs to a trusted
// outlet. Domain matching requires exact or proper-suffix equality so that
// look-alike registrations such as fakebbc.com never match bbc.com.
package authority

import (
	"regexp"
	"strings"
)

// CanonicalDomain strips scheme, path, port, trailing dots and every leading
// www. from a host-like value. Applying it twice yields the same result.
func CanonicalDomain(value string) string {
	host := strings.ToLower(strings.TrimSpace(value))
	for _, prefix := range []string{"https://", "http://", "//"} {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	for {
		trimmed := strings.TrimPrefix(strings.TrimRight(host, "."), "www.")
		if trimmed == host {
			return host
		}
		host = trimmed
	}
}

// IsDomain reports whether a canonical source is a domain rather than a brand token.
func IsDomain(canonical string) bool {
	return strings.Contains(canonical, ".")
}

// Matches reports whether articleDomain belongs to canonical. Domains match on
// equality or a "."-bounded suffix; brand tokens match as substrings.
func Matches(articleDomain, canonical string) bool {
	src, ok := newSource(canonical)
	return ok && src.matchDomain(CanonicalDomain(articleDomain), true)
}

// MatchesSourceName applies the domain suffix rule to source names that look
// like hosts and a whole-word match for brand tokens.
func MatchesSourceName(sourceName, canonical string) bool {
	src, ok := newSource(canonical)
	return ok && src.matchName(sourceName)
}

// source is one compiled authority entry. Matches, MatchesSourceName and
// Table.Resolve all go through it.
type source struct {
	canonical string
	domain    bool
	pattern   *regexp.Regexp
}

func newSource(raw string) (source, bool) {
	canonical := strings.ToLower(strings.TrimSpace(raw))
	if canonical == "" {
		return source{}, false
	}
	if IsDomain(canonical) {
		canonical = CanonicalDomain(canonical)
		return source{canonical: canonical, domain: true}, canonical != ""
	}
	return source{canonical: canonical, pattern: brandPattern(canonical)}, true
}

// matchDomain expects an already canonical host. Brand tokens are only
// consulted when allowBrand is set.
func (s source) matchDomain(host string, allowBrand bool) bool {
	if host == "" {
		return false
	}
	if s.domain {
		return suffixMatch(host, s.canonical)
	}
	return allowBrand && strings.Contains(host, s.canonical)
}

func (s source) matchName(sourceName string) bool {
	name := strings.TrimSpace(sourceName)
	if name == "" {
		return false
	}
	if s.domain {
		return suffixMatch(CanonicalDomain(name), s.canonical)
	}
	return s.pattern.MatchString(name)
}

func suffixMatch(host, canonicalDomain string) bool {
	if host == "" || canonicalDomain == "" {
		return false
	}
	return host == canonicalDomain || strings.HasSuffix(host, "."+canonicalDomain)
}

func brandPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
}
