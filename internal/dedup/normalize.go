package dedup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeURL lower-cases a URL and strips scheme, www., query, fragment and trailing slashes.
func NormalizeURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.Index(u, "://"); idx >= 0 {
		u = u[idx+3:]
	} else {
		u = strings.TrimPrefix(u, "//")
	}
	u = strings.TrimPrefix(u, "www.")
	if idx := strings.IndexAny(u, "?#"); idx >= 0 {
		u = u[:idx]
	}
	return strings.TrimRight(u, "/")
}

// NormalizeTitle folds case, collapses whitespace and strips trailing punctuation.
func NormalizeTitle(title string) string {
	text := foldText(title)
	return strings.TrimSpace(strings.TrimRightFunc(text, unicode.IsPunct))
}

// BucketKey is the first BucketWords words of a normalized title, or the whole
// title when it has fewer than MinBucketWords words.
func BucketKey(normalizedTitle string) string {
	words := strings.Fields(normalizedTitle)
	if len(words) < MinBucketWords {
		return normalizedTitle
	}
	if len(words) > BucketWords {
		words = words[:BucketWords]
	}
	return strings.Join(words, " ")
}

func summaryPrefix(summary string) string {
	text := foldText(summary)
	if utf8.RuneCountInString(text) <= SummaryPrefix {
		return text
	}
	return string([]rune(text)[:SummaryPrefix])
}

func foldText(value string) string {
	lowered := cases.Lower(language.Und).String(norm.NFKC.String(value))
	return strings.Join(strings.Fields(lowered), " ")
}
