package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"ArticleCurator/internal/domain"
)

// matchResultMinHits guards against previews and opinion pieces that mention
// a single score-like word.
const matchResultMinHits = 2

// ContentKeywords are the phrases that identify each content type.
var ContentKeywords = map[domain.ContentType][]string{
	domain.ContentBreaking: {
		"breaking", "just in", "urgent", "confirmed", "official", "announced", "update:",
	},
	domain.ContentTransfer: {
		"transfer", "signs", "signed", "signing", "sign ", "loan", "deal", "contract",
		"joins", "move to", "release clause", "fee", "free agent", "traded", "trade",
	},
	domain.ContentInjury: {
		"injury", "injured", "ruled out", "sidelined", "hamstring", "fitness", "surgery",
		"strain", "fracture", "concussion",
	},
	domain.ContentMatchResult: {
		"beat", "defeated", "won", "win", "lost", "draw", "drew", "victory", "thrash",
		"final score", "full-time", "by wickets", "by runs", "scored", "points",
	},
	domain.ContentControversy: {
		"controversy", "row", "banned", "ban", "suspended", "fined", "accused", "scandal",
		"criticism", "dispute", "outrage", "investigation",
	},
	domain.ContentRecord: {
		"record", "milestone", "first ever", "first-ever", "historic", "history",
		"all-time", "fastest", "youngest", "most ever",
	},
	domain.ContentPreview: {
		"preview", "ahead of", "prediction", "predicted", "team news", "lineup",
		"line-up", "build-up", "what to expect", "probable",
	},
	domain.ContentAnalysis: {
		"analysis", "tactical", "explained", "talking points", "ratings", "verdict",
		"insight", "deep dive", "lessons", "takeaways",
	},
}

// detectContentTypes returns the requested types whose keywords appear in text.
func detectContentTypes(text string, requested []domain.ContentType) []domain.ContentType {
	var detected []domain.ContentType
	for _, ct := range domain.ContentTypes {
		if !containsContentType(requested, ct) {
			continue
		}
		hits := keywordHits(text, ContentKeywords[ct])
		need := 1
		if ct == domain.ContentMatchResult {
			need = matchResultMinHits
		}
		if hits >= need {
			detected = append(detected, ct)
		}
	}
	return detected
}

func keywordHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if containsWord(text, kw) {
			hits++
		}
	}
	return hits
}

// containsWord reports whether kw occurs in text without a letter or digit
// glued to either alphanumeric edge, so "row" does not hit "tomorrow".
func containsWord(text, kw string) bool {
	if kw == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(kw); {
		idx := strings.Index(text[offset:], kw)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(kw)
		if boundaryBefore(text, start, kw) && boundaryAfter(text, end, kw) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, start int, kw string) bool {
	first, _ := utf8.DecodeRuneInString(kw)
	if !isWordRune(first) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, kw string) bool {
	last, _ := utf8.DecodeLastRuneInString(kw)
	if !isWordRune(last) || end == len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsContentType(list []domain.ContentType, target domain.ContentType) bool {
	for _, ct := range list {
		if ct == target {
			return true
		}
	}
	return false
}
