package dedup

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio is the Ratcliff/Obershelp similarity of two strings in [0, 1],
// computed over characters.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}
