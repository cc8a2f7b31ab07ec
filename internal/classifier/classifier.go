// Package classifier derives an article's sport from free text.
//
// Sports are evaluated in the fixed order of the rule tables below; when two
// sports tie on hits the one listed first wins.
package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"ArticleCurator/internal/domain"
)

// MinHits is the number of distinct keyword hits a sport needs to win.
const MinHits = 2

// Rule pairs a sport with the phrases that indicate it.
type Rule struct {
	Category domain.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// DefaultRules are used for content classification.
var DefaultRules = []Rule{
	{
		Category: domain.CategoryCricket,
		Keywords: []string{
			"cricket", "indian premier league", "bcci", "test match", "odi series", "t20",
			"wicket", "innings", "batsman", "batter", "bowler", "ashes", "run chase",
			"lbw", "kohli", "rohit sharma", "bumrah", "world test championship",
		},
	},
	{
		Category: domain.CategoryFootball,
		Keywords: []string{
			"football", "soccer", "premier league", "la liga", "serie a", "bundesliga",
			"champions league", "uefa", "fifa", "goalkeeper", "striker", "midfielder",
			"penalty", "manchester united", "manchester city", "liverpool", "arsenal",
			"chelsea", "real madrid", "barcelona", "world cup qualifier", "transfer window",
		},
	},
	{
		Category: domain.CategoryBasketball,
		Keywords: []string{
			"basketball", "nba", "wnba", "euroleague", "fiba", "three-pointer",
			"rebound", "slam dunk", "playoffs", "lakers", "celtics", "warriors",
			"lebron", "curry", "point guard", "triple-double",
		},
	},
}

// TagRules are matched against collector-supplied tags when no tag names a sport directly.
var TagRules = []Rule{
	{Category: domain.CategoryCricket, Keywords: []string{"cricket", "ipl", "bcci", "icc", "t20", "odi", "test cricket"}},
	{Category: domain.CategoryFootball, Keywords: []string{"football", "soccer", "premier league", "uefa", "fifa", "la liga", "epl"}},
	{Category: domain.CategoryBasketball, Keywords: []string{"basketball", "nba", "wnba", "fiba", "euroleague"}},
}

// Classifier scores text against an ordered rule table.
type Classifier struct {
	rules    []Rule
	tagRules []Rule
}

// New builds a classifier over the default tables.
func New() *Classifier {
	return &Classifier{rules: DefaultRules, tagRules: TagRules}
}

// NewWithRules builds a classifier with custom content and tag tables.
// Keywords are folded the same way as the text they are matched against and
// blank keywords are dropped.
func NewWithRules(rules, tagRules []Rule) *Classifier {
	return &Classifier{rules: foldRules(rules), tagRules: foldRules(tagRules)}
}

func foldRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		folded := Rule{Category: rule.Category}
		if category, ok := domain.ParseCategory(string(rule.Category)); ok {
			folded.Category = category
		}
		for _, kw := range rule.Keywords {
			if kw = fold(kw); kw != "" {
				folded.Keywords = append(folded.Keywords, kw)
			}
		}
		out = append(out, folded)
	}
	return out
}

// Classify counts keyword hits in title, summary and source. The best sport
// wins only with at least MinHits hits; otherwise the article is uncategorized.
func (c *Classifier) Classify(title, summary, source string) domain.Category {
	text := fold(strings.Join([]string{title, summary, source}, " "))

	best := domain.CategoryUncategorized
	bestHits := 0
	for _, rule := range c.rules {
		hits := countHits(text, rule.Keywords)
		if hits > bestHits {
			best = rule.Category
			bestHits = hits
		}
	}

	if bestHits < MinHits {
		return domain.CategoryUncategorized
	}
	return best
}

// MatchTags resolves a category from tags: a tag naming a sport wins, then the
// first tag containing a sport keyword.
func (c *Classifier) MatchTags(tags []string) (domain.Category, bool) {
	for _, tag := range tags {
		if category, ok := domain.ParseCategory(tag); ok {
			return category, true
		}
	}

	for _, tag := range tags {
		lowered := fold(tag)
		if lowered == "" {
			continue
		}
		for _, rule := range c.tagRules {
			if countHits(lowered, rule.Keywords) > 0 {
				return rule.Category, true
			}
		}
	}

	return domain.CategoryUncategorized, false
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

// fold applies NFKC and Unicode lower-casing so full-width or ligature forms
// ("ＮＢＡ", "ﬁfa") hit the ASCII keyword tables.
func fold(value string) string {
	lowered := cases.Lower(language.Und).String(norm.NFKC.String(value))
	return strings.Join(strings.Fields(lowered), " ")
}
