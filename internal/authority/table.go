package authority

import (
	"strings"

	"ArticleCurator/internal/domain"
)

// Level describes one authority tier: its trusted sources and the score an
// article needs before the tier is granted.
type Level struct {
	Level    domain.AuthorityLevel `yaml:"level"`
	MinScore float64               `yaml:"minScore"`
	Sources  []string              `yaml:"sources"`
}

// DefaultLevels returns the built-in authority table.
func DefaultLevels() []Level {
	return []Level{
		{
			Level:    domain.AuthorityPremium,
			MinScore: 8.0,
			Sources: []string{
				"bbc.com", "bbc.co.uk", "espn.com", "espncricinfo.com", "skysports.com",
				"theguardian.com", "reuters.com", "apnews.com", "nba.com", "icc-cricket.com",
				"premierleague.com", "uefa.com", "fifa.com", "theathletic.com",
				"bbc", "espn", "sky sports", "reuters", "the guardian", "associated press",
				"the athletic", "cricinfo",
			},
		},
		{
			Level:    domain.AuthorityStandard,
			MinScore: 5.0,
			Sources: []string{
				"goal.com", "cricbuzz.com", "bleacherreport.com", "cbssports.com", "foxsports.com",
				"si.com", "sports.yahoo.com", "ndtv.com", "hindustantimes.com", "indianexpress.com",
				"marca.com", "independent.co.uk", "telegraph.co.uk",
				"cricbuzz", "bleacher report", "cbs sports", "fox sports", "sports illustrated",
				"ndtv", "marca",
			},
		},
		{
			Level:    domain.AuthorityLow,
			MinScore: 3.0,
			Sources: []string{
				"sportskeeda.com", "thesportsrush.com", "givemesport.com", "football365.com",
				"hoopshype.com", "dailymail.co.uk", "thesun.co.uk", "mirror.co.uk",
				"sportskeeda", "givemesport", "hoopshype",
			},
		},
	}
}

type compiledLevel struct {
	minScore float64
	sources  []source
}

// Table resolves articles to authority levels. It is read-only after NewTable.
type Table struct {
	levels map[domain.AuthorityLevel]compiledLevel
}

// NewTable compiles the level definitions. Levels outside premium, standard
// and low are ignored.
func NewTable(levels []Level) *Table {
	t := &Table{levels: make(map[domain.AuthorityLevel]compiledLevel, len(levels))}
	for _, lvl := range levels {
		level, ok := domain.ParseAuthorityLevel(string(lvl.Level))
		if !ok {
			continue
		}

		compiled := compiledLevel{minScore: lvl.MinScore}
		for _, raw := range lvl.Sources {
			if src, ok := newSource(raw); ok {
				compiled.sources = append(compiled.sources, src)
			}
		}
		t.levels[level] = compiled
	}
	return t
}

// Resolve returns the first requested level, in premium, standard, low order,
// whose score floor the article meets and whose sources match it. The
// article domain is tried first and the source name is the fallback.
//
// Brand tokens match the domain as substrings only when the article carries
// no URL; a domain parsed from a URL is held to the suffix rule so that
// fakebbc.com cannot borrow the bbc brand.
func (t *Table) Resolve(article domain.Article, requested []domain.AuthorityLevel) domain.AuthorityLevel {
	host := CanonicalDomain(article.SourceDomain)
	brandFallback := strings.TrimSpace(article.URL) == ""
	for _, level := range domain.AuthorityLevels {
		if !containsLevel(requested, level) {
			continue
		}
		entry, ok := t.levels[level]
		if !ok || article.ImportanceScore < entry.minScore {
			continue
		}
		if entry.matchesDomain(host, brandFallback) || entry.matchesName(article.SourceName) {
			return level
		}
	}
	return domain.AuthorityNone
}

func (l compiledLevel) matchesDomain(host string, allowBrand bool) bool {
	for _, src := range l.sources {
		if src.matchDomain(host, allowBrand) {
			return true
		}
	}
	return false
}

func (l compiledLevel) matchesName(sourceName string) bool {
	for _, src := range l.sources {
		if src.matchName(sourceName) {
			return true
		}
	}
	return false
}

func containsLevel(levels []domain.AuthorityLevel, target domain.AuthorityLevel) bool {
	for _, level := range levels {
		if level == target {
			return true
		}
	}
	return false
}
