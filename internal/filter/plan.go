package filter

import (
	"log/slog"
	"strings"
	"time"

	"ArticleCurator/internal/domain"
)

// plan is the validated form of a Criteria value. Unusable values are logged
// and dropped here so stages never see them.
type plan struct {
	categories      map[domain.Category]struct{}
	minScore        *float64
	maxAge          *time.Duration
	levels          []domain.AuthorityLevel
	contentTypes    []domain.ContentType
	include         []string
	matchMode       domain.KeywordMatchMode
	exclude         []string
	requireComplete bool
	sortBy          domain.SortStrategy
	limit           int
}

func compilePlan(c domain.Criteria, logger *slog.Logger) plan {
	p := plan{
		categories:      map[domain.Category]struct{}{},
		minScore:        c.MinImportanceScore,
		include:         cleanKeywords(c.KeywordsInclude),
		exclude:         cleanKeywords(c.KeywordsExclude),
		requireComplete: c.RequireComplete,
		sortBy:          c.SortBy,
	}

	for _, name := range c.Categories {
		category, ok := domain.ParseCategory(name)
		if !ok {
			logger.Warn("ignoring unknown category in criteria", "category", name)
			continue
		}
		p.categories[category] = struct{}{}
	}

	if c.MaxAgeHours != nil {
		if *c.MaxAgeHours < 0 {
			logger.Warn("ignoring negative max_age_hours", "max_age_hours", *c.MaxAgeHours)
		} else {
			age := time.Duration(*c.MaxAgeHours * float64(time.Hour))
			p.maxAge = &age
		}
	}

	for _, name := range c.SourceAuthority {
		level, ok := domain.ParseAuthorityLevel(name)
		if !ok {
			logger.Warn("ignoring unknown authority level in criteria", "source_authority", name)
			continue
		}
		p.levels = append(p.levels, level)
	}

	for _, name := range c.ContentTypes {
		ct, ok := domain.ParseContentType(name)
		if !ok {
			logger.Warn("ignoring unknown content type in criteria", "content_type", name)
			continue
		}
		p.contentTypes = append(p.contentTypes, ct)
	}

	switch mode := domain.KeywordMatchMode(strings.ToLower(string(c.KeywordMatchMode))); mode {
	case domain.MatchAll:
		p.matchMode = domain.MatchAll
	case domain.MatchAny, "":
		p.matchMode = domain.MatchAny
	default:
		logger.Warn("unknown keyword_match_mode, using any", "keyword_match_mode", c.KeywordMatchMode)
		p.matchMode = domain.MatchAny
	}

	switch {
	case c.Limit > 0:
		p.limit = c.Limit
	case c.Limit < 0:
		logger.Warn("ignoring negative limit", "limit", c.Limit)
	}

	return p
}

func cleanKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
