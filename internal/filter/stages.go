package filter

import (
	"strings"
	"time"
	"unicode/utf8"

	"ArticleCurator/internal/authority"
	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/normalize"
)

// Stage names, also used as metric labels.
const (
	StageNormalize       = "normalize"
	StageCategory        = "category"
	StageMinScore        = "min_score"
	StageRecency         = "recency"
	StageSourceAuthority = "source_authority"
	StageContentType     = "content_type"
	StageKeywordInclude  = "keyword_include"
	StageKeywordExclude  = "keyword_exclude"
	StageCompleteness    = "completeness"
)

// minCompleteTitle is the shortest title the completeness stage accepts.
const minCompleteTitle = 10

// Stage is one predicate in the chain. Apply returns the annotated copy and
// whether the article survives.
type Stage struct {
	Name  string
	Apply func(domain.Article) (domain.Article, bool)
}

type stageEnv struct {
	now       time.Time
	loc       *time.Location
	strict    bool
	authority *authority.Table
}

// buildStages returns the configured stages in their fixed order.
func buildStages(p plan, env stageEnv) []Stage {
	stages := []Stage{categoryStage(p.categories)}

	if p.minScore != nil {
		stages = append(stages, minScoreStage(*p.minScore))
	}

	stages = append(stages, recencyStage(env.now, p.maxAge, env.strict, env.loc))

	if len(p.levels) > 0 && env.authority != nil {
		stages = append(stages, authorityStage(env.authority, p.levels))
	}
	if len(p.contentTypes) > 0 {
		stages = append(stages, contentTypeStage(p.contentTypes))
	}
	if len(p.include) > 0 {
		stages = append(stages, includeStage(p.include, p.matchMode))
	}
	if len(p.exclude) > 0 {
		stages = append(stages, excludeStage(p.exclude))
	}
	if p.requireComplete {
		stages = append(stages, completenessStage(env.loc))
	}

	return stages
}

func categoryStage(allowed map[domain.Category]struct{}) Stage {
	return Stage{Name: StageCategory, Apply: func(a domain.Article) (domain.Article, bool) {
		_, ok := allowed[a.Category]
		return a, ok
	}}
}

func minScoreStage(min float64) Stage {
	return Stage{Name: StageMinScore, Apply: func(a domain.Article) (domain.Article, bool) {
		return a, a.ImportanceScore >= min
	}}
}

func recencyStage(now time.Time, maxAge *time.Duration, strict bool, loc *time.Location) Stage {
	return Stage{Name: StageRecency, Apply: func(a domain.Article) (domain.Article, bool) {
		ts, ok := normalize.BestTimestamp(a, loc)
		if !ok {
			if strict {
				return a, false
			}
			a.TimeBracket = domain.DefaultTimeBracket
			return a, true
		}

		age := now.Sub(ts)
		if age < 0 {
			age = 0
		}
		a.TimeBracket = domain.TimeBracketFor(age)
		if maxAge != nil && age > *maxAge {
			return a, false
		}
		return a, true
	}}
}

func authorityStage(table *authority.Table, levels []domain.AuthorityLevel) Stage {
	return Stage{Name: StageSourceAuthority, Apply: func(a domain.Article) (domain.Article, bool) {
		level := table.Resolve(a, levels)
		a.MatchedAuthorityLevel = level
		return a, level != domain.AuthorityNone
	}}
}

func contentTypeStage(requested []domain.ContentType) Stage {
	return Stage{Name: StageContentType, Apply: func(a domain.Article) (domain.Article, bool) {
		detected := detectContentTypes(a.Text(), requested)
		a.DetectedContentTypes = detected
		return a, len(detected) > 0
	}}
}

func includeStage(keywords []string, mode domain.KeywordMatchMode) Stage {
	return Stage{Name: StageKeywordInclude, Apply: func(a domain.Article) (domain.Article, bool) {
		hits := keywordHits(a.Text(), keywords)
		if mode == domain.MatchAll {
			return a, hits == len(keywords)
		}
		return a, hits > 0
	}}
}

func excludeStage(keywords []string) Stage {
	return Stage{Name: StageKeywordExclude, Apply: func(a domain.Article) (domain.Article, bool) {
		return a, keywordHits(a.Text(), keywords) == 0
	}}
}

func completenessStage(loc *time.Location) Stage {
	return Stage{Name: StageCompleteness, Apply: func(a domain.Article) (domain.Article, bool) {
		if utf8.RuneCountInString(strings.TrimSpace(a.Title)) < minCompleteTitle {
			return a, false
		}
		// Re-validated here so a category set by an earlier bug cannot slip through.
		if !a.Category.IsSport() {
			return a, false
		}
		if strings.TrimSpace(a.URL) == "" || !a.ScoreValid {
			return a, false
		}
		_, dated := normalize.BestTimestamp(a, loc)
		return a, dated
	}}
}
