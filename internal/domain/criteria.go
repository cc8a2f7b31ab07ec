package domain

// KeywordMatchMode controls how keywords_include is evaluated.
type KeywordMatchMode string

const (
	MatchAny KeywordMatchMode = "any"
	MatchAll KeywordMatchMode = "all"
)

// SortStrategy names a ranking order.
type SortStrategy string

const (
	SortImportance    SortStrategy = "importance_score"
	SortPublished     SortStrategy = "published_date"
	SortPublishedDesc SortStrategy = "published_date_desc"
	SortPublishedAsc  SortStrategy = "published_date_asc"
	SortHybrid        SortStrategy = "hybrid_rank"
)

// Criteria is the per-run selection configuration. Values are kept as the
// caller supplied them; stages validate and log what they cannot use.
type Criteria struct {
	Categories         []string         `json:"categories,omitempty" yaml:"categories,omitempty"`
	MinImportanceScore *float64         `json:"min_importance_score,omitempty" yaml:"min_importance_score,omitempty"`
	MaxAgeHours        *float64         `json:"max_age_hours,omitempty" yaml:"max_age_hours,omitempty"`
	SourceAuthority    []string         `json:"source_authority,omitempty" yaml:"source_authority,omitempty"`
	ContentTypes       []string         `json:"content_types,omitempty" yaml:"content_types,omitempty"`
	KeywordsInclude    []string         `json:"keywords_include,omitempty" yaml:"keywords_include,omitempty"`
	KeywordMatchMode   KeywordMatchMode `json:"keyword_match_mode,omitempty" yaml:"keyword_match_mode,omitempty"`
	KeywordsExclude    []string         `json:"keywords_exclude,omitempty" yaml:"keywords_exclude,omitempty"`
	RequireComplete    bool             `json:"require_complete,omitempty" yaml:"require_complete,omitempty"`
	SortBy             SortStrategy     `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	Limit              int              `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Clone deep-copies the criteria so registries can hand out values safely.
func (c Criteria) Clone() Criteria {
	out := c
	out.Categories = cloneStrings(c.Categories)
	out.SourceAuthority = cloneStrings(c.SourceAuthority)
	out.ContentTypes = cloneStrings(c.ContentTypes)
	out.KeywordsInclude = cloneStrings(c.KeywordsInclude)
	out.KeywordsExclude = cloneStrings(c.KeywordsExclude)
	if c.MinImportanceScore != nil {
		v := *c.MinImportanceScore
		out.MinImportanceScore = &v
	}
	if c.MaxAgeHours != nil {
		v := *c.MaxAgeHours
		out.MaxAgeHours = &v
	}
	return out
}

// Float is a helper for filling optional numeric criteria.
func Float(v float64) *float64 {
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
