package domain

import (
	"strings"
	"time"
)

// Category is the sport an article belongs to.
type Category string

const (
	CategoryCricket       Category = "cricket"
	CategoryFootball      Category = "football"
	CategoryBasketball    Category = "basketball"
	CategoryUncategorized Category = "uncategorized"
)

// SportCategories lists the publishable categories in their fixed evaluation order.
var SportCategories = []Category{CategoryCricket, CategoryFootball, CategoryBasketball}

// ParseCategory resolves a free-text value to one of the sport categories.
func ParseCategory(value string) (Category, bool) {
	candidate := Category(strings.ToLower(strings.TrimSpace(value)))
	if candidate.IsSport() {
		return candidate, true
	}
	return CategoryUncategorized, false
}

// IsSport reports whether the category is one of the publishable sports.
func (c Category) IsSport() bool {
	for _, sport := range SportCategories {
		if c == sport {
			return true
		}
	}
	return false
}

// Tier is the discrete bucket derived from an importance score.
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierMinimal  Tier = "minimal"
)

// TierFor maps a score onto its tier. Supplied tiers are never trusted.
func TierFor(score float64) Tier {
	switch {
	case score >= 8.0:
		return TierCritical
	case score >= 6.0:
		return TierHigh
	case score >= 4.0:
		return TierMedium
	case score >= 2.0:
		return TierLow
	default:
		return TierMinimal
	}
}

// AuthorityLevel is the trust tier matched for an article's source.
type AuthorityLevel string

const (
	AuthorityPremium  AuthorityLevel = "premium"
	AuthorityStandard AuthorityLevel = "standard"
	AuthorityLow      AuthorityLevel = "low"
	AuthorityNone     AuthorityLevel = "none"
)

// AuthorityLevels is the evaluation order used by the source authority stage.
var AuthorityLevels = []AuthorityLevel{AuthorityPremium, AuthorityStandard, AuthorityLow}

// ParseAuthorityLevel resolves a requested level name.
func ParseAuthorityLevel(value string) (AuthorityLevel, bool) {
	candidate := AuthorityLevel(strings.ToLower(strings.TrimSpace(value)))
	for _, level := range AuthorityLevels {
		if candidate == level {
			return level, true
		}
	}
	return AuthorityNone, false
}

// ContentType labels what kind of story an article is.
type ContentType string

const (
	ContentBreaking    ContentType = "breaking"
	ContentTransfer    ContentType = "transfer"
	ContentInjury      ContentType = "injury"
	ContentMatchResult ContentType = "match_result"
	ContentControversy ContentType = "controversy"
	ContentRecord      ContentType = "record"
	ContentPreview     ContentType = "preview"
	ContentAnalysis    ContentType = "analysis"
)

// ContentTypes lists every recognised content type.
var ContentTypes = []ContentType{
	ContentBreaking,
	ContentTransfer,
	ContentInjury,
	ContentMatchResult,
	ContentControversy,
	ContentRecord,
	ContentPreview,
	ContentAnalysis,
}

// ParseContentType resolves a requested content type name.
func ParseContentType(value string) (ContentType, bool) {
	candidate := ContentType(strings.ToLower(strings.TrimSpace(value)))
	for _, ct := range ContentTypes {
		if candidate == ct {
			return ct, true
		}
	}
	return "", false
}

// DefaultTimeBracket is the oldest bracket, used until recency is evaluated.
const DefaultTimeBracket = 3

// TimeBracketFor buckets an article age: 0 up to 6h, 1 up to 24h, 2 up to 48h, 3 beyond.
func TimeBracketFor(age time.Duration) int {
	switch {
	case age <= 6*time.Hour:
		return 0
	case age <= 24*time.Hour:
		return 1
	case age <= 48*time.Hour:
		return 2
	default:
		return DefaultTimeBracket
	}
}

// RawArticle is a record as delivered by a collector. Every field is optional.
// ImportanceScore holds whatever the collector sent: a number, a string or nil.
type RawArticle struct {
	Title            string   `json:"title,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	Category         string   `json:"category,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	SourceName       string   `json:"source_name,omitempty"`
	SourceDomain     string   `json:"source_domain,omitempty"`
	URL              string   `json:"url,omitempty"`
	Link             string   `json:"link,omitempty"`
	PublishedDate    string   `json:"published_date,omitempty"`
	PublishedDateIST string   `json:"published_date_ist,omitempty"`
	CollectedDate    string   `json:"collected_date,omitempty"`
	ImportanceScore  any      `json:"importance_score,omitempty"`
}

// Article is a normalized, annotated record. Derived fields are recomputed on every run.
type Article struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary,omitempty"`
	Category     Category `json:"category"`
	Tags         []string `json:"categories,omitempty"`
	SourceName   string   `json:"source_name"`
	SourceDomain string   `json:"source_domain"`
	URL          string   `json:"url"`

	PublishedDate    string     `json:"published_date,omitempty"`
	PublishedDateIST string     `json:"published_date_ist,omitempty"`
	CollectedDate    string     `json:"collected_date,omitempty"`
	PublishedAtIST   *time.Time `json:"-"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CollectedAt      *time.Time `json:"-"`

	ImportanceScore float64 `json:"importance_score"`
	ScoreValid      bool    `json:"-"`
	ImportanceTier  Tier    `json:"importance_tier"`

	TimeBracket           int            `json:"time_bracket"`
	DetectedContentTypes  []ContentType  `json:"detected_content_types,omitempty"`
	MatchedAuthorityLevel AuthorityLevel `json:"matched_authority_level"`
}

// Timestamp returns the best parsed date: IST first, then the generic date, then the collected date.
func (a Article) Timestamp() (time.Time, bool) {
	for _, ts := range []*time.Time{a.PublishedAtIST, a.PublishedAt, a.CollectedAt} {
		if ts != nil {
			return *ts, true
		}
	}
	return time.Time{}, false
}

// Text is the lower-cased title and summary used by keyword stages.
func (a Article) Text() string {
	return strings.ToLower(a.Title + " " + a.Summary)
}

// Raw converts the article back into collector form. Coerced scores are
// emitted as absent so that normalizing the result reproduces the article.
func (a Article) Raw() RawArticle {
	raw := RawArticle{
		Title:            a.Title,
		Summary:          a.Summary,
		Category:         string(a.Category),
		Categories:       append([]string(nil), a.Tags...),
		SourceName:       a.SourceName,
		SourceDomain:     a.SourceDomain,
		URL:              a.URL,
		PublishedDate:    a.PublishedDate,
		PublishedDateIST: a.PublishedDateIST,
		CollectedDate:    a.CollectedDate,
	}
	if len(raw.Categories) == 0 {
		raw.Categories = nil
	}
	if a.ScoreValid {
		raw.ImportanceScore = a.ImportanceScore
	}
	return raw
}

// Clone returns a copy that shares no slices with the receiver.
func (a Article) Clone() Article {
	out := a
	if a.Tags != nil {
		out.Tags = append([]string(nil), a.Tags...)
	}
	if a.DetectedContentTypes != nil {
		out.DetectedContentTypes = append([]ContentType(nil), a.DetectedContentTypes...)
	}
	return out
}

// SelectionStatus tracks what happened to a selected article downstream.
type SelectionStatus string

const (
	StatusQueued    SelectionStatus = "queued"
	StatusPublished SelectionStatus = "published"
)

// Selection is a persisted pick of one article by one filter run.
type Selection struct {
	RunID      string
	Preset     string
	Rank       int
	Article    Article
	Status     SelectionStatus
	SelectedAt time.Time
}
