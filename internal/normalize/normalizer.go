// Package normalize turns collector records into typed, annotated articles.
package normalize

import (
	"log/slog"
	"strings"
	"time"

	"ArticleCurator/internal/classifier"
	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/logging"
)

// Options controls validation strictness and date interpretation.
type Options struct {
	// Strict drops records with missing or invalid fields instead of sanitizing them.
	Strict bool
	// Location is applied to zone-less generic and collected dates. Defaults to UTC.
	Location *time.Location
}

// Normalizer canonicalizes raw records. It is safe for concurrent use.
type Normalizer struct {
	classifier *classifier.Classifier
	strict     bool
	loc        *time.Location
	logger     *slog.Logger
}

// New wires a normalizer; a nil classifier or logger gets a default.
func New(cls *classifier.Classifier, opts Options, logger *slog.Logger) *Normalizer {
	if cls == nil {
		cls = classifier.New()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{classifier: cls, strict: opts.Strict, loc: loc, logger: logger}
}

// Strict reports whether invalid records are dropped rather than sanitized.
func (n *Normalizer) Strict() bool {
	return n.strict
}

// Location is the zone used for zone-less dates.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize builds an Article from raw. The second result is false when the
// record is dropped. Derived fields are always recomputed.
func (n *Normalizer) Normalize(raw domain.RawArticle) (domain.Article, bool) {
	title := CleanText(raw.Title)
	if title == "" {
		n.drop("missing title", raw)
		return domain.Article{}, false
	}

	article := domain.Article{
		Title:                 title,
		Summary:               CleanText(raw.Summary),
		Tags:                  cleanTags(raw.Categories),
		SourceName:            strings.ToLower(strings.Join(strings.Fields(raw.SourceName), " ")),
		TimeBracket:           domain.DefaultTimeBracket,
		MatchedAuthorityLevel: domain.AuthorityNone,
	}

	if n.strict {
		if article.SourceName == "" {
			n.drop("missing source_name", raw)
			return domain.Article{}, false
		}
		if strings.TrimSpace(raw.Category) == "" && len(article.Tags) == 0 {
			n.drop("missing category", raw)
			return domain.Article{}, false
		}
	}

	article.Category = n.deriveCategory(raw.Category, article)
	if !article.Category.IsSport() {
		if n.strict {
			n.drop("category not allowed", raw)
			return domain.Article{}, false
		}
		article.Category = domain.CategoryUncategorized
	}

	article.URL = strings.TrimSpace(raw.URL)
	if article.URL == "" {
		article.URL = strings.TrimSpace(raw.Link)
	}
	article.SourceDomain = resolveDomain(article.URL, raw.SourceDomain)

	score, state := parseScore(raw.ImportanceScore)
	switch state {
	case scoreValid:
		article.ImportanceScore = score
		article.ScoreValid = true
	case scoreInvalid:
		if n.strict {
			n.drop("invalid importance_score", raw)
			return domain.Article{}, false
		}
		n.logger.Warn("invalid importance_score coerced to 0", "title", title, "value", raw.ImportanceScore)
	default:
		if n.strict {
			n.drop("missing importance_score", raw)
			return domain.Article{}, false
		}
		n.logger.Debug("missing importance_score defaulted to 0", "title", title)
	}
	article.ImportanceTier = domain.TierFor(article.ImportanceScore)

	if !n.applyDates(&article, raw) {
		return domain.Article{}, false
	}

	return article, true
}

func (n *Normalizer) deriveCategory(rawCategory string, article domain.Article) domain.Category {
	if category, ok := domain.ParseCategory(rawCategory); ok {
		return category
	}
	if category, ok := n.classifier.MatchTags(article.Tags); ok {
		return category
	}
	return n.classifier.Classify(article.Title, article.Summary, article.SourceName)
}

func (n *Normalizer) applyDates(article *domain.Article, raw domain.RawArticle) bool {
	fields := []struct {
		name   string
		value  string
		loc    *time.Location
		raw    *string
		parsed **time.Time
	}{
		{"published_date_ist", raw.PublishedDateIST, IST, &article.PublishedDateIST, &article.PublishedAtIST},
		{"published_date", raw.PublishedDate, n.loc, &article.PublishedDate, &article.PublishedAt},
		{"collected_date", raw.CollectedDate, n.loc, &article.CollectedDate, &article.CollectedAt},
	}

	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		*f.raw = value

		ts, ok := ParseDate(value, f.loc)
		if !ok {
			if n.strict {
				n.drop("unparsable "+f.name, raw)
				return false
			}
			n.logger.Warn("unparsable date kept as raw string", "field", f.name, "value", value, "title", article.Title)
			continue
		}
		*f.parsed = &ts
	}
	return true
}

func (n *Normalizer) drop(reason string, raw domain.RawArticle) {
	n.logger.Debug("article dropped", "reason", reason, "title", raw.Title, "url", raw.URL)
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if cleaned := CleanText(tag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
