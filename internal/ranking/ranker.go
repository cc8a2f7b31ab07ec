// Package ranking orders filtered articles.
package ranking

import (
	"log/slog"
	"sort"
	"time"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/normalize"
)

// Ranker sorts articles by a named strategy. Sorts are stable, so ties keep input order.
type Ranker struct {
	loc    *time.Location
	logger *slog.Logger
}

// New builds a Ranker; loc is used when a raw date string has to be re-parsed.
func New(loc *time.Location, logger *slog.Logger) *Ranker {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ranker{loc: loc, logger: logger}
}

// Sort returns a new slice ordered by strategy. An empty strategy means
// hybrid_rank; an unknown one leaves the order untouched.
func (r *Ranker) Sort(articles []domain.Article, strategy domain.SortStrategy) []domain.Article {
	out := append([]domain.Article(nil), articles...)
	if strategy == "" {
		strategy = domain.SortHybrid
	}

	switch strategy {
	case domain.SortImportance:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ImportanceScore > out[j].ImportanceScore
		})
	case domain.SortPublished, domain.SortPublishedDesc:
		stamps := r.timestamps(out)
		sortByTime(out, stamps, func(a, b time.Time) bool { return a.After(b) })
	case domain.SortPublishedAsc:
		stamps := r.timestamps(out)
		sortByTime(out, stamps, func(a, b time.Time) bool { return a.Before(b) })
	case domain.SortHybrid:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].TimeBracket != out[j].TimeBracket {
				return out[i].TimeBracket < out[j].TimeBracket
			}
			return out[i].ImportanceScore > out[j].ImportanceScore
		})
	default:
		r.logger.Warn("unknown sort strategy, keeping input order", "sort_by", strategy)
	}

	return out
}

// timestamps resolves each article's date once; undated articles sort as the oldest.
func (r *Ranker) timestamps(articles []domain.Article) []time.Time {
	stamps := make([]time.Time, len(articles))
	for i, article := range articles {
		if ts, ok := normalize.BestTimestamp(article, r.loc); ok {
			stamps[i] = ts
		}
	}
	return stamps
}

type byTime struct {
	articles []domain.Article
	stamps   []time.Time
	less     func(a, b time.Time) bool
}

func (b byTime) Len() int           { return len(b.articles) }
func (b byTime) Less(i, j int) bool { return b.less(b.stamps[i], b.stamps[j]) }
func (b byTime) Swap(i, j int) {
	b.articles[i], b.articles[j] = b.articles[j], b.articles[i]
	b.stamps[i], b.stamps[j] = b.stamps[j], b.stamps[i]
}

func sortByTime(articles []domain.Article, stamps []time.Time, less func(a, b time.Time) bool) {
	sort.Stable(byTime{articles: articles, stamps: stamps, less: less})
}
