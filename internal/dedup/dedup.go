// Package dedup removes near-duplicate articles.
//
// Exact URL duplicates are caught through a normalized-URL set. Titles are
// grouped into buckets by their leading words so each new article is only
// compared against a small candidate set. When an article's own bucket is
// empty exactly one other bucket, of similar key length, is searched. That bound
// trades some recall for a predictable number of comparisons.
//
// Articles are processed in input order and the first member of a duplicate
// cluster is kept; callers that need a specific survivor must sort first.
package dedup

import (
	"log/slog"
	"unicode/utf8"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/logging"
)

const (
	BucketWords           = 5
	MinBucketWords        = 3
	NeighbourLengthWindow = 10
	SummaryPrefix         = 200
	TitleThreshold        = 0.75
	PairTitleThreshold    = 0.6
	SummaryThreshold      = 0.7
)

// Stats describes one Dedupe call.
type Stats struct {
	Processed       int
	Unique          int
	URLDuplicates   int
	TitleDuplicates int
}

// Duplicates is the number of articles removed.
func (s Stats) Duplicates() int {
	return s.URLDuplicates + s.TitleDuplicates
}

// Deduplicator holds no per-run state and can be shared.
type Deduplicator struct {
	logger *slog.Logger
}

// New returns a Deduplicator logging dropped duplicates at debug level.
func New(logger *slog.Logger) *Deduplicator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Deduplicator{logger: logger}
}

type entry struct {
	title   string
	summary string
	source  string
}

type index struct {
	urls     map[string]struct{}
	buckets  map[string][]entry
	byLength map[int][]string
}

func newIndex(capacity int) *index {
	return &index{
		urls:     make(map[string]struct{}, capacity),
		buckets:  make(map[string][]entry),
		byLength: make(map[int][]string),
	}
}

// Dedupe returns the first-seen representative of every duplicate cluster,
// preserving input order.
func (d *Deduplicator) Dedupe(articles []domain.Article) ([]domain.Article, Stats) {
	stats := Stats{Processed: len(articles)}
	if len(articles) == 0 {
		return nil, stats
	}

	idx := newIndex(len(articles))
	unique := make([]domain.Article, 0, len(articles))

	for _, article := range articles {
		urlKey := NormalizeURL(article.URL)
		if urlKey != "" {
			if _, seen := idx.urls[urlKey]; seen {
				stats.URLDuplicates++
				d.logger.Debug("duplicate url", "url", article.URL, "title", article.Title)
				continue
			}
		}

		current := entry{
			title:   NormalizeTitle(article.Title),
			summary: summaryPrefix(article.Summary),
			source:  article.Title,
		}
		key := BucketKey(current.title)

		if match, ok := idx.findDuplicate(key, current); ok {
			stats.TitleDuplicates++
			d.logger.Debug("duplicate title", "title", article.Title, "kept", match.source)
			continue
		}

		if urlKey != "" {
			idx.urls[urlKey] = struct{}{}
		}
		idx.add(key, current)
		unique = append(unique, article)
	}

	stats.Unique = len(unique)
	return unique, stats
}

func (idx *index) add(key string, e entry) {
	if _, exists := idx.buckets[key]; !exists {
		length := utf8.RuneCountInString(key)
		idx.byLength[length] = append(idx.byLength[length], key)
	}
	idx.buckets[key] = append(idx.buckets[key], e)
}

func (idx *index) findDuplicate(key string, current entry) (entry, bool) {
	for _, candidate := range idx.candidates(key) {
		if isDuplicate(current, candidate) {
			return candidate, true
		}
	}
	return entry{}, false
}

// candidates returns the article's own bucket or, when that is empty, the
// single closest-length bucket within NeighbourLengthWindowcharacters.
func (idx *index) candidates(key string) []entry {
	if bucket := idx.buckets[key]; len(bucket) > 0 {
		return bucket
	}

	length := utf8.RuneCountInString(key)
	for delta := 0; delta <= NeighbourLengthWindow; delta++ {
		for _, l := range neighbourLengths(length, delta) {
			for _, other := range idx.byLength[l] {
				if other != key && len(idx.buckets[other]) > 0 {
					return idx.buckets[other]
				}
			}
		}
	}
	return nil
}

func neighbourLengths(length, delta int) []int {
	if delta == 0 {
		return []int{length}
	}
	return []int{length - delta, length + delta}
}

func isDuplicate(a, b entry) bool {
	if a.title == b.title {
		return true
	}

	titleRatio := Ratio(a.title, b.title)
	if titleRatio >= TitleThreshold {
		return true
	}
	if titleRatio < PairTitleThreshold || a.summary == "" || b.summary == "" {
		return false
	}
	return Ratio(a.summary, b.summary) >= SummaryThreshold
}
