// Package report aggregates selected articles for output and logging.
package report

import (
	"math"

	"ArticleCurator/internal/domain"
)

// Summarize counts articles per category, tier, authority level, content type
// and time bracket. An empty input yields zero counts and empty maps.
func Summarize(articles []domain.Article) domain.Summary {
	s := domain.Summary{
		Total:         len(articles),
		ByCategory:    map[string]int{},
		ByTier:        map[string]int{},
		ByAuthority:   map[string]int{},
		ByContentType: map[string]int{},
		ByTimeBracket: map[int]int{},
	}
	if len(articles) == 0 {
		return s
	}

	var total float64
	for _, a := range articles {
		s.ByCategory[string(a.Category)]++
		s.ByTier[string(a.ImportanceTier)]++
		s.ByTimeBracket[a.TimeBracket]++
		if a.MatchedAuthorityLevel != "" {
			s.ByAuthority[string(a.MatchedAuthorityLevel)]++
		}
		for _, ct := range a.DetectedContentTypes {
			s.ByContentType[string(ct)]++
		}
		total += a.ImportanceScore
	}
	s.AverageScore = math.Round(total/float64(len(articles))*100) / 100
	return s
}
