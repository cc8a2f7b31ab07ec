package preset

import "ArticleCurator/internal/domain"

// Built-in preset names.
const (
	PublishReady = "publish_ready"
	BreakingNews = "breaking_news"
	Transfers    = "transfers"
	MatchDay     = "match_day"
	PremiumOnly  = "premium_only"
	Last24h      = "last_24h"
)

// CustomName labels criteria supplied directly rather than by preset name.
const CustomName = "custom"

func allSports() []string {
	return []string{
		string(domain.CategoryCricket),
		string(domain.CategoryFootball),
		string(domain.CategoryBasketball),
	}
}

// Builtin returns fresh copies of the built-in presets.
func Builtin() []Preset {
	return []Preset{
		{
			Name:        PublishReady,
			Version:     1,
			Description: "Fresh, authoritative, complete articles ready for publishing.",
			Criteria: domain.Criteria{
				Categories:         allSports(),
				MinImportanceScore: domain.Float(6.0),
				MaxAgeHours:        domain.Float(24),
				SourceAuthority:    []string{string(domain.AuthorityPremium), string(domain.AuthorityStandard)},
				RequireComplete:    true,
				SortBy:             domain.SortHybrid,
				Limit:              50,
			},
		},
		{
			Name:        BreakingNews,
			Version:     1,
			Description: "High-importance breaking stories from the last six hours.",
			Criteria: domain.Criteria{
				Categories:         allSports(),
				MinImportanceScore: domain.Float(8.0),
				MaxAgeHours:        domain.Float(6),
				ContentTypes: []string{
					string(domain.ContentBreaking),
					string(domain.ContentTransfer),
					string(domain.ContentControversy),
				},
				KeywordsInclude:  []string{"breaking", "urgent", "confirmed"},
				KeywordMatchMode: domain.MatchAny,
				SortBy:           domain.SortPublished,
				Limit:            20,
			},
		},
		{
			Name:        Transfers,
			Version:     1,
			Description: "Transfer stories from the last two days.",
			Criteria: domain.Criteria{
				Categories:         allSports(),
				ContentTypes:       []string{string(domain.ContentTransfer)},
				MaxAgeHours:        domain.Float(48),
				MinImportanceScore: domain.Float(5.0),
				SortBy:             domain.SortImportance,
				Limit:              30,
			},
		},
		{
			Name:        MatchDay,
			Version:     1,
			Description: "Match results from the last twelve hours.",
			Criteria: domain.Criteria{
				Categories:         allSports(),
				ContentTypes:       []string{string(domain.ContentMatchResult)},
				MaxAgeHours:        domain.Float(12),
				MinImportanceScore: domain.Float(4.0),
				SortBy:             domain.SortPublished,
				Limit:              40,
			},
		},
		{
			Name:        PremiumOnly,
			Version:     1,
			Description: "Complete articles from premium sources only.",
			Criteria: domain.Criteria{
				Categories:         allSports(),
				SourceAuthority:    []string{string(domain.AuthorityPremium)},
				MaxAgeHours:        domain.Float(24),
				MinImportanceScore: domain.Float(5.0),
				RequireComplete:    true,
				SortBy:             domain.SortHybrid,
				Limit:              50,
			},
		},
		{
			Name:        Last24h,
			Version:     1,
			Description: "Everything from the last day, newest first.",
			Criteria: domain.Criteria{
				Categories:  allSports(),
				MaxAgeHours: domain.Float(24),
				SortBy:      domain.SortPublished,
				Limit:       100,
			},
		},
	}
}
