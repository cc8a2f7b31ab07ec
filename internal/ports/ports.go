package ports

import (
	"context"

	"ArticleCurator/internal/domain"
)

// ArticleSource delivers the raw batch a curation run filters.
type ArticleSource interface {
	Fetch(ctx context.Context) ([]domain.RawArticle, error)
}

// SelectionRepository persists the articles a run selected.
type SelectionRepository interface {
	SaveSelection(ctx context.Context, selections []domain.Selection) error
}

// SelectionPublisher moves queued selections of a run to published.
type SelectionPublisher interface {
	MarkPublished(ctx context.Context, runID string, urls []string) (int64, error)
}

// PresetCatalog resolves preset names to criteria.
type PresetCatalog interface {
	Get(name string) (domain.Criteria, error)
}
