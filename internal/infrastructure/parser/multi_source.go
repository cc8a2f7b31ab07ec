package parser

import (
	"context"
	"fmt"
	"log/slog"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/ports"
)

// NamedSource is an ArticleSource that can identify itself in logs.
type NamedSource interface {
	ports.ArticleSource
	Name() string
}

// MultiSource concatenates several sources in the order given.
type MultiSource struct {
	sources []NamedSource
	logger  *slog.Logger
}

var _ ports.ArticleSource = (*MultiSource)(nil)

// NewMultiSource wires the sources to read on each Fetch.
func NewMultiSource(sources []NamedSource, log *slog.Logger) *MultiSource {
	return &MultiSource{sources: sources, logger: log}
}

// Fetch reads every source and keeps their records in order. The first failing
// source aborts the fetch.
func (m *MultiSource) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	if len(m.sources) == 0 {
		return nil, fmt.Errorf("no article sources configured")
	}

	var aggregated []domain.RawArticle
	for _, src := range m.sources {
		records, err := src.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		m.debug("source produced articles", "source", src.Name(), "count", len(records))
		aggregated = append(aggregated, records...)
	}

	m.debug("multi source done", "sources", len(m.sources), "total_articles", len(aggregated))
	return aggregated, nil
}

func (m *MultiSource) debug(msg string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
