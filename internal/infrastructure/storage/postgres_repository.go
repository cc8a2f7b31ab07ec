package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/ports"
)

const selectionsTable = "curated_articles"

var selectionColumns = []string{
	"run_id", "preset", "rank", "url", "title", "summary", "category",
	"source_name", "source_domain", "importance_score", "importance_tier",
	"time_bracket", "authority_level", "content_types", "published_at",
	"status", "selected_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists curated selections into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.SelectionRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to Postgres through lib/pq and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SaveSelection upserts one row per selection keyed by (run_id, url).
// Selections without a URL have no key and are not stored.
func (r *PostgresRepository) SaveSelection(ctx context.Context, selections []domain.Selection) error {
	if r.db == nil {
		return nil
	}

	query, args, err := buildSelectionUpsert(selections)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert selections: %w", err)
	}
	return nil
}

// buildSelectionUpsert returns an empty query when nothing is storable.
func buildSelectionUpsert(selections []domain.Selection) (string, []interface{}, error) {
	insert := psql.Insert(selectionsTable).Columns(selectionColumns...)

	rows := 0
	for _, s := range selections {
		a := s.Article
		if a.URL == "" {
			continue
		}

		var publishedAt interface{}
		if ts, ok := a.Timestamp(); ok {
			publishedAt = ts.UTC()
		}

		contentTypes := make(pq.StringArray, 0, len(a.DetectedContentTypes))
		for _, ct := range a.DetectedContentTypes {
			contentTypes = append(contentTypes, string(ct))
		}

		insert = insert.Values(
			s.RunID, s.Preset, s.Rank, a.URL, a.Title, a.Summary, string(a.Category),
			a.SourceName, a.SourceDomain, a.ImportanceScore, string(a.ImportanceTier),
			a.TimeBracket, string(a.MatchedAuthorityLevel), contentTypes, publishedAt,
			string(s.Status), s.SelectedAt.UTC(),
		)
		rows++
	}
	if rows == 0 {
		return "", nil, nil
	}

	query, args, err := insert.Suffix(`ON CONFLICT (run_id, url) DO UPDATE
              SET rank = EXCLUDED.rank,
                  importance_score = EXCLUDED.importance_score,
                  importance_tier = EXCLUDED.importance_tier,
                  status = EXCLUDED.status,
                  updated_at = NOW()`).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build selection upsert: %w", err)
	}
	return query, args, nil
}

// MarkPublished flips queued selections of a run to published.
func (r *PostgresRepository) MarkPublished(ctx context.Context, runID string, urls []string) (int64, error) {
	if r.db == nil || len(urls) == 0 {
		return 0, nil
	}

	query, args, err := buildMarkPublished(runID, urls)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}
	return res.RowsAffected()
}

func buildMarkPublished(runID string, urls []string) (string, []interface{}, error) {
	query, args, err := psql.Update(selectionsTable).
		Set("status", string(domain.StatusPublished)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"run_id": runID, "status": string(domain.StatusQueued)}).
		Where("url = ANY(?)", pq.StringArray(urls)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build mark published: %w", err)
	}
	return query, args, nil
}
