package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"ArticleCurator/internal/authority"
	"ArticleCurator/internal/classifier"
	"ArticleCurator/internal/config"
	"ArticleCurator/internal/dedup"
	"ArticleCurator/internal/filter"
	"ArticleCurator/internal/infrastructure/parser"
	"ArticleCurator/internal/infrastructure/storage"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/metrics"
	"ArticleCurator/internal/normalize"
	"ArticleCurator/internal/preset"
	"ArticleCurator/internal/ranking"
	"ArticleCurator/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	presets  *preset.Registry
	metrics  *metrics.Collector
	db       *sql.DB
}

// New builds the application for one batch of input files ("-" is stdin).
// A database connection is opened only when a DSN is configured.
func New(ctx context.Context, cfg config.Config, inputs []string, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry, err := buildPresets(cfg.Presets)
	if err != nil {
		return nil, err
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	levels := cfg.Authority.Levels
	if len(levels) == 0 {
		levels = authority.DefaultLevels()
	}

	cls := classifier.New()
	if len(cfg.Classifier.Rules) > 0 {
		cls = classifier.NewWithRules(cfg.Classifier.Rules, classifier.TagRules)
	}

	loc := cfg.Filter.Location()
	engine := filter.NewEngine(filter.Deps{
		Normalizer: normalize.New(
			cls,
			normalize.Options{Strict: cfg.Filter.Strict, Location: loc},
			baseLogger.With("component", "normalizer"),
		),
		Authority:    authority.NewTable(levels),
		Deduplicator: dedup.New(baseLogger.With("component", "dedup")),
		Ranker:       ranking.New(loc, baseLogger.With("component", "ranker")),
		Recorder:     collector,
		Logger:       baseLogger.With("component", "filter"),
	}, filter.Options{
		Strict:   cfg.Filter.Strict,
		Workers:  cfg.Filter.Workers,
		Location: loc,
	})

	sources := make([]parser.NamedSource, 0, len(inputs))
	for _, input := range inputs {
		sources = append(sources, parser.NewFileSource(input, baseLogger.With("component", "source")))
	}

	a := &Application{
		cfg:     cfg,
		logger:  baseLogger,
		presets: registry,
		metrics: collector,
	}

	deps := usecase.PipelineDeps{
		Source:  parser.NewMultiSource(sources, baseLogger.With("component", "source")),
		Presets: registry,
		Engine:  engine,
		Logger:  baseLogger.With("component", "pipeline"),
	}
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		repo := storage.NewPostgresRepository(db)
		deps.Repository = repo
		deps.Publisher = repo
	}

	a.pipeline = usecase.NewPipeline(deps)
	return a, nil
}

// Run performs one curation and flushes metrics when a textfile is configured.
func (a *Application) Run(ctx context.Context, req usecase.Request) (usecase.Result, error) {
	result, err := a.pipeline.Curate(ctx, req)
	if err != nil {
		return usecase.Result{}, err
	}

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("cannot write metrics textfile", "path", path, "error", err)
		}
	}
	return result, nil
}

// MarkPublished flips queued selections of runID whose URL is listed to published.
func (a *Application) MarkPublished(ctx context.Context, runID string, urls []string) (int64, error) {
	return a.pipeline.Publish(ctx, runID, urls)
}

// PresetNames lists every preset the application can run.
func (a *Application) PresetNames() []string {
	return a.presets.Names()
}

// Close releases the database connection, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildPresets(cfg config.PresetsConfig) (*preset.Registry, error) {
	var custom []preset.Preset
	if cfg.File != "" {
		loaded, err := preset.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		custom = loaded
	}

	registry, err := preset.NewRegistry(custom...)
	if err != nil {
		return nil, fmt.Errorf("build preset registry: %w", err)
	}
	return registry, nil
}
