package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/filter"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/ports"
	"ArticleCurator/internal/preset"
	"ArticleCurator/internal/report"
)

// DefaultPreset is used when a request names neither a preset nor criteria.
const DefaultPreset = preset.PublishReady

// CustomPreset labels runs driven by explicit criteria.
const CustomPreset = preset.CustomName

// Filterer is the selection engine the pipeline drives.
type Filterer interface {
	Filter(ctx context.Context, raws []domain.RawArticle, criteria domain.Criteria) (filter.Result, error)
}

// PipelineDeps wires all driven adapters into the curation pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Presets    ports.PresetCatalog
	Engine     Filterer
	Repository ports.SelectionRepository
	Publisher  ports.SelectionPublisher
	Logger     *slog.Logger
	Clock      func() time.Time
	NewRunID   func() string
}

// Request selects the criteria for one run. Explicit Criteria take priority
// over Preset.
type Request struct {
	Preset   string
	Criteria *domain.Criteria
	Store    bool
}

// Stats reports what happened to the input batch.
type Stats struct {
	Received   int            `json:"received"`
	Dropped    map[string]int `json:"dropped"`
	Duplicates int            `json:"duplicates"`
}

// Result is the output document of a run.
type Result struct {
	RunID    string           `json:"run_id"`
	Preset   string           `json:"preset"`
	Articles []domain.Article `json:"articles"`
	Summary  domain.Summary   `json:"summary"`
	Stats    Stats            `json:"stats"`
	Stored   int              `json:"stored,omitempty"`
}

// Pipeline implements the curation workflow: fetch, filter, summarize, store.
type Pipeline struct {
	source     ports.ArticleSource
	presets    ports.PresetCatalog
	engine     Filterer
	repository ports.SelectionRepository
	publisher  ports.SelectionPublisher
	logger     *slog.Logger
	clock      func() time.Time
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:     deps.Source,
		presets:    deps.Presets,
		engine:     deps.Engine,
		repository: deps.Repository,
		publisher:  deps.Publisher,
		logger:     deps.Logger,
		clock:      deps.Clock,
		newRunID:   deps.NewRunID,
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = func() string { return uuid.NewString() }
	}
	return p
}

// Curate runs one selection over the source batch.
func (p *Pipeline) Curate(ctx context.Context, req Request) (Result, error) {
	if p.source == nil {
		return Result{}, errors.New("article source is not configured")
	}
	if p.engine == nil {
		return Result{}, errors.New("filter engine is not configured")
	}
	if req.Store && p.repository == nil {
		return Result{}, errors.New("storing requested but no selection repository is configured")
	}

	name, criteria, err := p.resolveCriteria(req)
	if err != nil {
		return Result{}, err
	}

	runID := p.newRunID()
	logger := p.logger.With("run_id", runID, "preset", name)

	raws, err := p.source.Fetch(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch articles: %w", err)
	}
	logger.Info("articles fetched", "count", len(raws))

	filtered, err := p.engine.Filter(ctx, raws, criteria)
	if err != nil {
		return Result{}, fmt.Errorf("filter articles: %w", err)
	}

	articles := filtered.Articles
	if articles == nil {
		articles = []domain.Article{}
	}

	result := Result{
		RunID:    runID,
		Preset:   name,
		Articles: articles,
		Summary:  report.Summarize(articles),
		Stats: Stats{
			Received:   filtered.Received,
			Dropped:    filtered.Dropped,
			Duplicates: filtered.Dedup.Duplicates(),
		},
	}

	if req.Store && len(articles) > 0 {
		selections := buildSelections(runID, name, articles, p.clock())
		if err := p.repository.SaveSelection(ctx, selections); err != nil {
			return Result{}, fmt.Errorf("persist selection %s: %w", runID, err)
		}
		result.Stored = len(selections)
	}

	logger.Info("curation finished",
		"selected", len(articles),
		"average_score", result.Summary.AverageScore,
		"stored", result.Stored,
	)
	return result, nil
}

// Publish marks the given URLs of a stored run as published and returns how
// many queued selections changed.
func (p *Pipeline) Publish(ctx context.Context, runID string, urls []string) (int64, error) {
	if p.publisher == nil {
		return 0, errors.New("publishing requested but no selection repository is configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return 0, errors.New("run id is required")
	}

	cleaned := make([]string, 0, len(urls))
	for _, link := range urls {
		if link = strings.TrimSpace(link); link != "" {
			cleaned = append(cleaned, link)
		}
	}
	if len(cleaned) == 0 {
		return 0, fmt.Errorf("no urls to publish for run %s", runID)
	}

	n, err := p.publisher.MarkPublished(ctx, runID, cleaned)
	if err != nil {
		return 0, fmt.Errorf("publish run %s: %w", runID, err)
	}
	p.logger.Info("selections published", "run_id", runID, "requested", len(cleaned), "updated", n)
	return n, nil
}

func (p *Pipeline) resolveCriteria(req Request) (string, domain.Criteria, error) {
	if req.Criteria != nil {
		return CustomPreset, req.Criteria.Clone(), nil
	}

	name := req.Preset
	if name == "" {
		name = DefaultPreset
	}
	if p.presets == nil {
		return "", domain.Criteria{}, fmt.Errorf("preset %s requested but no presets are configured", name)
	}

	criteria, err := p.presets.Get(name)
	if err != nil {
		return "", domain.Criteria{}, fmt.Errorf("resolve criteria: %w", err)
	}
	return name, criteria, nil
}

func buildSelections(runID, presetName string, articles []domain.Article, at time.Time) []domain.Selection {
	selections := make([]domain.Selection, 0, len(articles))
	for i, article := range articles {
		selections = append(selections, domain.Selection{
			RunID:      runID,
			Preset:     presetName,
			Rank:       i + 1,
			Article:    article,
			Status:     domain.StatusQueued,
			SelectedAt: at,
		})
	}
	return selections
}
