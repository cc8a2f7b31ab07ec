// Package filter runs the article selection pipeline: normalization, the
// ordered stage chain, deduplication, ranking and truncation.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ArticleCurator/internal/authority"
	"ArticleCurator/internal/dedup"
	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/normalize"
	"ArticleCurator/internal/ranking"
)

// Recorder receives run statistics. internal/metrics provides the Prometheus
// implementation.
type Recorder interface {
	ObserveReceived(count int)
	ObserveDropped(stage string, count int)
	ObserveDuplicates(count int)
	ObserveSelected(count int)
	ObserveRun(duration time.Duration)
}

// Deps wires the collaborators of an Engine. Nil members get defaults.
type Deps struct {
	Normalizer   *normalize.Normalizer
	Authority    *authority.Table
	Deduplicator *dedup.Deduplicator
	Ranker       *ranking.Ranker
	Recorder     Recorder
	Logger       *slog.Logger
}

// Options tunes an Engine.
type Options struct {
	// Strict selects drop-on-invalid handling for the whole run. It only
	// seeds the default normalizer; an injected normalizer's mode wins.
	Strict bool
	// Workers bounds concurrent per-article evaluation; values below 2 run sequentially.
	Workers int
	// Location is used for zone-less dates. Like Strict, an injected
	// normalizer's location takes precedence.
	Location *time.Location
	// Now is the clock used for recency; defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of one Filter call.
type Result struct {
	Articles []domain.Article
	Received int
	Dropped  map[string]int
	Dedup    dedup.Stats
}

// Engine is immutable after construction and safe for concurrent runs.
type Engine struct {
	normalizer *normalize.Normalizer
	authority  *authority.Table
	dedup      *dedup.Deduplicator
	ranker     *ranking.Ranker
	recorder   Recorder
	logger     *slog.Logger
	strict     bool
	workers    int
	loc        *time.Location
	now        func() time.Time
}

// NewEngine builds an Engine.
func NewEngine(deps Deps, opts Options) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		normalizer: deps.Normalizer,
		authority:  deps.Authority,
		dedup:      deps.Deduplicator,
		ranker:     deps.Ranker,
		recorder:   deps.Recorder,
		logger:     logger,
		workers:    opts.Workers,
		now:        now,
	}
	if e.normalizer == nil {
		e.normalizer = normalize.New(nil, normalize.Options{Strict: opts.Strict, Location: loc}, logger.With("component", "normalizer"))
	} else if e.normalizer.Strict() != opts.Strict {
		logger.Warn("filter strictness differs from the normalizer, using the normalizer's",
			"normalizer_strict", e.normalizer.Strict())
	}
	// Normalization and recency must agree on strictness and zone.
	e.strict = e.normalizer.Strict()
	e.loc = e.normalizer.Location()

	if e.authority == nil {
		e.authority = authority.NewTable(authority.DefaultLevels())
	}
	if e.dedup == nil {
		e.dedup = dedup.New(logger.With("component", "dedup"))
	}
	if e.ranker == nil {
		e.ranker = ranking.New(e.loc, logger.With("component", "ranker"))
	}
	return e
}

type outcome struct {
	article domain.Article
	kept    bool
	stage   string
}

// Filter selects, deduplicates and ranks raws according to criteria. Records
// are never rejected with an error; the only error is ctx cancellation.
func (e *Engine) Filter(ctx context.Context, raws []domain.RawArticle, criteria domain.Criteria) (Result, error) {
	started := time.Now()
	result := Result{Received: len(raws), Dropped: map[string]int{}}
	e.observeReceived(len(raws))

	p := compilePlan(criteria, e.logger)
	if len(p.categories) == 0 {
		e.logger.Info("no categories requested, selecting nothing", "received", len(raws))
		e.observeSelected(0)
		e.observeRun(time.Since(started))
		return result, nil
	}

	stages := buildStages(p, stageEnv{
		now:       e.now(),
		loc:       e.loc,
		strict:    e.strict,
		authority: e.authority,
	})

	outcomes, err := e.evaluate(ctx, raws, stages)
	if err != nil {
		return Result{}, err
	}

	survivors := make([]domain.Article, 0, len(outcomes))
	for _, out := range outcomes {
		if out.kept {
			survivors = append(survivors, out.article)
			continue
		}
		result.Dropped[out.stage]++
	}
	for stage, count := range result.Dropped {
		e.observeDropped(stage, count)
	}

	unique, stats := e.dedup.Dedupe(survivors)
	result.Dedup = stats
	e.observeDuplicates(stats.Duplicates())

	ranked := e.ranker.Sort(unique, p.sortBy)
	if p.limit > 0 && len(ranked) > p.limit {
		ranked = ranked[:p.limit]
	}
	result.Articles = ranked

	e.observeSelected(len(ranked))
	e.observeRun(time.Since(started))
	e.logger.Info("filter run complete",
		"received", result.Received,
		"survived_stages", len(survivors),
		"duplicates", stats.Duplicates(),
		"selected", len(ranked),
	)

	return result, nil
}

// evaluate runs every record through normalization and the stage chain.
// Outcomes are index-addressed so their order always equals input order.
func (e *Engine) evaluate(ctx context.Context, raws []domain.RawArticle, stages []Stage) ([]outcome, error) {
	outcomes := make([]outcome, len(raws))

	if e.workers < 2 || len(raws) < 2 {
		for i, raw := range raws {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("filter cancelled: %w", err)
			}
			outcomes[i] = e.process(raw, stages)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range raws {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.process(raws[i], stages)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("filter cancelled: %w", err)
	}
	return outcomes, nil
}

// process short-circuits at the first stage that rejects the article.
func (e *Engine) process(raw domain.RawArticle, stages []Stage) outcome {
	article, ok := e.normalizer.Normalize(raw)
	if !ok {
		return outcome{stage: StageNormalize}
	}

	for _, stage := range stages {
		article, ok = stage.Apply(article)
		if !ok {
			e.logger.Debug("article filtered", "stage", stage.Name, "title", article.Title)
			return outcome{stage: stage.Name}
		}
	}
	return outcome{article: article, kept: true}
}

func (e *Engine) observeReceived(n int) {
	if e.recorder != nil {
		e.recorder.ObserveReceived(n)
	}
}

func (e *Engine) observeDropped(stage string, n int) {
	if e.recorder != nil {
		e.recorder.ObserveDropped(stage, n)
	}
}

func (e *Engine) observeDuplicates(n int) {
	if e.recorder != nil {
		e.recorder.ObserveDuplicates(n)
	}
}

func (e *Engine) observeSelected(n int) {
	if e.recorder != nil {
		e.recorder.ObserveSelected(n)
	}
}

func (e *Engine) observeRun(d time.Duration) {
	if e.recorder != nil {
		e.recorder.ObserveRun(d)
	}
}
