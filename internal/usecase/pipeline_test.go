package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/filter"
	"ArticleCurator/internal/preset"
)

var pipelineNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	raws []domain.RawArticle
	err  error
}

func (s stubSource) Fetch(context.Context) ([]domain.RawArticle, error) {
	return s.raws, s.err
}

type recordingRepo struct {
	saved []domain.Selection
	err   error
}

func (r *recordingRepo) SaveSelection(_ context.Context, selections []domain.Selection) error {
	r.saved = append(r.saved, selections...)
	return r.err
}

type capturingEngine struct {
	criteria domain.Criteria
	inner    *filter.Engine
}

func (c *capturingEngine) Filter(ctx context.Context, raws []domain.RawArticle, criteria domain.Criteria) (filter.Result, error) {
	c.criteria = criteria
	return c.inner.Filter(ctx, raws, criteria)
}

func raw(title string, score float64, url string) domain.RawArticle {
	return domain.RawArticle{
		Title:           title,
		Category:        "football",
		SourceName:      "BBC Sport",
		URL:             url,
		ImportanceScore: score,
		PublishedDate:   pipelineNow.Add(-time.Hour).Format(time.RFC3339),
	}
}

func newPipeline(t *testing.T, src stubSource, repo *recordingRepo) (*Pipeline, *capturingEngine) {
	t.Helper()

	registry, err := preset.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	engine := &capturingEngine{inner: filter.NewEngine(filter.Deps{}, filter.Options{
		Now: func() time.Time { return pipelineNow },
	})}

	deps := PipelineDeps{
		Source:   src,
		Presets:  registry,
		Engine:   engine,
		Clock:    func() time.Time { return pipelineNow },
		NewRunID: func() string { return "run-42" },
	}
	if repo != nil {
		deps.Repository = repo
	}
	return NewPipeline(deps), engine
}

func TestCurateWithPresetStoresRankedSelection(t *testing.T) {
	t.Parallel()

	src := stubSource{raws: []domain.RawArticle{
		raw("Arsenal complete deal for Brazilian winger", 8.2, "https://bbc.com/1"),
		raw("Chelsea sack manager after derby defeat", 9.1, "https://bbc.com/2"),
		raw("Minor league side repaint stadium seats", 2, "https://bbc.com/3"),
	}}
	repo := &recordingRepo{}
	p, engine := newPipeline(t, src, repo)

	res, err := p.Curate(context.Background(), Request{Preset: preset.Transfers, Store: true})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}

	if res.RunID != "run-42" || res.Preset != preset.Transfers {
		t.Fatalf("unexpected run header: %s %s", res.RunID, res.Preset)
	}
	if engine.criteria.SortBy != domain.SortImportance {
		t.Fatalf("preset criteria not passed to the engine: %+v", engine.criteria)
	}
	if len(res.Articles) != 1 || res.Articles[0].URL != "https://bbc.com/1" {
		t.Fatalf("unexpected selection: %+v", res.Articles)
	}
	if res.Summary.Total != 1 || res.Summary.ByContentType["transfer"] != 1 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	if res.Stats.Received != 3 || res.Stored != 1 {
		t.Fatalf("unexpected stats: %+v stored=%d", res.Stats, res.Stored)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected one stored selection, got %d", len(repo.saved))
	}
	sel := repo.saved[0]
	if sel.RunID != "run-42" || sel.Rank != 1 || sel.Status != domain.StatusQueued || !sel.SelectedAt.Equal(pipelineNow) {
		t.Fatalf("unexpected stored selection: %+v", sel)
	}
}

func TestCurateDefaultsToPublishReady(t *testing.T) {
	t.Parallel()

	p, engine := newPipeline(t, stubSource{}, nil)
	res, err := p.Curate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if res.Preset != preset.PublishReady || !engine.criteria.RequireComplete {
		t.Fatalf("expected publish_ready criteria, got %s %+v", res.Preset, engine.criteria)
	}
	if res.Articles == nil {
		t.Fatalf("articles should encode as an empty list, not null")
	}
}

func TestCurateExplicitCriteriaWin(t *testing.T) {
	t.Parallel()

	src := stubSource{raws: []domain.RawArticle{raw("Arsenal complete deal for Brazilian winger", 3, "https://x.com/1")}}
	p, engine := newPipeline(t, src, nil)

	criteria := &domain.Criteria{Categories: []string{"football"}}
	res, err := p.Curate(context.Background(), Request{Preset: preset.PremiumOnly, Criteria: criteria})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if res.Preset != CustomPreset || len(res.Articles) != 1 {
		t.Fatalf("explicit criteria should drive the run: %s %d", res.Preset, len(res.Articles))
	}

	engine.criteria.Categories[0] = "cricket"
	if criteria.Categories[0] != "football" {
		t.Fatalf("caller criteria were shared with the engine")
	}
}

func TestCurateErrors(t *testing.T) {
	t.Parallel()

	p, _ := newPipeline(t, stubSource{}, nil)
	if _, err := p.Curate(context.Background(), Request{Preset: "nope"}); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := p.Curate(context.Background(), Request{Store: true}); err == nil {
		t.Fatalf("expected error when storing without a repository")
	}

	boom := errors.New("disk on fire")
	p, _ = newPipeline(t, stubSource{err: boom}, nil)
	if _, err := p.Curate(context.Background(), Request{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}

	src := stubSource{raws: []domain.RawArticle{raw("Arsenal complete deal for Brazilian winger", 8.2, "https://bbc.com/1")}}
	p, _ = newPipeline(t, src, &recordingRepo{err: boom})
	if _, err := p.Curate(context.Background(), Request{Preset: preset.Transfers, Store: true}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

type recordingPublisher struct {
	runID string
	urls  []string
	err   error
}

func (r *recordingPublisher) MarkPublished(_ context.Context, runID string, urls []string) (int64, error) {
	r.runID = runID
	r.urls = urls
	return int64(len(urls)), r.err
}

func TestPublishMarksCleanedURLs(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	p := NewPipeline(PipelineDeps{Publisher: pub})

	n, err := p.Publish(context.Background(), " run-42 ", []string{"https://bbc.com/1", "  ", "https://bbc.com/2 "})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 2 || pub.runID != "run-42" {
		t.Fatalf("unexpected publish: n=%d run=%q", n, pub.runID)
	}
	if len(pub.urls) != 2 || pub.urls[1] != "https://bbc.com/2" {
		t.Fatalf("urls not cleaned: %q", pub.urls)
	}
}

func TestPublishErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewPipeline(PipelineDeps{}).Publish(context.Background(), "run-1", []string{"u"}); err == nil {
		t.Fatalf("expected error without a publisher")
	}

	p := NewPipeline(PipelineDeps{Publisher: &recordingPublisher{}})
	if _, err := p.Publish(context.Background(), " ", []string{"u"}); err == nil {
		t.Fatalf("expected error for an empty run id")
	}
	if _, err := p.Publish(context.Background(), "run-1", []string{" "}); err == nil {
		t.Fatalf("expected error without urls")
	}

	boom := errors.New("connection reset")
	p = NewPipeline(PipelineDeps{Publisher: &recordingPublisher{err: boom}})
	if _, err := p.Publish(context.Background(), "run-1", []string{"u"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publisher error, got %v", err)
	}
}
