package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ArticleCurator/internal/classifier"
	"ArticleCurator/internal/config"
	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/usecase"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestApplicationRunsCustomPresetEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	published := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	batch := writeFile(t, dir, "batch.json", fmt.Sprintf(`[
	  {"title": "Kohli smashes record century at Eden Gardens", "summary": "Virat Kohli scored 150 runs.",
	   "source_name": "ESPNcricinfo", "url": "https://www.espncricinfo.com/story/1",
	   "published_date": %q, "importance_score": 9},
	  {"title": "Kohli smashes record century at Eden Gardens!", "category": "cricket", "source_name": "Cricbuzz",
	   "url": "https://www.cricbuzz.com/story/2", "published_date": %q, "importance_score": "7"},
	  {"title": "Lakers trade for veteran guard", "category": "basketball", "source_name": "NBA.com",
	   "url": "https://www.nba.com/news/3", "published_date": %q, "importance_score": 6}
	]`, published, published, published))

	presets := writeFile(t, dir, "presets.yaml", `
presets:
  - name: cricket_desk
    criteria:
      categories: [cricket]
      sort_by: importance_score
`)

	cfg, err := config.LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.Presets.File = presets
	cfg.Metrics.Textfile = filepath.Join(dir, "curator.prom")

	application, err := New(context.Background(), cfg, []string{batch}, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	res, err := application.Run(context.Background(), usecase.Request{Preset: "cricket_desk"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Articles) != 1 || res.Articles[0].URL != "https://www.espncricinfo.com/story/1" {
		t.Fatalf("expected the first Kohli story only, got %+v", res.Articles)
	}
	if res.Stats.Duplicates != 1 || res.Stats.Dropped["category"] != 1 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatalf("metrics textfile: %v", err)
	}
	if !strings.Contains(string(prom), "articlecurator_filter_articles_received_total 3") {
		t.Fatalf("metrics textfile missing received counter:\n%s", prom)
	}

	names := application.PresetNames()
	if len(names) != 7 {
		t.Fatalf("expected built-ins plus one custom preset, got %v", names)
	}
}

func TestApplicationRejectsBadPresetFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := config.LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.Presets.File = writeFile(t, dir, "presets.yaml", "presets:\n  - name: publish_ready\n    criteria: {}\n")

	if _, err := New(context.Background(), cfg, nil, logging.Discard()); err == nil {
		t.Fatalf("expected a built-in name collision error")
	}
}

func TestApplicationUsesConfiguredClassifierRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	published := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	batch := writeFile(t, dir, "batch.json", fmt.Sprintf(`[
	  {"title": "Vidarbha lift the Ranji Trophy in Nagpur", "source_name": "Local Desk",
	   "url": "https://example.in/ranji", "published_date": %q, "importance_score": 6}
	]`, published))

	cfg, err := config.LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.Classifier.Rules = []classifier.Rule{
		{Category: domain.CategoryCricket, Keywords: []string{"ranji trophy", "vidarbha"}},
	}

	application, err := New(context.Background(), cfg, []string{batch}, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	res, err := application.Run(context.Background(), usecase.Request{
		Criteria: &domain.Criteria{Categories: []string{"cricket"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Articles) != 1 || res.Articles[0].Category != domain.CategoryCricket {
		t.Fatalf("configured rules should classify the article as cricket: %+v", res.Articles)
	}
}

func TestApplicationMarkPublishedWithoutDatabase(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.Database.DSN = ""

	application, err := New(context.Background(), cfg, nil, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	if _, err := application.MarkPublished(context.Background(), "run-1", []string{"https://bbc.com/1"}); err == nil {
		t.Fatalf("expected an error without a configured database")
	}
}
