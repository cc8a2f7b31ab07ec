package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"ArticleCurator/internal/domain"
)

func TestBuildSelectionUpsert(t *testing.T) {
	t.Parallel()

	published := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	selectedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	selections := []domain.Selection{
		{
			RunID: "run-1", Preset: "transfers", Rank: 1, Status: domain.StatusQueued, SelectedAt: selectedAt,
			Article: domain.Article{
				Title: "Rice joins Arsenal", URL: "https://bbc.com/1", Category: domain.CategoryFootball,
				ImportanceScore: 8.5, ImportanceTier: domain.TierCritical, PublishedAt: &published,
				DetectedContentTypes: []domain.ContentType{domain.ContentTransfer},
			},
		},
		{RunID: "run-1", Rank: 2, Article: domain.Article{Title: "No link"}},
		{
			RunID: "run-1", Preset: "transfers", Rank: 3, Status: domain.StatusQueued, SelectedAt: selectedAt,
			Article: domain.Article{Title: "Undated", URL: "https://bbc.com/3"},
		},
	}

	query, args, err := buildSelectionUpsert(selections)
	if err != nil {
		t.Fatalf("buildSelectionUpsert: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO curated_articles (run_id,preset,rank,url,") {
		t.Fatalf("unexpected insert prefix: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (run_id, url) DO UPDATE") {
		t.Fatalf("missing upsert clause: %s", query)
	}
	if !strings.Contains(query, "$34") || strings.Contains(query, "$35") {
		t.Fatalf("expected two rows of placeholders: %s", query)
	}
	if len(args) != 2*len(selectionColumns) {
		t.Fatalf("expected %d args, got %d", 2*len(selectionColumns), len(args))
	}

	if got, ok := args[13].(pq.StringArray); !ok || len(got) != 1 || got[0] != "transfer" {
		t.Fatalf("unexpected content types arg: %#v", args[13])
	}
	if args[14] != published {
		t.Fatalf("unexpected published_at arg: %#v", args[14])
	}
	if args[len(selectionColumns)+14] != nil {
		t.Fatalf("undated article should store a NULL published_at, got %#v", args[len(selectionColumns)+14])
	}
}

func TestBuildSelectionUpsertSkipsUnkeyedRows(t *testing.T) {
	t.Parallel()

	query, args, err := buildSelectionUpsert([]domain.Selection{{RunID: "run-1", Article: domain.Article{Title: "x"}}})
	if err != nil || query != "" || args != nil {
		t.Fatalf("expected no statement, got %q %v %v", query, args, err)
	}
}

func TestBuildMarkPublished(t *testing.T) {
	t.Parallel()

	query, args, err := buildMarkPublished("run-1", []string{"https://bbc.com/1"})
	if err != nil {
		t.Fatalf("buildMarkPublished: %v", err)
	}
	if !strings.HasPrefix(query, "UPDATE curated_articles SET status = $1, updated_at = NOW() WHERE") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "url = ANY($4)") {
		t.Fatalf("expected url filter as last placeholder: %s", query)
	}
	if len(args) != 4 || args[0] != "published" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestNilDatabaseIsNoop(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)
	if err := repo.SaveSelection(context.Background(), []domain.Selection{{RunID: "r"}}); err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}
	if n, err := repo.MarkPublished(context.Background(), "r", []string{"u"}); err != nil || n != 0 {
		t.Fatalf("MarkPublished: %d %v", n, err)
	}
}
