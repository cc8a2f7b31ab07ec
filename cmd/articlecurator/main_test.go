package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-input", "a.json, b.json,", "-preset", "transfers", "-strict=false"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !reflect.DeepEqual(opts.inputs, []string{"a.json", "b.json"}) {
		t.Fatalf("unexpected inputs: %v", opts.inputs)
	}
	if opts.preset != "transfers" || opts.strict || !opts.strictSet {
		t.Fatalf("unexpected options: %+v", opts)
	}

	defaults, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !reflect.DeepEqual(defaults.inputs, []string{"-"}) || defaults.strictSet {
		t.Fatalf("unexpected defaults: %+v", defaults)
	}
}

func TestParseFlagsMarkPublished(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-mark-published", " run-7 ", "-urls", "https://bbc.com/1, https://bbc.com/2"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.publishRun != "run-7" {
		t.Fatalf("unexpected run id: %q", opts.publishRun)
	}
	if !reflect.DeepEqual(opts.publishURLs, []string{"https://bbc.com/1", "https://bbc.com/2"}) {
		t.Fatalf("unexpected urls: %v", opts.publishURLs)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		{"-preset", "transfers", "-criteria", "c.yaml"},
		{"-input", " , "},
		{"stray"},
		{"-unknown"},
		{"-mark-published", "run-1"},
		{"-mark-published", "run-1", "-urls", " , "},
		{"-urls", "https://bbc.com/1"},
		{"-mark-published", "run-1", "-urls", "https://bbc.com/1", "-store"},
	}
	for _, args := range cases {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestRunWritesJSONResult(t *testing.T) {
	dir := t.TempDir()
	published := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	input := filepath.Join(dir, "batch.json")
	batch := fmt.Sprintf(`[
	  {"title": "Celtics clinch top seed with overtime win", "category": "basketball",
	   "source_name": "ESPN", "url": "https://espn.com/nba/1", "published_date": %q, "importance_score": 7},
	  {"title": "Old friendly from last season", "category": "football",
	   "url": "https://example.com/old", "published_date": "2020-01-01T00:00:00Z", "importance_score": 9}
	]`, published)
	if err := os.WriteFile(input, []byte(batch), 0o600); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"-input", input, "-preset", "last_24h"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var doc struct {
		RunID    string `json:"run_id"`
		Preset   string `json:"preset"`
		Articles []struct {
			Title          string `json:"title"`
			ImportanceTier string `json:"importance_tier"`
		} `json:"articles"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if doc.RunID == "" || doc.Preset != "last_24h" {
		t.Fatalf("unexpected header: %+v", doc)
	}
	if len(doc.Articles) != 1 || !strings.HasPrefix(doc.Articles[0].Title, "Celtics") || doc.Articles[0].ImportanceTier != "high" {
		t.Fatalf("unexpected articles: %+v", doc.Articles)
	}
	if doc.Summary.Total != 1 {
		t.Fatalf("unexpected summary: %+v", doc.Summary)
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(input, []byte(`{"title":"not a list"}`), 0o600); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"-input", input}, &out); err == nil {
		t.Fatalf("expected an error for a non-array batch")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
}

func TestRunMarkPublishedNeedsDatabase(t *testing.T) {
	t.Setenv("CURATOR_DATABASE_DSN", "")

	var out bytes.Buffer
	err := run([]string{"-mark-published", "run-1", "-urls", "https://bbc.com/1"}, &out)
	if err == nil || !strings.Contains(err.Error(), "no selection repository") {
		t.Fatalf("expected missing repository error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
}
