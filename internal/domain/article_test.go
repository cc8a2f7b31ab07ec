package domain

import (
	"testing"
	"time"
)

func TestTierFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  Tier
	}{
		{10, TierCritical}, {8, TierCritical}, {7.99, TierHigh}, {6, TierHigh},
		{4, TierMedium}, {2, TierLow}, {1.99, TierMinimal}, {-3, TierMinimal},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score); got != tc.want {
			t.Fatalf("TierFor(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestTimeBracketFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age  time.Duration
		want int
	}{
		{0, 0}, {6 * time.Hour, 0}, {6*time.Hour + time.Second, 1}, {24 * time.Hour, 1},
		{25 * time.Hour, 2}, {48 * time.Hour, 2}, {72 * time.Hour, 3},
	}
	for _, tc := range cases {
		if got := TimeBracketFor(tc.age); got != tc.want {
			t.Fatalf("TimeBracketFor(%v) = %d, want %d", tc.age, got, tc.want)
		}
	}
}

func TestTimestampPrefersIST(t *testing.T) {
	t.Parallel()

	ist := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	generic := ist.Add(time.Hour)
	a := Article{PublishedAt: &generic}
	if ts, _ := a.Timestamp(); !ts.Equal(generic) {
		t.Fatalf("expected generic date, got %v", ts)
	}
	a.PublishedAtIST = &ist
	if ts, _ := a.Timestamp(); !ts.Equal(ist) {
		t.Fatalf("expected IST date, got %v", ts)
	}
	if _, ok := (Article{}).Timestamp(); ok {
		t.Fatalf("undated article reported a timestamp")
	}
}

func TestRawOmitsCoercedScore(t *testing.T) {
	t.Parallel()

	a := Article{Title: "x", ImportanceScore: 0, ScoreValid: false, Tags: []string{}}
	raw := a.Raw()
	if raw.ImportanceScore != nil || raw.Categories != nil {
		t.Fatalf("unexpected raw form: %+v", raw)
	}

	a.ImportanceScore, a.ScoreValid = 7.5, true
	if a.Raw().ImportanceScore != 7.5 {
		t.Fatalf("valid score should round-trip")
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	t.Parallel()

	a := Article{Tags: []string{"ipl"}, DetectedContentTypes: []ContentType{ContentRecord}}
	b := a.Clone()
	b.Tags[0] = "nba"
	b.DetectedContentTypes[0] = ContentPreview
	if a.Tags[0] != "ipl" || a.DetectedContentTypes[0] != ContentRecord {
		t.Fatalf("clone shares backing arrays with the original")
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	if c, ok := ParseCategory(" Football "); !ok || c != CategoryFootball {
		t.Fatalf("ParseCategory: %s %v", c, ok)
	}
	if _, ok := ParseCategory("uncategorized"); ok {
		t.Fatalf("uncategorized must not parse as a sport")
	}
	if l, ok := ParseAuthorityLevel("PREMIUM"); !ok || l != AuthorityPremium {
		t.Fatalf("ParseAuthorityLevel: %s %v", l, ok)
	}
	if _, ok := ParseContentType("gossip"); ok {
		t.Fatalf("unknown content type parsed")
	}
}
