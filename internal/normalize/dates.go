package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"ArticleCurator/internal/domain"
)

// IST is the zone collectors use for published_date_ist.
var IST = loadIST()

func loadIST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*60*60+30*60)
}

// ParseDate parses a collector timestamp; zone-less values are read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// BestTimestamp returns the article's parsed timestamp, re-parsing the raw
// published_date as a last resort.
func BestTimestamp(article domain.Article, loc *time.Location) (time.Time, bool) {
	if ts, ok := article.Timestamp(); ok {
		return ts, true
	}
	return ParseDate(article.PublishedDate, loc)
}
