package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"ArticleCurator/internal/domain"
	"ArticleCurator/internal/ports"
)

// StdinPath makes a FileSource read standard input.
const StdinPath = "-"

// JSONSource decodes a batch of collector records. The payload is either a
// top-level array or an object with an "articles" array.
type JSONSource struct {
	name   string
	open   func() (io.ReadCloser, error)
	logger *slog.Logger
}

var _ ports.ArticleSource = (*JSONSource)(nil)

// NewFileSource reads the batch from path, or from stdin when path is "-".
func NewFileSource(path string, log *slog.Logger) *JSONSource {
	return &JSONSource{
		name: path,
		open: func() (io.ReadCloser, error) {
			if path == StdinPath {
				return io.NopCloser(os.Stdin), nil
			}
			return os.Open(path)
		},
		logger: log,
	}
}

// NewReaderSource reads the batch from r once.
func NewReaderSource(name string, r io.Reader, log *slog.Logger) *JSONSource {
	return &JSONSource{
		name:   name,
		open:   func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
		logger: log,
	}
}

// Name identifies the source in logs.
func (s *JSONSource) Name() string {
	return s.name
}

// Fetch reads and decodes every record. Records that are not objects are skipped.
func (s *JSONSource) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.name, err)
	}
	defer rc.Close()

	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}

	articles, err := Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.name, err)
	}

	s.debug("source decoded", "source", s.name, "articles", len(articles))
	return articles, nil
}

// Decode parses a JSON batch into raw articles.
func Decode(payload []byte) ([]domain.RawArticle, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}

	root := gjson.ParseBytes(payload)
	if root.IsObject() {
		root = root.Get("articles")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("expected an array of articles")
	}

	var articles []domain.RawArticle
	root.ForEach(func(_, record gjson.Result) bool {
		if record.IsObject() {
			articles = append(articles, decodeRecord(record))
		}
		return true
	})
	return articles, nil
}

func decodeRecord(r gjson.Result) domain.RawArticle {
	return domain.RawArticle{
		Title:            text(r.Get("title")),
		Summary:          text(r.Get("summary")),
		Category:         text(r.Get("category")),
		Categories:       list(r.Get("categories")),
		SourceName:       text(r.Get("source_name")),
		SourceDomain:     text(r.Get("source_domain")),
		URL:              text(r.Get("url")),
		Link:             text(r.Get("link")),
		PublishedDate:    text(r.Get("published_date")),
		PublishedDateIST: text(r.Get("published_date_ist")),
		CollectedDate:    text(r.Get("collected_date")),
		ImportanceScore:  score(r.Get("importance_score")),
	}
}

// text accepts strings and bare numbers; anything else counts as absent.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	default:
		return ""
	}
}

// list accepts an array of strings or a comma separated string.
func list(r gjson.Result) []string {
	var out []string
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if v := strings.TrimSpace(text(item)); v != "" {
				out = append(out, v)
			}
		}
	case r.Type == gjson.String:
		for _, item := range strings.Split(r.Str, ",") {
			if v := strings.TrimSpace(item); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// score keeps numbers and strings for the normalizer to coerce. Other JSON
// types are passed through so they are reported as invalid rather than missing.
func score(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	default:
		return r.Value()
	}
}

func (s *JSONSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
