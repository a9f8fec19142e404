// Package results persists per-user scores as JSON files.
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.ResultStore = (*JSONStore)(nil)

// JSONStore keeps one <display name>.json file per user in a directory.
// Files are plain objects mapping candidate names to scores.
// There is no locking: concurrent runs for the same name may race.
type JSONStore struct {
	dir    string
	tracer trace.Tracer
}

// NewJSONStore creates a store rooted at dir. The directory is created on
// the first Save.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir, tracer: otel.Tracer("ballot/results")}
}

// Path returns the file a display name is stored in. Surrounding
// whitespace is not part of the name.
func (s *JSONStore) Path(displayName string) string {
	return filepath.Join(s.dir, strings.TrimSpace(displayName)+".json")
}

func (s *JSONStore) resolve(displayName string) (string, error) {
	if err := domain.ValidateDisplayName(displayName); err != nil {
		return "", err
	}
	return s.Path(displayName), nil
}

// Exists implements ports.ResultStore.
func (s *JSONStore) Exists(_ context.Context, displayName string) (bool, error) {
	path, err := s.resolve(displayName)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat result file: %w", err)
	}
}

// Load implements ports.ResultStore.
func (s *JSONStore) Load(ctx context.Context, displayName string) (domain.Scores, error) {
	_, span := s.tracer.Start(ctx, "JSONStore.Load", trace.WithAttributes(attribute.String("result.name", displayName)))
	defer span.End()

	path, err := s.resolve(displayName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ports.ErrResultNotFound, displayName)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var scores domain.Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}
	if scores == nil {
		scores = domain.Scores{}
	}
	span.SetAttributes(attribute.Int("result.entries", len(scores)))
	return scores, nil
}

// Save implements ports.ResultStore. The file is UTF-8 JSON indented with
// two spaces; non-ASCII names are written as is.
func (s *JSONStore) Save(ctx context.Context, displayName string, scores domain.Scores) (string, error) {
	_, span := s.tracer.Start(ctx, "JSONStore.Save", trace.WithAttributes(
		attribute.String("result.name", displayName),
		attribute.Int("result.entries", len(scores)),
	))
	defer span.End()

	path, err := s.resolve(displayName)
	if err != nil {
		return "", err
	}
	if scores == nil {
		scores = domain.Scores{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scores); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to encode scores: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to write result file: %w", err)
	}
	return path, nil
}
