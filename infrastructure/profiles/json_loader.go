// Package profiles loads candidate programmes from JSON files.
package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.CandidateSource = (*JSONLoader)(nil)

// Profile keys, in the order they are checked.
const (
	FieldName         = "name"
	FieldNickname     = "nickname"
	FieldParty        = "parti"
	FieldWebsite      = "site"
	FieldPropositions = "propositions"
)

var requiredFields = []string{FieldName, FieldNickname, FieldParty, FieldWebsite, FieldPropositions}

// JSONLoader reads one candidate profile per JSON file of a directory.
type JSONLoader struct {
	dir     string
	pattern string
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewJSONLoader creates a loader for the files of dir matching pattern.
// The pattern is a doublestar glob relative to dir, e.g. "*.json" or
// "**/*.json".
func NewJSONLoader(dir, pattern string, logger *zap.Logger) *JSONLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONLoader{
		dir:     dir,
		pattern: pattern,
		logger:  logger,
		tracer:  otel.Tracer("ballot/profiles"),
	}
}

// Load decodes every matching profile, sorted by path. Any missing key or
// malformed file fails the whole load.
func (l *JSONLoader) Load(ctx context.Context) ([]domain.Candidate, error) {
	_, span := l.tracer.Start(ctx, "JSONLoader.Load",
		trace.WithAttributes(
			attribute.String("profiles.dir", l.dir),
			attribute.String("profiles.pattern", l.pattern),
		),
	)
	defer span.End()

	candidates, err := l.load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("profiles.count", len(candidates)))
	return candidates, nil
}

func (l *JSONLoader) load() ([]domain.Candidate, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open programmes directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("programmes path %s is not a directory", l.dir)
	}

	matches, err := doublestar.Glob(os.DirFS(l.dir), l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list programmes with %q: %w", l.pattern, err)
	}
	slices.Sort(matches)

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no file matching %q in %s", domain.ErrNoCandidates, l.pattern, l.dir)
	}

	candidates := make([]domain.Candidate, 0, len(matches))
	for _, rel := range matches {
		c, err := l.loadFile(filepath.Join(l.dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded candidate profile",
			zap.String("file", rel),
			zap.String("nickname", c.Nickname),
			zap.Int("propositions", c.PropositionCount()),
		)
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (l *JSONLoader) loadFile(path string) (domain.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("failed to open candidate profile: %w", err)
	}
	defer f.Close()

	return DecodeCandidate(filepath.Base(path), f)
}

// DecodeCandidate parses one profile. file only labels errors.
// Every key of the profile format must be present; a missing key yields a
// *domain.MissingFieldError. Values are only checked for their JSON type.
// The nickname is lower-cased.
func DecodeCandidate(file string, r io.Reader) (domain.Candidate, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return domain.Candidate{}, fmt.Errorf("candidate profile %s: invalid JSON: %w", file, err)
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return domain.Candidate{}, &domain.MissingFieldError{File: file, Field: field}
		}
	}

	var c domain.Candidate
	targets := []struct {
		field string
		dst   any
	}{
		{FieldName, &c.Name},
		{FieldNickname, &c.Nickname},
		{FieldParty, &c.Party},
		{FieldWebsite, &c.Website},
		{FieldPropositions, &c.Propositions},
	}
	for _, t := range targets {
		if err := json.Unmarshal(raw[t.field], t.dst); err != nil {
			return domain.Candidate{}, fmt.Errorf("candidate profile %s: field %q: %w", file, t.field, err)
		}
	}

	c.Nickname = strings.ToLower(strings.TrimSpace(c.Nickname))
	return c, nil
}
