package application

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// PersistOutcome reports what ResultPersister.Persist wrote.
type PersistOutcome struct {
	// Scores is the content of the saved result file.
	Scores domain.Scores

	// ResultPath is where the scores were written.
	ResultPath string

	// ChartPath is the rendered image, empty when no renderer is set.
	ChartPath string

	// Merged is true when the previous result was kept and updated.
	Merged bool
}

// ResultPersister saves finalized scores, merging with a previous result
// for the same user when asked to, and draws them.
type ResultPersister struct {
	store      ports.ResultStore
	prompter   ports.Prompter
	chart      ports.ChartRenderer
	displays   []ports.ScoreDisplay
	outputDir  string
	chartTitle string
	logger     *zap.Logger
}

// PersisterOption configures a ResultPersister.
type PersisterOption func(*ResultPersister)

// WithChart renders a chart image next to each result file.
func WithChart(renderer ports.ChartRenderer, outputDir, title string) PersisterOption {
	return func(p *ResultPersister) {
		p.chart = renderer
		p.outputDir = outputDir
		p.chartTitle = title
	}
}

// WithDisplays shows the saved scores through each display, in order.
func WithDisplays(displays ...ports.ScoreDisplay) PersisterOption {
	return func(p *ResultPersister) {
		p.displays = append(p.displays, displays...)
	}
}

// WithPersisterLogger sets the logger.
func WithPersisterLogger(logger *zap.Logger) PersisterOption {
	return func(p *ResultPersister) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewResultPersister creates a persister writing to store and asking merge
// questions through prompter.
func NewResultPersister(store ports.ResultStore, prompter ports.Prompter, opts ...PersisterOption) *ResultPersister {
	p := &ResultPersister{
		store:    store,
		prompter: prompter,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Persist saves fresh under displayName.
//
// If a result already exists the user chooses between merging, where only
// the freshly rated candidates are overwritten and every other entry is
// kept, and replacing the whole file. The saved scores are then rendered
// and displayed. candidates supplies party and website details to the
// displays.
func (p *ResultPersister) Persist(
	ctx context.Context,
	displayName string,
	fresh domain.Scores,
	candidates []domain.Candidate,
) (PersistOutcome, error) {
	out := PersistOutcome{Scores: fresh.Clone()}
	if out.Scores == nil {
		out.Scores = domain.Scores{}
	}

	exists, err := p.store.Exists(ctx, displayName)
	if err != nil {
		return PersistOutcome{}, fmt.Errorf("failed to check previous result: %w", err)
	}
	if exists {
		merge, err := p.prompter.Confirm(ctx,
			fmt.Sprintf("A previous result exists for %s. Merge the new scores into it?", displayName), true)
		if err != nil {
			return PersistOutcome{}, err
		}
		if merge {
			previous, err := p.store.Load(ctx, displayName)
			if err != nil {
				return PersistOutcome{}, fmt.Errorf("failed to load previous result: %w", err)
			}
			out.Scores = previous.Merge(fresh)
			out.Merged = true
		}
		p.logger.Info("previous result found",
			zap.String("display_name", displayName),
			zap.Bool("merged", out.Merged),
		)
	}

	out.ResultPath, err = p.store.Save(ctx, displayName, out.Scores)
	if err != nil {
		return PersistOutcome{}, fmt.Errorf("failed to save result: %w", err)
	}
	p.prompter.Notify(fmt.Sprintf("Scores saved to %s", out.ResultPath))

	if p.chart != nil {
		path := filepath.Join(p.outputDir, displayName+".png")
		if err := p.chart.RenderChart(ctx, path, p.chartTitle, out.Scores); err != nil {
			return out, fmt.Errorf("failed to render chart: %w", err)
		}
		out.ChartPath = path
		p.prompter.Notify(fmt.Sprintf("Chart saved to %s", path))
	}

	for _, d := range p.displays {
		if err := d.ShowScores(ctx, candidates, out.Scores); err != nil {
			// The result is already on disk; a display failure is not fatal.
			p.logger.Warn("failed to display scores", zap.Error(err))
		}
	}
	return out, nil
}
