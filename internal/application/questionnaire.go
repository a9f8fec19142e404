package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// instructions are shown once candidates are loaded.
func instructions(scale int) []string {
	return []string{
		"You will read propositions taken from the candidates' programmes, without their authors.",
		fmt.Sprintf("Rate each one from -%[1]d (strongly against) to %[1]d (strongly for); press Enter to stay neutral.", scale),
		"Your alignment with each candidate is revealed at the end.",
	}
}

// SessionResult summarizes one completed questionnaire.
type SessionResult struct {
	// SessionID identifies the run in logs.
	SessionID string

	// DisplayName is the name results were saved under.
	DisplayName string

	// Selected lists the nicknames of the candidates in the session.
	Selected []string

	// Rated is the number of propositions answered.
	Rated int

	// Scores holds the scores computed in this session only.
	Scores domain.Scores

	// Persisted describes what was written to disk.
	Persisted PersistOutcome

	// Duration is the wall time of the session.
	Duration time.Duration
}

// Questionnaire runs a complete session: load candidates, identify the
// user, select candidates, rate propositions, then save and show results.
type Questionnaire struct {
	source    ports.CandidateSource
	prompter  ports.Prompter
	persister *ResultPersister
	observer  ports.SessionObserver
	shuffler  Shuffler
	logger    *zap.Logger
	tracer    trace.Tracer

	scale     int
	maxPer    int
	strict    bool
	preset    string
	hasPreset bool
}

// QuestionnaireOption configures a Questionnaire.
type QuestionnaireOption func(*Questionnaire)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) QuestionnaireOption {
	return func(q *Questionnaire) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithObserver records session metrics.
func WithObserver(observer ports.SessionObserver) QuestionnaireOption {
	return func(q *Questionnaire) {
		if observer != nil {
			q.observer = observer
		}
	}
}

// WithShuffler replaces the random presentation order.
func WithShuffler(s Shuffler) QuestionnaireOption {
	return func(q *Questionnaire) {
		if s != nil {
			q.shuffler = s
		}
	}
}

// WithPresetSelection tries raw as the candidate selection before asking.
// A valid preset skips the selection prompt.
func WithPresetSelection(raw string) QuestionnaireOption {
	return func(q *Questionnaire) {
		q.preset = raw
		q.hasPreset = true
	}
}

// NewQuestionnaire creates a questionnaire using the rating settings of cfg.
func NewQuestionnaire(
	source ports.CandidateSource,
	prompter ports.Prompter,
	persister *ResultPersister,
	cfg Config,
	opts ...QuestionnaireOption,
) *Questionnaire {
	q := &Questionnaire{
		source:    source,
		prompter:  prompter,
		persister: persister,
		observer:  ports.NopObserver{},
		shuffler:  RandomShuffler(),
		logger:    zap.NewNop(),
		tracer:    otel.Tracer("ballot/questionnaire"),
		scale:     cfg.RatingScale,
		maxPer:    cfg.MaxPropositionsPerCandidate,
		strict:    cfg.StrictRatings,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Run executes one session. Errors from loading, rating or saving end the
// session; invalid names and selections are asked again.
func (q *Questionnaire) Run(ctx context.Context) (SessionResult, error) {
	start := time.Now()
	res := SessionResult{SessionID: uuid.NewString()}
	logger := q.logger.With(zap.String("session_id", res.SessionID))

	ctx, span := q.tracer.Start(ctx, "Questionnaire.Run", trace.WithAttributes(
		attribute.String("session.id", res.SessionID),
	))
	defer span.End()

	fail := func(err error) (SessionResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	set, err := q.load(ctx)
	if err != nil {
		return fail(err)
	}
	logger.Info("candidates loaded", zap.Int("count", set.Len()))
	for _, line := range instructions(q.scale) {
		q.prompter.Notify(line)
	}

	if res.DisplayName, err = q.askDisplayName(ctx); err != nil {
		return fail(err)
	}
	logger = logger.With(zap.String("display_name", res.DisplayName))

	sel, err := q.selectCandidates(ctx, set)
	if err != nil {
		return fail(err)
	}
	res.Selected = sel.Nicknames
	selected := sel.Candidates(set)

	plan := BuildPlan(selected, q.maxPer, q.shuffler)
	for _, c := range plan.Collisions {
		logger.Warn("proposition shared by several candidates; last one wins",
			zap.String("proposition", c.Text),
			zap.String("previous", c.Previous),
			zap.String("current", c.Current),
		)
	}
	logger.Info("session planned",
		zap.Strings("candidates", res.Selected),
		zap.Int("propositions", len(plan.Propositions)),
	)

	tally, err := q.rate(ctx, plan, selected, logger)
	if err != nil {
		return fail(err)
	}
	res.Rated = len(plan.Propositions)
	res.Scores = domain.Finalize(tally, plan.Presented)
	res.Duration = time.Since(start)
	q.observer.ObserveScores(res.Scores)
	q.observer.ObserveSession(res.Duration, res.Rated)

	persistCtx, persistSpan := q.tracer.Start(ctx, "Questionnaire.Persist")
	res.Persisted, err = q.persister.Persist(persistCtx, res.DisplayName, res.Scores, selected)
	persistSpan.End()
	if err != nil {
		return fail(err)
	}

	logger.Info("session completed",
		zap.Int("rated", res.Rated),
		zap.Bool("merged", res.Persisted.Merged),
		zap.Duration("duration", res.Duration),
	)
	span.SetAttributes(attribute.Int("session.rated", res.Rated))
	return res, nil
}

func (q *Questionnaire) load(ctx context.Context) (*domain.CandidateSet, error) {
	ctx, span := q.tracer.Start(ctx, "Questionnaire.Load")
	defer span.End()

	candidates, err := q.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	set, err := domain.NewCandidateSet(candidates)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates.count", set.Len()))
	return set, nil
}

func (q *Questionnaire) askDisplayName(ctx context.Context) (string, error) {
	for {
		name, err := q.prompter.DisplayName(ctx)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if err := domain.ValidateDisplayName(name); err != nil {
			q.prompter.Warn(fmt.Sprintf("%v. Please choose another name.", err))
			continue
		}
		return name, nil
	}
}

func (q *Questionnaire) selectCandidates(ctx context.Context, set *domain.CandidateSet) (Selection, error) {
	if q.hasPreset {
		sel, ok := ParseSelection(q.preset, set)
		if ok {
			return sel, nil
		}
		q.warnSelection(sel, set)
	}
	for {
		raw, err := q.prompter.Selection(ctx, set.Nicknames())
		if err != nil {
			return Selection{}, err
		}
		sel, ok := ParseSelection(raw, set)
		if ok {
			return sel, nil
		}
		q.warnSelection(sel, set)
	}
}

func (q *Questionnaire) warnSelection(sel Selection, set *domain.CandidateSet) {
	if len(sel.Unknown) == 0 {
		q.prompter.Warn(fmt.Sprintf("%v.", domain.ErrEmptySelection))
		return
	}
	nicknames := set.Nicknames()
	for _, tok := range sel.Unknown {
		msg := fmt.Sprintf("%v: %q", domain.ErrUnknownCandidate, tok)
		if hint, ok := SuggestNickname(tok, nicknames); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		q.prompter.Warn(msg)
	}
}

func (q *Questionnaire) rate(ctx context.Context, plan SessionPlan, selected []domain.Candidate, logger *zap.Logger) (domain.Tally, error) {
	ctx, span := q.tracer.Start(ctx, "Questionnaire.Session", trace.WithAttributes(
		attribute.Int("session.propositions", len(plan.Propositions)),
	))
	defer span.End()

	runner := NewSessionRunner(q.prompter, q.observer, logger, q.scale, q.strict)
	tally, err := runner.Run(ctx, plan, domain.NewTally(selected))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("session interrupted")
		}
		return nil, err
	}
	return tally, nil
}
