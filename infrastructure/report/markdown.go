// Package report reveals who is behind the scores at the end of a session.
package report

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.ScoreDisplay = (*Reveal)(nil)

// Reveal prints a markdown table of the scores with each candidate's party
// and website, rendered for the terminal by glamour.
type Reveal struct {
	out  io.Writer
	opts []glamour.TermRendererOption
}

// NewReveal creates a reveal writing to out. Without options the style is
// picked from the terminal background.
func NewReveal(out io.Writer, opts ...glamour.TermRendererOption) *Reveal {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle(), glamour.WithWordWrap(100)}
	}
	return &Reveal{out: out, opts: opts}
}

// ShowScores implements ports.ScoreDisplay.
func (r *Reveal) ShowScores(_ context.Context, candidates []domain.Candidate, scores domain.Scores) error {
	renderer, err := glamour.NewTermRenderer(r.opts...)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(Markdown(candidates, scores))
	if err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	_, err = io.WriteString(r.out, out)
	return err
}

// Markdown formats the scores as a table sorted from the best match down.
// Scores kept from earlier sessions for candidates not in candidates are
// listed without details.
func Markdown(candidates []domain.Candidate, scores domain.Scores) string {
	byName := make(map[string]domain.Candidate, len(candidates))
	for _, c := range candidates {
		byName[c.Name] = c
	}

	names := scores.Names()
	slices.SortStableFunc(names, func(a, b string) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		}
		return 0
	})

	var b strings.Builder
	b.WriteString("# Your alignment\n\n")
	if len(names) == 0 {
		b.WriteString("No candidate was rated.\n")
		return b.String()
	}
	b.WriteString("| Candidate | Party | Website | Score |\n")
	b.WriteString("|---|---|---|---:|\n")
	for _, name := range names {
		c := byName[name]
		fmt.Fprintf(&b, "| %s | %s | %s | %+.2f |\n", cell(name), cell(c.Party), cell(c.Website), scores[name])
	}
	return b.String()
}

func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
