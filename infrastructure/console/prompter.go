package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Prompter = (*Prompter)(nil)

// Prompter asks questions on a terminal, one line of input per answer.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	theme    Theme
	progress progress.Model
}

// NewPrompter creates a Prompter reading answers from in and writing
// questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		theme:    DefaultTheme(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Banner prints the welcome text shown before anything is asked.
func (p *Prompter) Banner(title string, lines ...string) {
	fmt.Fprintln(p.out, p.theme.Banner.Render(fmt.Sprintf("---------- %s ----------", title)))
	for _, l := range lines {
		fmt.Fprintln(p.out, l)
	}
	fmt.Fprintln(p.out)
}

// DisplayName implements ports.Prompter.
func (p *Prompter) DisplayName(ctx context.Context) (string, error) {
	p.prompt("Your name (results are saved under it): ")
	return p.readLine(ctx)
}

// Selection implements ports.Prompter.
func (p *Prompter) Selection(ctx context.Context, nicknames []string) (string, error) {
	fmt.Fprintln(p.out, p.theme.Hint.Render("Available candidates: "+strings.Join(nicknames, ", ")))
	p.prompt("Candidates to include, separated by '-' (empty for all): ")
	return p.readLine(ctx)
}

// Rating implements ports.Prompter.
func (p *Prompter) Rating(ctx context.Context, req ports.RatingRequest) (float64, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "%s %s\n", p.progress.ViewAs(progressRatio(req)), p.theme.Hint.Render(fmt.Sprintf("%d/%d", req.Index+1, req.Total)))
	fmt.Fprintln(p.out, p.theme.Proposition.Render(req.Text))
	p.prompt(fmt.Sprintf("Agreement from %d to %d (empty = 0): ", -req.Scale, req.Scale))

	line, err := p.readLine(ctx)
	if err != nil {
		return 0, err
	}
	return ParseRating(line)
}

// Confirm implements ports.Prompter. Unrecognized answers are reported and
// the question is asked again.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	choices := "[y/N]"
	if def {
		choices = "[Y/n]"
	}
	for {
		p.prompt(fmt.Sprintf("%s %s ", question, choices))
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		answer, err := ParseYesNo(line, def)
		if err == nil {
			return answer, nil
		}
		p.Warn("Please answer y(es)/o(ui) or n(o)/non.")
	}
}

// Notify implements ports.Prompter.
func (p *Prompter) Notify(msg string) {
	fmt.Fprintln(p.out, p.theme.Notice.Render(msg))
}

// Warn implements ports.Prompter.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintln(p.out, p.theme.Warning.Render(msg))
}

func (p *Prompter) prompt(text string) {
	fmt.Fprint(p.out, p.theme.Prompt.Render(text))
}

// readLine reads one trimmed line. A final line without a newline is
// returned as is; end of input with nothing read yields ports.ErrInputClosed.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", ports.ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func progressRatio(req ports.RatingRequest) float64 {
	if req.Total <= 0 {
		return 0
	}
	return float64(req.Index) / float64(req.Total)
}
