package chart

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahrav/go-ballot/infrastructure/console"
	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.ScoreDisplay = (*TerminalChart)(nil)

const defaultHalfWidth = 20

// TerminalChart prints scores as horizontal bars centered on zero.
type TerminalChart struct {
	out       io.Writer
	halfWidth int
	title     string

	titleStyle    lipgloss.Style
	labelStyle    lipgloss.Style
	positiveStyle lipgloss.Style
	negativeStyle lipgloss.Style
	axisStyle     lipgloss.Style
}

// NewTerminalChart creates a terminal chart writing to out.
func NewTerminalChart(out io.Writer, title string) *TerminalChart {
	return &TerminalChart{
		out:           out,
		halfWidth:     defaultHalfWidth,
		title:         title,
		titleStyle:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		labelStyle:    lipgloss.NewStyle().Align(lipgloss.Right),
		positiveStyle: lipgloss.NewStyle().Foreground(console.Accent),
		negativeStyle: lipgloss.NewStyle().Foreground(console.Destructive),
		axisStyle:     lipgloss.NewStyle().Foreground(console.Muted),
	}
}

// ShowScores implements ports.ScoreDisplay. Candidates are listed from the
// highest score down.
func (c *TerminalChart) ShowScores(_ context.Context, _ []domain.Candidate, scores domain.Scores) error {
	_, err := io.WriteString(c.out, c.Render(scores)+"\n")
	return err
}

// Render returns the chart as a string.
func (c *TerminalChart) Render(scores domain.Scores) string {
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

	labelWidth := 0
	for _, name := range names {
		labelWidth = max(labelWidth, lipgloss.Width(name))
	}
	label := c.labelStyle.Width(labelWidth)

	rows := make([]string, 0, len(names)+1)
	if c.title != "" {
		rows = append(rows, c.titleStyle.Render(c.title))
	}
	for _, name := range names {
		rows = append(rows, fmt.Sprintf("%s %s %+.2f", label.Render(name), c.bar(scores[name]), scores[name]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// bar draws one score on a [-1, 1] axis of 2*halfWidth cells.
func (c *TerminalChart) bar(score float64) string {
	score = math.Max(-1, math.Min(1, score))
	n := int(math.Round(math.Abs(score) * float64(c.halfWidth)))

	left := strings.Repeat(" ", c.halfWidth)
	right := strings.Repeat(" ", c.halfWidth)
	if score < 0 {
		left = strings.Repeat(" ", c.halfWidth-n) + c.negativeStyle.Render(strings.Repeat("█", n))
	} else {
		right = c.positiveStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", c.halfWidth-n)
	}
	return left + c.axisStyle.Render("│") + right
}
