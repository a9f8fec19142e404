package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

func TestMarkdown(t *testing.T) {
	candidates := []domain.Candidate{
		{Name: "Alice", Party: "Les Verts", Website: "https://alice.example.org"},
		{Name: "Bruno", Party: "A | B"},
	}

	md := Markdown(candidates, domain.Scores{"Bruno": -0.25, "Alice": 0.8, "Zoé": 0.1})

	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "| Alice | Les Verts | https://alice.example.org | +0.80 |", lines[4])
	assert.Equal(t, "| Zoé | - | - | +0.10 |", lines[5], "entries kept from earlier sessions have no details")
	assert.Equal(t, `| Bruno | A \| B | - | -0.25 |`, lines[6])
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Contains(t, Markdown(nil, domain.Scores{}), "No candidate was rated.")
}

func TestReveal_ShowScores(t *testing.T) {
	var buf bytes.Buffer
	r := NewReveal(&buf, glamour.WithStandardStyle("notty"), glamour.WithWordWrap(120))

	err := r.ShowScores(context.Background(),
		[]domain.Candidate{{Name: "Alice", Party: "Les Verts"}},
		domain.Scores{"Alice": 0.5},
	)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Your alignment")
	assert.Contains(t, out, "Les Verts")
	assert.Contains(t, out, "+0.50")
}
