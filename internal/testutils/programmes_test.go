package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

func TestGenerateSampleProgrammes(t *testing.T) {
	candidates := GenerateSampleProgrammes(4, 6, 42)

	require.Len(t, candidates, 4)
	stats := ComputeProgrammeStatistics(candidates)
	assert.Equal(t, 24, stats.Propositions)
	assert.Equal(t, 24, stats.DistinctStatement, "generated propositions never collide")
	assert.InDelta(t, 6.0, stats.AvgPerCandidate, 1e-9)

	nicks := map[string]bool{}
	for _, c := range candidates {
		assert.False(t, nicks[c.Nickname], "nicknames are unique")
		nicks[c.Nickname] = true
		assert.NotEmpty(t, c.Party)
		assert.NotEmpty(t, c.Website)
	}
}

func TestGenerateSampleProgrammes_Reproducible(t *testing.T) {
	assert.Equal(t, GenerateSampleProgrammes(3, 5, 7), GenerateSampleProgrammes(3, 5, 7))
}

func TestGenerateSampleProgrammes_CapsCount(t *testing.T) {
	assert.Len(t, GenerateSampleProgrammes(50, 1, 1), len(sampleFirstNames))
}

func TestSaveProgrammes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "programmes")

	paths, err := SaveProgrammes(dir, []domain.Candidate{Candidate("Alice Martin", "alice", 2)})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "alice.json"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Alice Martin", raw["name"])
	assert.Equal(t, "alice", raw["nickname"])
	assert.Equal(t, "Parti Alice Martin", raw["parti"])
	assert.Equal(t, "https://alice.example.org", raw["site"])
	assert.Equal(t, []any{"alice proposition 1", "alice proposition 2"}, raw["propositions"])
}
