package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/testutils"
)

type cliFixture struct {
	programmes string
	output     string
}

func newCLIFixture(t *testing.T) cliFixture {
	t.Helper()
	root := t.TempDir()
	f := cliFixture{
		programmes: filepath.Join(root, "programmes"),
		output:     filepath.Join(root, "results"),
	}
	_, err := testutils.SaveProgrammes(f.programmes, []domain.Candidate{
		testutils.Candidate("Alice Martin", "alice", 2),
		testutils.Candidate("Bruno Petit", "bruno", 1),
	})
	require.NoError(t, err)
	return f
}

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func readScores(t *testing.T, path string) domain.Scores {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var scores domain.Scores
	require.NoError(t, json.Unmarshal(data, &scores))
	return scores
}

func TestRootCmd_FullSession(t *testing.T) {
	f := newCLIFixture(t)
	metricsFile := filepath.Join(t.TempDir(), "ballot.prom")

	stdout, _, err := execute(t, "camille\n\n5\n5\n5\n",
		"--programmes-dir", f.programmes,
		"--output-dir", f.output,
		"--metrics-file", metricsFile,
	)

	require.NoError(t, err)
	assert.Contains(t, stdout, "---------- Ballot ----------")
	assert.Contains(t, stdout, "Thank you camille, 3 propositions rated.")
	assert.Contains(t, stdout, "Parti Alice Martin", "the reveal names the parties")
	assert.NotContains(t, stdout, "%!", "welcome text is fully formatted")

	assert.Equal(t, domain.Scores{"Alice Martin": 1, "Bruno Petit": 1}, readScores(t, filepath.Join(f.output, "camille.json")))
	assert.FileExists(t, filepath.Join(f.output, "camille.png"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "ballot_sessions_total 1")
}

func TestRootCmd_PresetAndMerge(t *testing.T) {
	f := newCLIFixture(t)

	_, _, err := execute(t, "camille\n-5\n-5\n",
		"--programmes-dir", f.programmes, "--output-dir", f.output, "--candidates", "ALICE", "--no-chart")
	require.NoError(t, err)

	_, _, err = execute(t, "camille\n5\ny\n",
		"--programmes-dir", f.programmes, "--output-dir", f.output, "--candidates", "bruno", "--no-chart")
	require.NoError(t, err)

	assert.Equal(t, domain.Scores{"Alice Martin": -1, "Bruno Petit": 1}, readScores(t, filepath.Join(f.output, "camille.json")))
}

func TestRootCmd_ConfigFile(t *testing.T) {
	f := newCLIFixture(t)
	cfgPath := filepath.Join(t.TempDir(), "ballot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"programmes_dir: "+f.programmes+"\noutput_dir: "+f.output+"\nstrict_ratings: false\nmax_propositions_per_candidate: 1\n",
	), 0o600))

	stdout, _, err := execute(t, "camille\n\nmaybe\n5\n5\n", "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"maybe" is not a number`)
	assert.Contains(t, stdout, "2 propositions rated")
}

func TestRootCmd_Errors(t *testing.T) {
	f := newCLIFixture(t)

	tests := []struct {
		name    string
		input   string
		args    []string
		wantErr string
	}{
		{
			name:    "missing programmes",
			args:    []string{"--programmes-dir", filepath.Join(t.TempDir(), "none")},
			wantErr: "failed to load candidates",
		},
		{
			name:    "invalid configuration",
			args:    []string{"--programmes-dir", ""},
			wantErr: "programmes_dir is required",
		},
		{
			name:    "strict rating",
			input:   "camille\n\nbeaucoup\n",
			args:    []string{"--programmes-dir", f.programmes, "--output-dir", f.output},
			wantErr: "is not a number",
		},
		{
			name:    "unexpected argument",
			args:    []string{"extra"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.input, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.name != "unexpected argument" {
				assert.Contains(t, stderr, "Error:")
			}
		})
	}
}
