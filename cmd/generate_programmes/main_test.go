package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/infrastructure/profiles"
)

func TestGenerateCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "programmes")
	var out bytes.Buffer
	cmd := newGenerateCmd(&out)
	cmd.SetArgs([]string{"-n", "3", "-p", "4", "-o", dir, "--seed", "42"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "- Files: 3")
	assert.Contains(t, out.String(), "- Total propositions: 12")

	candidates, err := profiles.NewJSONLoader(dir, "*.json", nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 3, "generated files load as candidate profiles")
}
