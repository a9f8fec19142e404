package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ballot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.DefaultRatingScale, cfg.RatingScale)
	assert.Equal(t, "*.json", cfg.ProgrammesGlob)
	assert.True(t, cfg.StrictRatings)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		verify  func(t *testing.T, cfg Config)
	}{
		{
			name: "overlays top level keys",
			yaml: `
programmes_dir: /srv/programmes
output_dir: /srv/results
rating_scale: 10
max_propositions_per_candidate: 20
strict_ratings: false
show_chart: false
metrics_file: /tmp/ballot.prom
`,
			verify: func(t *testing.T, cfg Config) {
				assert.Equal(t, "/srv/programmes", cfg.ProgrammesDir)
				assert.Equal(t, "/srv/results", cfg.OutputDir)
				assert.Equal(t, 10, cfg.RatingScale)
				assert.Equal(t, 20, cfg.MaxPropositionsPerCandidate)
				assert.False(t, cfg.StrictRatings)
				assert.False(t, cfg.ShowChart)
				assert.Equal(t, "/tmp/ballot.prom", cfg.MetricsFile)
				assert.Equal(t, "*.json", cfg.ProgrammesGlob, "unset keys keep their defaults")
			},
		},
		{
			name: "empty file keeps defaults",
			yaml: "",
			verify: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:    "rejects unknown keys",
			yaml:    "programme_dir: typo\n",
			wantErr: "field programme_dir not found",
		},
		{
			name:    "rejects malformed yaml",
			yaml:    "rating_scale: [1, 2\n",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfigFile(t, tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantMsgs []string
	}{
		{
			name:     "missing directories",
			mutate:   func(cfg *Config) { cfg.ProgrammesDir, cfg.OutputDir = "", "" },
			wantMsgs: []string{"programmes_dir is required", "output_dir is required"},
		},
		{
			name:     "scale out of range",
			mutate:   func(cfg *Config) { cfg.RatingScale = 0 },
			wantMsgs: []string{"rating_scale must be at least 1"},
		},
		{
			name:     "negative cap",
			mutate:   func(cfg *Config) { cfg.MaxPropositionsPerCandidate = -1 },
			wantMsgs: []string{"max_propositions_per_candidate must be at least 0"},
		},
		{
			name:     "bad glob",
			mutate:   func(cfg *Config) { cfg.ProgrammesGlob = "[unclosed" },
			wantMsgs: []string{"programmes_glob is not a valid glob pattern"},
		},
		{
			name:     "zero chart size",
			mutate:   func(cfg *Config) { cfg.Chart.WidthCm = 0 },
			wantMsgs: []string{"chart.width_cm must be greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, msg := range tt.wantMsgs {
				assert.Contains(t, verr.Errors, msg)
			}
		})
	}
}
