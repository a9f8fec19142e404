// Package application provides the core business logic and orchestration for
// the alignment questionnaire.
package application

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
)

// Config defines every tunable of a questionnaire run.
// Defaults come from DefaultConfig, an optional YAML file overlays them and
// command-line flags override both.
type Config struct {
	// ProgrammesDir is the directory holding one JSON profile per candidate.
	ProgrammesDir string `yaml:"programmes_dir" validate:"required"`
	// OutputDir receives <display_name>.json and <display_name>.png.
	OutputDir string `yaml:"output_dir" validate:"required"`
	// ProgrammesGlob selects profile files inside ProgrammesDir.
	// Supports ** for recursive matching.
	ProgrammesGlob string `yaml:"programmes_glob" validate:"required,glob"`
	// RatingScale bounds ratings to [-RatingScale, RatingScale].
	RatingScale int `yaml:"rating_scale" validate:"min=1,max=100"`
	// MaxPropositionsPerCandidate caps how many propositions of each
	// candidate are presented. Zero presents all of them.
	MaxPropositionsPerCandidate int `yaml:"max_propositions_per_candidate" validate:"min=0,max=1000"`
	// StrictRatings aborts the session on non-numeric rating input instead
	// of asking again.
	StrictRatings bool `yaml:"strict_ratings"`
	// ShowChart displays the score chart in the terminal at the end.
	ShowChart bool `yaml:"show_chart"`
	// Chart configures the PNG bar chart.
	Chart ChartConfig `yaml:"chart"`
	// MetricsFile, when set, receives session metrics in the Prometheus
	// text exposition format.
	MetricsFile string `yaml:"metrics_file"`
}

// ChartConfig controls the PNG bar chart written next to each result file.
type ChartConfig struct {
	// Title is drawn above the bars.
	Title string `yaml:"title" validate:"max=200"`
	// WidthCm is the image width in centimetres.
	WidthCm float64 `yaml:"width_cm" validate:"gt=0,max=200"`
	// HeightCm is the image height in centimetres.
	HeightCm float64 `yaml:"height_cm" validate:"gt=0,max=200"`
}

// DefaultConfig returns a Config with production-ready defaults: profiles
// in ./programmes, results in ./results, a [-5, 5] scale and strict rating
// parsing.
func DefaultConfig() Config {
	return Config{
		ProgrammesDir:  "programmes",
		OutputDir:      "results",
		ProgrammesGlob: "*.json",
		RatingScale:    domain.DefaultRatingScale,
		StrictRatings:  true,
		ShowChart:      true,
		Chart: ChartConfig{
			Title:    "Alignment by candidate",
			WidthCm:  20,
			HeightCm: 10,
		},
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path.
// An empty path returns the defaults. Unknown keys are rejected.
// The returned configuration is not validated; call Validate once flag
// overrides have been applied.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := decodeConfig(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfig overlays YAML onto cfg using strict decoding to catch
// unknown fields.
func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field constraint and reports all failures at once
// as a *domain.ValidationError.
func (c Config) Validate() error {
	v, err := newConfigValidator()
	if err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	err = v.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	verr := domain.NewValidationError("Config")
	for _, fe := range fieldErrs {
		verr.AddError(describeFieldError(fe))
	}
	return verr
}

// newConfigValidator builds a validator that reports YAML key names and
// understands the glob tag.
func newConfigValidator() (*validator.Validate, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	return v, nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gt":
		return fmt.Sprintf("%s must be %s %s", field, comparisonWord(fe.Tag()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "glob":
		return fmt.Sprintf("%s is not a valid glob pattern: %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func comparisonWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
