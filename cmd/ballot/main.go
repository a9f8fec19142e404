// Command ballot runs the candidate alignment questionnaire in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ahrav/go-ballot/infrastructure/chart"
	"github.com/ahrav/go-ballot/infrastructure/console"
	"github.com/ahrav/go-ballot/infrastructure/metrics"
	"github.com/ahrav/go-ballot/infrastructure/profiles"
	"github.com/ahrav/go-ballot/infrastructure/report"
	"github.com/ahrav/go-ballot/infrastructure/results"
	"github.com/ahrav/go-ballot/internal/application"
	"github.com/ahrav/go-ballot/internal/ports"
)

type options struct {
	configPath    string
	programmesDir string
	outputDir     string
	candidates    string
	metricsFile   string
	noChart       bool
	verbose       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "ballot",
		Short: "Find out which candidates you agree with, proposition by proposition",
		Long: `ballot shows you propositions taken from the candidates' programmes
without telling you who made them. Rate each one, and your alignment with
every candidate is computed, saved under your name and drawn as a chart.

Running it again under the same name lets you merge new ratings into the
previous result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd, in, out, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&opts.programmesDir, "programmes-dir", "", "Directory holding the candidate programme files")
	f.StringVar(&opts.outputDir, "output-dir", "", "Directory results and charts are written to")
	f.StringVar(&opts.candidates, "candidates", "", "Candidates to include, as nicknames separated by '-' ('all' for everyone)")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write session metrics to this Prometheus textfile")
	f.BoolVar(&opts.noChart, "no-chart", false, "Do not draw the chart in the terminal")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func run(cmd *cobra.Command, in io.Reader, out io.Writer, opts options) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	prompter := console.NewPrompter(in, out)
	prompter.Banner("Ballot", "Which candidates do you really agree with?")

	displays := []ports.ScoreDisplay{}
	if cfg.ShowChart {
		displays = append(displays, chart.NewTerminalChart(out, cfg.Chart.Title))
	}
	displays = append(displays, report.NewReveal(out))

	persister := application.NewResultPersister(
		results.NewJSONStore(cfg.OutputDir),
		prompter,
		application.WithChart(chart.NewPNGRenderer(cfg.Chart.WidthCm, cfg.Chart.HeightCm), cfg.OutputDir, cfg.Chart.Title),
		application.WithDisplays(displays...),
		application.WithPersisterLogger(logger),
	)

	sessionMetrics := metrics.NewSessionMetrics()
	qopts := []application.QuestionnaireOption{
		application.WithLogger(logger),
		application.WithObserver(sessionMetrics),
	}
	if cmd.Flags().Changed("candidates") {
		qopts = append(qopts, application.WithPresetSelection(opts.candidates))
	}

	q := application.NewQuestionnaire(
		profiles.NewJSONLoader(cfg.ProgrammesDir, cfg.ProgrammesGlob, logger),
		prompter,
		persister,
		cfg,
		qopts...,
	)

	res, runErr := q.Run(cmd.Context())
	if cfg.MetricsFile != "" {
		if err := sessionMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics not written", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	prompter.Notify(fmt.Sprintf("Thank you %s, %d propositions rated.", res.DisplayName, res.Rated))
	return nil
}

// buildConfig layers flags over the configuration file over defaults.
func buildConfig(cmd *cobra.Command, opts options) (application.Config, error) {
	cfg, err := application.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("programmes-dir") {
		cfg.ProgrammesDir = opts.programmesDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if opts.noChart {
		cfg.ShowChart = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger logs JSON to stderr, warnings only unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
