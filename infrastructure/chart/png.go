// Package chart draws candidate scores as bar charts, either to a PNG file
// or directly in the terminal.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.ChartRenderer = (*PNGRenderer)(nil)

var (
	positiveBar = color.RGBA{R: 0x2e, G: 0x9d, B: 0x5b, A: 0xff}
	negativeBar = color.RGBA{R: 0xd6, G: 0x45, B: 0x45, A: 0xff}
)

// PNGRenderer writes score bar charts as PNG images.
type PNGRenderer struct {
	width  vg.Length
	height vg.Length
	tracer trace.Tracer
}

// NewPNGRenderer creates a renderer for images of the given size in
// centimeters.
func NewPNGRenderer(widthCm, heightCm float64) *PNGRenderer {
	return &PNGRenderer{
		width:  vg.Length(widthCm) * vg.Centimeter,
		height: vg.Length(heightCm) * vg.Centimeter,
		tracer: otel.Tracer("ballot/chart"),
	}
}

// RenderChart implements ports.ChartRenderer. The parent directory of path
// is created if needed.
func (r *PNGRenderer) RenderChart(ctx context.Context, path, title string, scores domain.Scores) error {
	_, span := r.tracer.Start(ctx, "PNGRenderer.RenderChart", trace.WithAttributes(
		attribute.String("chart.path", path),
		attribute.Int("chart.bars", len(scores)),
	))
	defer span.End()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := r.Render(f, title, scores); err != nil {
		f.Close()
		span.RecordError(err)
		return err
	}
	return f.Close()
}

// Render writes the PNG image of the scores to w. Candidates are laid out
// in name order; the y-axis spans [-1, 1].
func (r *PNGRenderer) Render(w io.Writer, title string, scores domain.Scores) error {
	p, err := NewPlot(title, scores)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("failed to prepare chart image: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart image: %w", err)
	}
	return nil
}

// NewPlot builds the bar chart of the scores. Positive and negative scores
// are drawn in different colors.
func NewPlot(title string, scores domain.Scores) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Alignment"
	p.Add(plotter.NewGrid())

	names := scores.Names()
	positive := make(plotter.Values, len(names))
	negative := make(plotter.Values, len(names))
	for i, name := range names {
		if s := scores[name]; s >= 0 {
			positive[i] = s
		} else {
			negative[i] = s
		}
	}

	if len(names) > 0 {
		for _, series := range []struct {
			values plotter.Values
			color  color.Color
		}{
			{positive, positiveBar},
			{negative, negativeBar},
		} {
			bars, err := plotter.NewBarChart(series.values, vg.Points(20))
			if err != nil {
				return nil, fmt.Errorf("failed to build bar chart: %w", err)
			}
			bars.Color = series.color
			bars.LineStyle.Width = 0
			p.Add(bars)
		}
		p.NominalX(names...)
	}

	p.Y.Min, p.Y.Max = -1, 1
	return p, nil
}
