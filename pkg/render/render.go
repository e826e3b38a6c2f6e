// Package render draws computed chart geometry to PNG or SVG.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ccollicutt/wmslog/pkg/chart"
)

// Format is an image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown chart format %q (use png or svg)", s)
	}
}

// TimeTickLayout is the label layout of time-axis ticks.
const TimeTickLayout = "15:04:05"

// Spec describes one chart's labels and colour.
type Spec struct {
	// Name is the file stem, e.g. "elapsed_time".
	Name       string
	Title      string
	YAxisLabel string
	// Color is a hex colour without the leading '#'.
	Color string
}

// Chart specs for the two series of an analysis.
var (
	ElapsedTimeChart = Spec{
		Name:       "elapsed_time",
		Title:      "Elapsed Time Over Time",
		YAxisLabel: "Elapsed Time (ms)",
		Color:      "06b6d4",
	}
	IntervalChart = Spec{
		Name:       "interval",
		Title:      "Data Send Interval Over Time",
		YAxisLabel: "Interval (s)",
		Color:      "22c55e",
	}
)

// Render draws g to w. Axis ticks come from the geometry rather than from
// go-chart's own tick generation, so every rendering agrees with the computed layout.
func Render(w io.Writer, g *chart.Geometry, spec Spec, format Format) error {
	ch := build(g, spec)

	var provider gochart.RendererProvider
	switch format {
	case FormatPNG:
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering %s chart: %w", spec.Name, err)
	}
	return nil
}

// WriteFile renders g into dir/<spec.Name>.<format> and returns the path.
func WriteFile(dir string, g *chart.Geometry, spec Spec, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, g, spec, format); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating chart directory: %w", err)
	}

	path := filepath.Join(dir, spec.Name+"."+string(format))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("writing chart: %w", err)
	}
	return path, nil
}

func build(g *chart.Geometry, spec Spec) gochart.Chart {
	color := drawing.ColorFromHex(spec.Color)
	vp := g.Viewport

	xs := make([]float64, 0, len(g.Points))
	ys := make([]float64, 0, len(g.Points))
	for _, p := range g.Points {
		xs = append(xs, gochart.TimeToFloat64(p.Datum.Timestamp))
		ys = append(ys, p.Datum.Value)
	}

	xTicks := make([]gochart.Tick, 0, len(g.XTicks))
	for _, t := range g.XTicks {
		xTicks = append(xTicks, gochart.Tick{
			Value: gochart.TimeToFloat64(t.Time),
			Label: t.Time.Format(TimeTickLayout),
		})
	}

	// go-chart rejects an empty range; an all-zero series still gets a visible axis.
	yMax := g.YMax()
	var yTicks []gochart.Tick
	if yMax > 0 {
		for _, t := range g.YTicks {
			yTicks = append(yTicks, gochart.Tick{
				Value: t.Value,
				Label: strconv.FormatFloat(t.Value, 'f', -1, 64),
			})
		}
	} else {
		yMax = 1
	}

	first, last := g.TimeSpan()

	return gochart.Chart{
		Title:  spec.Title,
		Width:  int(vp.Width),
		Height: int(vp.Height),
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(vp.Margin.Top),
				Right:  int(vp.Margin.Right),
				Bottom: int(vp.Margin.Bottom),
				Left:   int(vp.Margin.Left),
			},
		},
		XAxis: gochart.XAxis{
			Name:  "Time",
			Range: &gochart.ContinuousRange{Min: gochart.TimeToFloat64(first), Max: gochart.TimeToFloat64(last)},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:  spec.YAxisLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(100),
				},
			},
		},
	}
}
