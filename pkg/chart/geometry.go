// Package chart computes the geometry of a time-series line chart: scales,
// paths, axis ticks and nearest-point lookup. It draws nothing.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ccollicutt/wmslog/pkg/analyzer"
)

var (
	// ErrTooFewPoints is returned for series with fewer than two points.
	ErrTooFewPoints = errors.New("not enough data to display chart")

	// ErrZeroTimeSpan is returned when the first and last points share a timestamp.
	ErrZeroTimeSpan = errors.New("series spans zero time")

	// ErrInvalidViewport is returned when margins leave no plotting area.
	ErrInvalidViewport = errors.New("viewport has no plotting area")
)

// YTickCount is the number of evenly spaced value ticks.
const YTickCount = 5

// Margin is the space around the plotting area, in pixels.
type Margin struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// Viewport is the full drawing size plus margins.
type Viewport struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Margin Margin  `yaml:"margin" json:"margin"`
}

// DefaultViewport returns the 800x400 viewport used for both charts.
func DefaultViewport() Viewport {
	return Viewport{
		Width:  800,
		Height: 400,
		Margin: Margin{Top: 20, Right: 20, Bottom: 70, Left: 60},
	}
}

// InnerWidth is the width of the plotting area.
func (v Viewport) InnerWidth() float64 {
	return v.Width - v.Margin.Left - v.Margin.Right
}

// InnerHeight is the height of the plotting area.
func (v Viewport) InnerHeight() float64 {
	return v.Height - v.Margin.Top - v.Margin.Bottom
}

// Validate checks that the viewport leaves a positive plotting area.
func (v Viewport) Validate() error {
	if v.InnerWidth() <= 0 || v.InnerHeight() <= 0 {
		return fmt.Errorf("%w: %gx%g with margins %+v", ErrInvalidViewport, v.Width, v.Height, v.Margin)
	}
	return nil
}

// Point is a data point with its position in plot coordinates.
// Plot coordinates have their origin at the top-left of the plotting area.
type Point struct {
	X     float64
	Y     float64
	Datum analyzer.TimestampedValue
}

// YTick is a value-axis tick. Value is rounded to one decimal for display,
// Y is the position of the unrounded value.
type YTick struct {
	Value float64
	Y     float64
}

// XTick is a time-axis tick placed on a data point.
type XTick struct {
	Time time.Time
	X    float64
}

// Geometry is the computed layout of one series in one viewport.
// It is immutable; recompute when the series or viewport changes.
type Geometry struct {
	Viewport    Viewport
	InnerWidth  float64
	InnerHeight float64

	// Points holds every datum in series order.
	Points []Point

	// LinePath is "x,y L x,y ..." over all points; prefix "M " to draw it.
	LinePath string

	// AreaPath closes the line down to the baseline.
	AreaPath string

	YTicks []YTick
	XTicks []XTick

	xMin time.Time
	xMax time.Time
	yMax float64
}

// Compute lays out series in vp.
// The series must have at least two points and distinct first and last timestamps.
func Compute(series analyzer.Series, vp Viewport) (*Geometry, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: %d point(s)", ErrTooFewPoints, len(series))
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	g := &Geometry{
		Viewport:    vp,
		InnerWidth:  vp.InnerWidth(),
		InnerHeight: vp.InnerHeight(),
		xMin:        series[0].Timestamp,
		xMax:        series[len(series)-1].Timestamp,
	}
	if g.xMax.Equal(g.xMin) {
		return nil, fmt.Errorf("%w: %s", ErrZeroTimeSpan, g.xMin)
	}

	for _, d := range series {
		g.yMax = math.Max(g.yMax, d.Value)
	}

	g.Points = make([]Point, len(series))
	segments := make([]string, len(series))
	for i, d := range series {
		p := Point{X: g.XScale(d.Timestamp), Y: g.YScale(d.Value), Datum: d}
		g.Points[i] = p
		segments[i] = coord(p.X, p.Y)
	}

	g.LinePath = strings.Join(segments, " L ")
	g.AreaPath = fmt.Sprintf("M %s L %s L %s Z",
		coord(g.XScale(g.xMin), g.InnerHeight),
		g.LinePath,
		coord(g.XScale(g.xMax), g.InnerHeight))

	g.YTicks = make([]YTick, YTickCount)
	for i := range g.YTicks {
		v := float64(i) * g.yMax / float64(YTickCount-1)
		g.YTicks[i] = YTick{Value: math.Round(v*10) / 10, Y: g.YScale(v)}
	}

	for _, d := range []analyzer.TimestampedValue{series[0], series[len(series)/2], series[len(series)-1]} {
		g.XTicks = append(g.XTicks, XTick{Time: d.Timestamp, X: g.XScale(d.Timestamp)})
	}

	return g, nil
}

// XScale maps a time to a horizontal plot position.
func (g *Geometry) XScale(t time.Time) float64 {
	return float64(t.Sub(g.xMin)) / float64(g.xMax.Sub(g.xMin)) * g.InnerWidth
}

// YScale maps a value to a vertical plot position; larger values sit higher.
// With an all-zero series every value maps to the baseline.
func (g *Geometry) YScale(v float64) float64 {
	if g.yMax == 0 {
		return g.InnerHeight
	}
	return g.InnerHeight - v/g.yMax*g.InnerHeight
}

// YMax is the top of the value axis: the largest value, but never below 0.
func (g *Geometry) YMax() float64 {
	return g.yMax
}

// TimeSpan returns the first and last timestamps of the series.
func (g *Geometry) TimeSpan() (time.Time, time.Time) {
	return g.xMin, g.xMax
}

// Nearest returns the point whose horizontal position is closest to px,
// and its distance. Ties go to the earliest point.
func (g *Geometry) Nearest(px float64) (Point, float64) {
	best := g.Points[0]
	minDist := math.Inf(1)
	for _, p := range g.Points {
		if d := math.Abs(px - p.X); d < minDist {
			minDist = d
			best = p
		}
	}
	return best, minDist
}

// PlotX converts a pointer offset within a rendering of the plotting area
// that is renderedWidth pixels wide into plot coordinates.
func (g *Geometry) PlotX(offset, renderedWidth float64) float64 {
	return offset / renderedWidth * g.InnerWidth
}

func coord(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
}
