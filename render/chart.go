package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"escolas-map/colorize"
	"escolas-map/filter"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoAverages = errors.New("no averages to chart")

// AveragesChart draws one bar per subject mean as a PNG; bars use the palette color of their mean
func AveragesChart(w io.Writer, averages []filter.Average, palette colorize.Palette) error {
	if len(averages) == 0 {
		return ErrNoAverages
	}

	bars := make([]chart.Value, 0, len(averages))
	for _, a := range averages {
		col := drawing.ColorFromHex(strings.TrimPrefix(palette.Color(a.Mean), "#"))
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%s)", a.Subject.Label, FormatScore(a.Mean)),
			Value: a.Mean,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	graph := chart.BarChart{
		Title:      "Médias por área de conhecimento",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      1000,
		Height:     400,
		BarWidth:   90,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: colorize.MinScore, Max: colorize.MaxScore},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render averages chart: %w", err)
	}
	return nil
}
