package colorize

import (
	"fmt"
	"strings"
)

// Palette names accepted by ParsePalette
const (
	PaletteSplit     = "split"
	PaletteDiverging = "diverging"
)

// Palette turns a score into a marker color
type Palette interface {
	Name() string
	Color(score float64) string
}

// SplitPalette uses one gradient for scores up to the midpoint and another above it
type SplitPalette struct {
	Low, High     *Gradient
	Min, Mid, Max float64
}

// NewSplitPalette returns the default palette: dark to light red up to 500, light to dark green above.
func NewSplitPalette() *SplitPalette {
	return &SplitPalette{
		Low:  MustGradient("darkred", "lightcoral"),
		High: MustGradient("lightgreen", "darkgreen"),
		Min:  MinScore,
		Mid:  MidScore,
		Max:  MaxScore,
	}
}

func (p *SplitPalette) Name() string { return PaletteSplit }

// Color picks the low segment for scores <= Mid, the high segment otherwise
func (p *SplitPalette) Color(score float64) string {
	if score <= p.Mid {
		return p.Low.At(normalize(score, p.Min, p.Mid))
	}
	return p.High.At(normalize(score, p.Mid, p.Max))
}

// DivergingPalette is a single continuous gradient over the whole score range
type DivergingPalette struct {
	Ramp     *Gradient
	Min, Max float64
}

// NewDivergingPalette returns red at 0, white at 500 and green at 1000.
func NewDivergingPalette() *DivergingPalette {
	return &DivergingPalette{
		Ramp: MustGradient("red", "white", "green"),
		Min:  MinScore,
		Max:  MaxScore,
	}
}

func (p *DivergingPalette) Name() string { return PaletteDiverging }

func (p *DivergingPalette) Color(score float64) string {
	return p.Ramp.At(normalize(score, p.Min, p.Max))
}

// ParsePalette resolves a palette by name; empty selects the split palette
func ParsePalette(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PaletteSplit:
		return NewSplitPalette(), nil
	case PaletteDiverging:
		return NewDivergingPalette(), nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

// LegendEntry is one swatch of the map legend
type LegendEntry struct {
	Score float64
	Color string
}

// Legend samples the palette at evenly spaced scores across the domain
func Legend(p Palette, steps int) []LegendEntry {
	if steps < 2 {
		steps = 2
	}
	entries := make([]LegendEntry, steps)
	for i := range entries {
		score := MinScore + (MaxScore-MinScore)*float64(i)/float64(steps-1)
		entries[i] = LegendEntry{Score: score, Color: p.Color(score)}
	}
	return entries
}
