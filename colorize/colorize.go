// Package colorize maps test scores to marker colors.
package colorize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score domain of the national exam
const (
	MinScore = 0.0
	MidScore = 500.0
	MaxScore = 1000.0
)

// lutSize is the number of samples taken along a gradient
const lutSize = 256

// BadColor is returned for scores that are not numbers
const BadColor = "#000000"

// Named colors used by the built-in palettes
var named = map[string]string{
	"darkred":    "#8b0000",
	"lightcoral": "#f08080",
	"lightgreen": "#90ee90",
	"darkgreen":  "#006400",
	"red":        "#ff0000",
	"white":      "#ffffff",
	"green":      "#008000",
}

// RGB is a color with channels in [0, 1]
type RGB struct {
	R, G, B float64
}

// Hex formats the color as #rrggbb, rounding half to even
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(math.RoundToEven(v * 255))
}

// ParseColor accepts a #rrggbb string or one of the named palette colors
func ParseColor(s string) (RGB, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	if v, ok := named[hex]; ok {
		hex = v
	}
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{
		R: float64(n>>16&0xff) / 255,
		G: float64(n>>8&0xff) / 255,
		B: float64(n&0xff) / 255,
	}, nil
}

// Stop anchors a color at a position in [0, 1]
type Stop struct {
	Pos   float64
	Color RGB
}

// Gradient is a linear color ramp sampled into a fixed lookup table.
// Positions outside [0, 1] saturate at the end colors.
type Gradient struct {
	lut [lutSize]RGB
}

// NewGradient builds a gradient from stops sorted by position, the first at 0 and the last at 1
func NewGradient(stops ...Stop) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 stops, got %d", len(stops))
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("gradient stops must start at 0 and end at 1")
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Pos < stops[i-1].Pos {
			return nil, fmt.Errorf("gradient stops out of order at index %d", i)
		}
	}

	g := &Gradient{}
	seg := 1
	for i := 0; i < lutSize; i++ {
		x := float64(i) / float64(lutSize-1)
		for seg < len(stops)-1 && x > stops[seg].Pos {
			seg++
		}
		a, b := stops[seg-1], stops[seg]
		frac := 0.0
		if b.Pos > a.Pos {
			frac = (x - a.Pos) / (b.Pos - a.Pos)
		}
		g.lut[i] = RGB{
			R: a.Color.R + (b.Color.R-a.Color.R)*frac,
			G: a.Color.G + (b.Color.G-a.Color.G)*frac,
			B: a.Color.B + (b.Color.B-a.Color.B)*frac,
		}
	}
	return g, nil
}

// MustGradient builds a gradient from color names or hex strings spread evenly over [0, 1]
func MustGradient(colors ...string) *Gradient {
	stops := make([]Stop, len(colors))
	for i, name := range colors {
		c, err := ParseColor(name)
		if err != nil {
			panic(err)
		}
		stops[i] = Stop{Pos: float64(i) / float64(len(colors)-1), Color: c}
	}
	g, err := NewGradient(stops...)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the hex color at position t. NaN yields BadColor.
func (g *Gradient) At(t float64) string {
	if math.IsNaN(t) {
		return BadColor
	}
	x := t * lutSize
	var idx int
	switch {
	case x < 0:
		idx = 0
	case x >= lutSize:
		idx = lutSize - 1
	default:
		idx = int(x)
	}
	return g.lut[idx].Hex()
}

// normalize maps v from [lo, hi] to [0, 1] without clamping
func normalize(v, lo, hi float64) float64 {
	return (v - lo) / (hi - lo)
}
