package colorize_test

import (
	"math"
	"testing"

	"escolas-map/colorize"
)

func TestSplitPaletteEndpoints(t *testing.T) {
	p := colorize.NewSplitPalette()

	cases := []struct {
		score float64
		want  string
	}{
		{0, "#8b0000"},
		{500, "#f08080"},
		{500.001, "#90ee90"},
		{1000, "#006400"},
	}
	for _, tc := range cases {
		if got := p.Color(tc.score); got != tc.want {
			t.Fatalf("Color(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestSplitPaletteMidpointIsLowSegmentBoundary(t *testing.T) {
	p := colorize.NewSplitPalette()
	if got, want := p.Color(colorize.MidScore), p.Low.At(1); got != want {
		t.Fatalf("midpoint color = %s, want low segment end %s", got, want)
	}
	if got, want := p.Color(math.Nextafter(colorize.MidScore, math.Inf(1))), p.High.At(0); got != want {
		t.Fatalf("just above midpoint = %s, want high segment start %s", got, want)
	}
}

func TestSplitPaletteOutOfRangeSaturates(t *testing.T) {
	p := colorize.NewSplitPalette()
	if got := p.Color(-120); got != "#8b0000" {
		t.Fatalf("Color(-120) = %s", got)
	}
	if got := p.Color(1400); got != "#006400" {
		t.Fatalf("Color(1400) = %s", got)
	}
	if got := p.Color(math.NaN()); got != colorize.BadColor {
		t.Fatalf("Color(NaN) = %s", got)
	}
}

func TestSplitPaletteRedChannelRisesAcrossLowSegment(t *testing.T) {
	p := colorize.NewSplitPalette()
	low, mid := p.Color(100), p.Color(400)
	if low >= mid {
		t.Fatalf("expected %s < %s in the low segment", low, mid)
	}
}

func TestDivergingPalette(t *testing.T) {
	p := colorize.NewDivergingPalette()
	if got := p.Color(0); got != "#ff0000" {
		t.Fatalf("Color(0) = %s", got)
	}
	if got := p.Color(1000); got != "#008000" {
		t.Fatalf("Color(1000) = %s", got)
	}
	// 256 samples never land exactly on the middle stop
	if got := p.Color(499); got != "#ffffff" && got != "#fffefe" && got != "#fffdfd" {
		t.Fatalf("Color(499) = %s, want near white", got)
	}
}

func TestParsePalette(t *testing.T) {
	for _, name := range []string{"", "split", " Split "} {
		p, err := colorize.ParsePalette(name)
		if err != nil {
			t.Fatalf("ParsePalette(%q): %v", name, err)
		}
		if p.Name() != colorize.PaletteSplit {
			t.Fatalf("ParsePalette(%q) = %s", name, p.Name())
		}
	}
	p, err := colorize.ParsePalette("diverging")
	if err != nil || p.Name() != colorize.PaletteDiverging {
		t.Fatalf("ParsePalette(diverging) = %v, %v", p, err)
	}
	if _, err := colorize.ParsePalette("viridis"); err == nil {
		t.Fatal("expected error for unknown palette")
	}
}

func TestParseColor(t *testing.T) {
	c, err := colorize.ParseColor("lightcoral")
	if err != nil {
		t.Fatal(err)
	}
	if c.Hex() != "#f08080" {
		t.Fatalf("Hex() = %s", c.Hex())
	}
	if _, err := colorize.ParseColor("#12"); err == nil {
		t.Fatal("expected error for short hex")
	}
	if _, err := colorize.ParseColor("#zzzzzz"); err == nil {
		t.Fatal("expected error for bad hex digits")
	}
}

func TestNewGradientValidation(t *testing.T) {
	red, _ := colorize.ParseColor("red")
	if _, err := colorize.NewGradient(colorize.Stop{Pos: 0, Color: red}); err == nil {
		t.Fatal("expected error for single stop")
	}
	if _, err := colorize.NewGradient(colorize.Stop{Pos: 0.2, Color: red}, colorize.Stop{Pos: 1, Color: red}); err == nil {
		t.Fatal("expected error when first stop is not at 0")
	}
}

func TestLegend(t *testing.T) {
	entries := colorize.Legend(colorize.NewSplitPalette(), 5)
	if len(entries) != 5 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Score != 0 || entries[4].Score != 1000 || entries[2].Score != 500 {
		t.Fatalf("unexpected scores: %+v", entries)
	}
	if entries[2].Color != "#f08080" {
		t.Fatalf("legend midpoint = %s", entries[2].Color)
	}
}
