// Package colors maps risk scores to the five discrete risk bands of the
// flow diagram and their display colors.
//
// The mapping is a pure, total function. Band boundaries are right-closed:
// a score of exactly 0.7 is High, not VeryHigh. Scores outside [0, 1] fall
// into VeryHigh or VeryLow by the same comparisons, and NaN is VeryLow.
package colors

import (
	"fmt"
	"strconv"
)

// Band is a discrete risk category.
type Band int

const (
	VeryLow Band = iota
	Low
	Medium
	High
	VeryHigh
)

// Lower bounds (exclusive) of each band above VeryLow.
const (
	LowThreshold      = 0.15
	MediumThreshold   = 0.3
	HighThreshold     = 0.5
	VeryHighThreshold = 0.7
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a CSS hex string such as "#d73027".
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseHex parses a "#rrggbb" string.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

var palette = [...]RGB{
	VeryLow:  {0x1a, 0x98, 0x50},
	Low:      {0x91, 0xcf, 0x60},
	Medium:   {0xfe, 0xe0, 0x8b},
	High:     {0xfc, 0x8d, 0x59},
	VeryHigh: {0xd7, 0x30, 0x27},
}

var names = [...]string{
	VeryLow:  "very_low",
	Low:      "low",
	Medium:   "medium",
	High:     "high",
	VeryHigh: "very_high",
}

var labels = [...]string{
	VeryLow:  "Very Low Risk",
	Low:      "Low Risk",
	Medium:   "Medium Risk",
	High:     "High Risk",
	VeryHigh: "Very High Risk",
}

// BandFor returns the band a score falls into.
func BandFor(score float64) Band {
	switch {
	case score > VeryHighThreshold:
		return VeryHigh
	case score > HighThreshold:
		return High
	case score > MediumThreshold:
		return Medium
	case score > LowThreshold:
		return Low
	default:
		return VeryLow
	}
}

// ColorFor returns the band and display color for a risk score.
func ColorFor(score float64) (Band, RGB) {
	b := BandFor(score)
	return b, b.Color()
}

// Color returns the band's display color. Unknown bands are black.
func (b Band) Color() RGB {
	if !b.valid() {
		return RGB{}
	}
	return palette[b]
}

// String returns the machine name of the band, e.g. "very_high".
func (b Band) String() string {
	if !b.valid() {
		return "Band(" + strconv.Itoa(int(b)) + ")"
	}
	return names[b]
}

// Label returns the human-readable legend text, e.g. "Very High Risk".
func (b Band) Label() string {
	if !b.valid() {
		return b.String()
	}
	return labels[b]
}

// ParseBand converts a machine name produced by [Band.String] back to a Band.
func ParseBand(s string) (Band, error) {
	for i, n := range names {
		if n == s {
			return Band(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk band %q", s)
}

func (b Band) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Band) UnmarshalText(text []byte) error {
	v, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b Band) valid() bool { return b >= VeryLow && b <= VeryHigh }

// Bands returns every band from highest to lowest risk, the order legends
// list them in.
func Bands() []Band { return []Band{VeryHigh, High, Medium, Low, VeryLow} }

// LegendEntry is one row of a risk legend.
type LegendEntry struct {
	Band  Band   `json:"band"`
	Label string `json:"label"`
	Color string `json:"color"`
	Range string `json:"range"`
}

// Legend returns one entry per band in [Bands] order.
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(palette))
	for _, b := range Bands() {
		out = append(out, LegendEntry{Band: b, Label: b.Label(), Color: b.Color().Hex(), Range: rangeOf(b)})
	}
	return out
}

func rangeOf(b Band) string {
	switch b {
	case VeryHigh:
		return "> 0.7"
	case High:
		return "0.5 - 0.7"
	case Medium:
		return "0.3 - 0.5"
	case Low:
		return "0.15 - 0.3"
	default:
		return "≤ 0.15"
	}
}
