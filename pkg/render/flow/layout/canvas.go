package layout

import "github.com/matzehuels/riskflow/pkg/errors"

// Margins are the blank borders around the drawing area. The right margin
// is wider by default to leave room for outcome labels and the legend.
type Margins struct {
	Top    float64 `json:"top" yaml:"top" koanf:"top"`
	Right  float64 `json:"right" yaml:"right" koanf:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" koanf:"bottom"`
	Left   float64 `json:"left" yaml:"left" koanf:"left"`
}

// Canvas is the drawing surface.
type Canvas struct {
	Width   float64 `json:"width" yaml:"width" koanf:"width"`
	Height  float64 `json:"height" yaml:"height" koanf:"height"`
	Margins Margins `json:"margins" yaml:"margins" koanf:"margins"`
}

const (
	DefaultWidth        = 1440.0
	DefaultHeight       = 700.0
	DefaultMarginTop    = 40.0
	DefaultMarginRight  = 400.0
	DefaultMarginBottom = 40.0
	DefaultMarginLeft   = 40.0
)

// DefaultCanvas returns the 1440x700 canvas used when none is given. The
// usable area is 1000x620; the right margin holds the outcome box, its
// label and the legend.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margins: Margins{
			Top:    DefaultMarginTop,
			Right:  DefaultMarginRight,
			Bottom: DefaultMarginBottom,
			Left:   DefaultMarginLeft,
		},
	}
}

// UsableWidth is the width inside the margins.
func (c Canvas) UsableWidth() float64 { return c.Width - c.Margins.Left - c.Margins.Right }

// UsableHeight is the height inside the margins.
func (c Canvas) UsableHeight() float64 { return c.Height - c.Margins.Top - c.Margins.Bottom }

// Validate returns a DEGENERATE_CANVAS error when the margins leave no room
// to draw.
func (c Canvas) Validate() error {
	if w := c.UsableWidth(); !(w > 0) {
		return errors.New(errors.ErrCodeDegenerateCanvas,
			"usable width %.1f: canvas width %.1f is too small for margins %.1f+%.1f",
			w, c.Width, c.Margins.Left, c.Margins.Right)
	}
	if h := c.UsableHeight(); !(h > 0) {
		return errors.New(errors.ErrCodeDegenerateCanvas,
			"usable height %.1f: canvas height %.1f is too small for margins %.1f+%.1f",
			h, c.Height, c.Margins.Top, c.Margins.Bottom)
	}
	return nil
}
