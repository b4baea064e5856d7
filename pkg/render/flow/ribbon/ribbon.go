// Package ribbon builds the closed curved shapes that draw links between
// layers.
//
// A ribbon is two cubic Bezier curves joined into one outline. The upper
// curve runs from the vertical midpoint of the source node's right edge to
// the vertical midpoint of the target node's left edge; the lower curve
// runs back the same way shifted down by the ribbon thickness. Horizontal
// control-point offsets turn each curve into an S-shape.
//
// Thickness encodes flow: value/maxValue*MaxThickness, never thinner than
// MinThickness and never thicker than MaxThickness.
package ribbon

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
)

const (
	DefaultMinThickness = 2.0
	DefaultMaxThickness = 30.0
	DefaultCurveOffset  = 40.0

	// DefaultOpacity is the resting ribbon opacity, lower than node opacity
	// so overlapping ribbons stay legible.
	DefaultOpacity = 0.4
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cubic is a cubic Bezier segment from P0 to P3 with controls C1 and C2.
type Cubic struct {
	P0, C1, C2, P3 Point
}

// At evaluates the curve at t in [0, 1].
func (c Cubic) At(t float64) Point {
	u := 1 - t
	a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.P0.X + b*c.C1.X + cc*c.C2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.C1.Y + cc*c.C2.Y + d*c.P3.Y,
	}
}

// Ribbon is the geometry and fill of one link.
type Ribbon struct {
	Index     int          `json:"index"`
	Link      dataset.Link `json:"link"`
	Thickness float64      `json:"thickness"`
	Upper     Cubic        `json:"-"`
	Lower     Cubic        `json:"-"`
	Risk      float64      `json:"risk"`
	Band      colors.Band  `json:"band"`
	Fill      colors.RGB   `json:"-"`
}

// Mid returns the centre of the ribbon halfway along its length, where
// viewers anchor a link tooltip.
func (r Ribbon) Mid() Point {
	u, l := r.Upper.At(0.5), r.Lower.At(0.5)
	return Point{X: (u.X + l.X) / 2, Y: (u.Y + l.Y) / 2}
}

// Path returns the closed outline as SVG path data:
// move to the upper start, curve to the upper end, line down to the lower
// curve, curve back, and close.
func (r Ribbon) Path() string {
	var b strings.Builder
	b.Grow(160)
	b.WriteString("M")
	writePoint(&b, r.Upper.P0)
	b.WriteString(" C")
	writePoint(&b, r.Upper.C1)
	b.WriteString(" ")
	writePoint(&b, r.Upper.C2)
	b.WriteString(" ")
	writePoint(&b, r.Upper.P3)
	b.WriteString(" L")
	writePoint(&b, r.Lower.P0)
	b.WriteString(" C")
	writePoint(&b, r.Lower.C1)
	b.WriteString(" ")
	writePoint(&b, r.Lower.C2)
	b.WriteString(" ")
	writePoint(&b, r.Lower.P3)
	b.WriteString(" Z")
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(fmtNum(p.X))
	b.WriteByte(',')
	b.WriteString(fmtNum(p.Y))
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Option configures ribbon construction.
type Option func(*options)

type options struct {
	minThickness, maxThickness, curveOffset float64
}

func defaults() options {
	return options{
		minThickness: DefaultMinThickness,
		maxThickness: DefaultMaxThickness,
		curveOffset:  DefaultCurveOffset,
	}
}

// WithThickness overrides the thickness bounds. It is ignored unless
// 0 <= min <= max and max > 0.
func WithThickness(minT, maxT float64) Option {
	return func(o *options) {
		if minT >= 0 && maxT > 0 && minT <= maxT {
			o.minThickness, o.maxThickness = minT, maxT
		}
	}
}

// WithCurveOffset overrides the horizontal control-point offset.
func WithCurveOffset(offset float64) Option {
	return func(o *options) { o.curveOffset = offset }
}

// Thickness returns the ribbon thickness for a flow value using the default
// bounds. maxValue must be positive.
func Thickness(value, maxValue float64, opts ...Option) (float64, error) {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o.thickness(value, maxValue)
}

func (o options) thickness(value, maxValue float64) (float64, error) {
	if !(maxValue > 0) || math.IsInf(maxValue, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "maxValue must be positive, got %v", maxValue)
	}
	t := max(o.minThickness, value/maxValue*o.maxThickness)
	return min(t, o.maxThickness), nil
}

// Build computes the ribbon for one link. It fails with UNKNOWN_NODE when an
// endpoint has no position, and INVALID_INPUT when maxValue is not positive.
// The risk scores of the endpoints come from ds; when ds is nil the fill is
// based on a risk of 0.
func Build(link dataset.Link, positions map[int]layout.Position, maxValue float64, ds *dataset.Dataset, opts ...Option) (Ribbon, error) {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o.build(link, positions, maxValue, ds)
}

func (o options) build(link dataset.Link, positions map[int]layout.Position, maxValue float64, ds *dataset.Dataset) (Ribbon, error) {
	src, ok := positions[link.Source]
	if !ok {
		return Ribbon{}, errors.New(errors.ErrCodeUnknownNode, "link %d→%d: no position for source node %d",
			link.Source, link.Target, link.Source)
	}
	dst, ok := positions[link.Target]
	if !ok {
		return Ribbon{}, errors.New(errors.ErrCodeUnknownNode, "link %d→%d: no position for target node %d",
			link.Source, link.Target, link.Target)
	}
	t, err := o.thickness(link.Value, maxValue)
	if err != nil {
		return Ribbon{}, err
	}

	x1, y1 := src.Right(), src.MidY()
	x2, y2 := dst.X, dst.MidY()
	off := o.curveOffset

	r := Ribbon{
		Link:      link,
		Thickness: t,
		Upper: Cubic{
			P0: Point{x1, y1},
			C1: Point{x1 + off, y1},
			C2: Point{x2 - off, y2},
			P3: Point{x2, y2},
		},
		Lower: Cubic{
			P0: Point{x2, y2 + t},
			C1: Point{x2 - off, y2 + t},
			C2: Point{x1 + off, y1 + t},
			P3: Point{x1, y1 + t},
		},
	}

	var srcRisk, dstRisk float64
	if n, ok := ds.Node(link.Source); ok {
		srcRisk = n.RiskScore
	}
	if n, ok := ds.Node(link.Target); ok {
		dstRisk = n.RiskScore
	}
	r.Risk = (srcRisk + dstRisk) / 2
	r.Band, r.Fill = colors.ColorFor(r.Risk)
	return r, nil
}

// BuildAll builds a ribbon for every link of ds, in link order, normalizing
// thickness against ds.MaxValue(). Ribbon.Index is the link's position in
// ds.Links(). A dataset without links yields no ribbons.
func BuildAll(ds *dataset.Dataset, l layout.Layout, opts ...Option) ([]Ribbon, error) {
	links := ds.Links()
	if len(links) == 0 {
		return nil, nil
	}
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	maxValue := ds.MaxValue()
	out := make([]Ribbon, 0, len(links))
	for i, link := range links {
		r, err := o.build(link, l.Positions, maxValue, ds)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "link %d", i)
		}
		r.Index = i
		out = append(out, r)
	}
	return out, nil
}
