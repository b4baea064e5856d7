package layout

// Position is the bounding box of a node. X and Y are the top-left corner in
// canvas units; y grows downward as in SVG.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (p Position) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the bottom edge.
func (p Position) Bottom() float64 { return p.Y + p.Height }

// MidX returns the horizontal center.
func (p Position) MidX() float64 { return p.X + p.Width/2 }

// MidY returns the vertical center. Ribbons attach here.
func (p Position) MidY() float64 { return p.Y + p.Height/2 }

// Overlaps reports whether the two boxes share interior area. Boxes that only
// touch along an edge do not overlap.
func (p Position) Overlaps(q Position) bool {
	return p.X < q.Right() && q.X < p.Right() && p.Y < q.Bottom() && q.Y < p.Bottom()
}

// OverlapsVertically reports whether the vertical extents intersect.
func (p Position) OverlapsVertically(q Position) bool {
	return p.Y < q.Bottom() && q.Y < p.Bottom()
}
