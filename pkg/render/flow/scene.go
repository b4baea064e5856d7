package flow

import (
	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/render/flow/ribbon"
)

// Scene is the render contract: every primitive a renderer draws.
type Scene struct {
	Canvas   layout.Canvas        `json:"canvas"`
	Nodes    []SceneNode          `json:"nodes"`
	Links    []SceneLink          `json:"links"`
	Hovered  *int                 `json:"hovered"`
	Selected *int                 `json:"selected"`
	Legend   []colors.LegendEntry `json:"legend"`
}

// SceneNode is one node box.
type SceneNode struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Lines     []string         `json:"lines"`
	Layer     int              `json:"layer"`
	Category  dataset.Category `json:"category,omitempty"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	RiskScore float64          `json:"risk_score"`
	Band      colors.Band      `json:"band"`
	Fill      string           `json:"fill"`
	Border    bool             `json:"border"`
	Count     *int             `json:"count,omitempty"`
	Opacity   float64          `json:"opacity"`
	Hovered   bool             `json:"hovered,omitempty"`
	Selected  bool             `json:"selected,omitempty"`
}

// Position returns the node box.
func (n SceneNode) Position() layout.Position {
	return layout.Position{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// SceneLink is one ribbon.
type SceneLink struct {
	Index     int          `json:"index"`
	Source    int          `json:"source"`
	Target    int          `json:"target"`
	Value     float64      `json:"value"`
	Path      string       `json:"path"`
	Mid       ribbon.Point `json:"mid"`
	Thickness float64      `json:"thickness"`
	Band      colors.Band  `json:"band"`
	Fill      string       `json:"fill"`
	Opacity   float64      `json:"opacity"`
	Hovered   bool         `json:"hovered,omitempty"`
}

// Node returns the scene node with the given id.
func (s Scene) Node(id int) (SceneNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return SceneNode{}, false
}

// Compose assembles a Scene. It has no side effects; nodes missing from the
// layout are skipped. Nodes keep dataset order and links keep ribbon order.
func Compose(ds *dataset.Dataset, l layout.Layout, ribbons []ribbon.Ribbon, state interact.State) Scene {
	s := Scene{
		Canvas:   l.Canvas,
		Nodes:    make([]SceneNode, 0, ds.NodeCount()),
		Links:    make([]SceneLink, 0, len(ribbons)),
		Hovered:  copyID(state.Hovered),
		Selected: copyID(state.Selected),
		Legend:   colors.Legend(),
	}
	hovered, hasHover := state.HoveredID()
	selected, hasSelected := state.SelectedID()

	for _, n := range ds.Nodes() {
		p, ok := l.Positions[n.ID]
		if !ok {
			continue
		}
		band, rgb := colors.ColorFor(n.RiskScore)
		s.Nodes = append(s.Nodes, SceneNode{
			ID:        n.ID,
			Name:      n.Name,
			Lines:     n.Lines(),
			Layer:     n.Layer,
			Category:  n.Category,
			X:         p.X,
			Y:         p.Y,
			Width:     p.Width,
			Height:    p.Height,
			RiskScore: n.RiskScore,
			Band:      band,
			Fill:      rgb.Hex(),
			Border:    n.IsOutcome,
			Count:     n.Count,
			Opacity:   interact.NodeOpacity(state, n.ID),
			Hovered:   hasHover && hovered == n.ID,
			Selected:  hasSelected && selected == n.ID,
		})
	}

	for _, r := range ribbons {
		opacity := interact.LinkOpacity(state, r.Index)
		s.Links = append(s.Links, SceneLink{
			Index:     r.Index,
			Source:    r.Link.Source,
			Target:    r.Link.Target,
			Value:     r.Link.Value,
			Path:      r.Path(),
			Mid:       r.Mid(),
			Thickness: r.Thickness,
			Band:      r.Band,
			Fill:      r.Fill.Hex(),
			Opacity:   opacity,
			Hovered:   opacity == interact.LinkHoverOpacity,
		})
	}
	return s
}

func copyID(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
