package cache

import "github.com/matzehuels/riskflow/pkg/render/flow/layout"

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// SceneKey identifies a composed scene for a dataset.
	SceneKey(datasetHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies rendered output for a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts lists the inputs that change scene geometry or state.
type SceneKeyOpts struct {
	Canvas       layout.Canvas `json:"canvas"`
	NodeWidth    float64       `json:"node_width,omitempty"`
	NodeHeight   float64       `json:"node_height,omitempty"`
	Gap          float64       `json:"gap,omitempty"`
	MinThickness float64       `json:"min_thickness,omitempty"`
	MaxThickness float64       `json:"max_thickness,omitempty"`
	CurveOffset  float64       `json:"curve_offset,omitempty"`
	Hovered      *int          `json:"hovered,omitempty"`
	Selected     *int          `json:"selected,omitempty"`
}

// ArtifactKeyOpts extends SceneKeyOpts with the renderer settings.
type ArtifactKeyOpts struct {
	SceneKeyOpts
	VizType     string  `json:"viz_type"`
	Format      string  `json:"format"`
	Style       string  `json:"style,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Legend      bool    `json:"legend,omitempty"`
	Title       string  `json:"title,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes its inputs under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return hashKey("scene", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}
