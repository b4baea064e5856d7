// Package pipeline provides the load → layout → render pipeline for riskflow.
//
// The CLI, the HTTP server and tests all run diagrams through this package
// so defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a dataset file (JSON, TOML or YAML) or use the built-in sample
//  2. Layout: place nodes, build ribbons and apply hover/selection, producing a [flow.Scene]
//  3. Render: generate output (SVG, PNG, PDF, JSON, or DOT for the node-link view)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Sample:  true,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// [flow.Scene]: github.com/matzehuels/riskflow/pkg/render/flow.Scene
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/render/flow/ribbon"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
	"github.com/matzehuels/riskflow/pkg/render/flow/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	DefaultNodeWidth    = layout.DefaultNodeWidth
	DefaultNodeHeight   = layout.DefaultNodeHeight
	DefaultGap          = layout.DefaultGap
	DefaultMinThickness = ribbon.DefaultMinThickness
	DefaultMaxThickness = ribbon.DefaultMaxThickness
	DefaultCurveOffset  = ribbon.DefaultCurveOffset
	DefaultScale        = sink.DefaultScale
	DefaultStyle        = "simple"
)

// Visualization types.
const (
	VizFlow     = "flow"
	VizNodelink = "nodelink"
)

// DefaultVizType is the layered flow diagram.
const DefaultVizType = VizFlow

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// validFormats lists the formats each visualization type can produce.
var validFormats = map[string][]string{
	VizFlow:     {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	VizNodelink: {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. Zero values
// select the defaults above.
type Options struct {
	// Load options. Dataset takes precedence over Sample, Sample over Path.
	Path    string           `json:"path,omitempty"`
	Sample  bool             `json:"sample,omitempty"`
	Strict  bool             `json:"strict,omitempty"`
	Dataset *dataset.Dataset `json:"-"`

	// Layout options. A zero canvas size or zero margins select the
	// default canvas values.
	Canvas       layout.Canvas `json:"canvas"`
	NodeWidth    float64       `json:"node_width,omitempty"`
	NodeHeight   float64       `json:"node_height,omitempty"`
	Gap          float64       `json:"gap,omitempty"`
	MinThickness float64       `json:"min_thickness,omitempty"`
	MaxThickness float64       `json:"max_thickness,omitempty"`
	CurveOffset  float64       `json:"curve_offset,omitempty"`

	// Interaction state baked into the output.
	Hover  *int `json:"hover,omitempty"`
	Select *int `json:"select,omitempty"`

	// Render options
	VizType     string   `json:"viz_type,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	NoLegend    bool     `json:"no_legend,omitempty"`
	Title       string   `json:"title,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset     *dataset.Dataset
	DatasetHash string
	Source      string

	// Scene is empty for the node-link visualization.
	Scene     flow.Scene
	Artifacts map[string][]byte
	Warnings  []dataset.Warning
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	LayerCount int
	Crossings  int  // ribbon crossings between adjacent layers
	Overflow   bool // some column is taller than the usable canvas height
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is known.
func ValidateVizType(vizType string) error {
	if _, ok := validFormats[vizType]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz type %q (must be one of: flow, nodelink)", vizType)
	}
	return nil
}

// ValidateFormat checks that vizType can produce format.
func ValidateFormat(vizType, format string) error {
	valid := validFormats[vizType]
	if !slices.Contains(valid, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid %s format %q (must be one of: %s)",
			vizType, format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the result. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := o.Canvas.Validate(); err != nil {
		return err
	}
	if o.MinThickness > o.MaxThickness {
		return errors.New(errors.ErrCodeInvalidInput, "min thickness %.1f exceeds max thickness %.1f",
			o.MinThickness, o.MaxThickness)
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in zero layout values.
func (o *Options) SetLayoutDefaults() {
	def := layout.DefaultCanvas()
	if o.Canvas.Width == 0 {
		o.Canvas.Width = def.Width
	}
	if o.Canvas.Height == 0 {
		o.Canvas.Height = def.Height
	}
	if o.Canvas.Margins == (layout.Margins{}) {
		o.Canvas.Margins = def.Margins
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.Gap == 0 {
		o.Gap = DefaultGap
	}
	if o.MinThickness == 0 {
		o.MinThickness = DefaultMinThickness
	}
	if o.MaxThickness == 0 {
		o.MaxThickness = DefaultMaxThickness
	}
	if o.CurveOffset == 0 {
		o.CurveOffset = DefaultCurveOffset
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills in zero render values.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink returns true for the Graphviz node-link view.
func (o *Options) IsNodelink() bool { return o.VizType == VizNodelink }

// DatasetOptions returns the options passed to dataset construction.
func (o *Options) DatasetOptions() []dataset.Option {
	if o.Strict {
		return []dataset.Option{dataset.Strict()}
	}
	return nil
}

// LayoutOptions returns the node sizing options for [layout.Build].
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithNodeSize(o.NodeWidth, o.NodeHeight),
		layout.WithGap(o.Gap),
	}
}

// EngineOptions returns the layout and ribbon options for [flow.New].
func (o *Options) EngineOptions() []flow.Option {
	return []flow.Option{
		flow.WithLayoutOptions(o.LayoutOptions()...),
		flow.WithRibbonOptions(
			ribbon.WithThickness(o.MinThickness, o.MaxThickness),
			ribbon.WithCurveOffset(o.CurveOffset),
		),
	}
}

// SceneKeyOpts returns cache key options for the layout stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Canvas:       o.Canvas,
		NodeWidth:    o.NodeWidth,
		NodeHeight:   o.NodeHeight,
		Gap:          o.Gap,
		MinThickness: o.MinThickness,
		MaxThickness: o.MaxThickness,
		CurveOffset:  o.CurveOffset,
		Hovered:      o.Hover,
		Selected:     o.Select,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		VizType:  o.VizType,
		Format:   format,
		Detailed: o.Detailed,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if !o.IsNodelink() {
		k.SceneKeyOpts = o.SceneKeyOpts()
		k.Style = o.Style
		k.Interactive = o.Interactive
		k.Legend = !o.NoLegend
		k.Title = o.Title
	}
	return k
}

// source names where the dataset comes from, for logs and metrics.
func (o *Options) source() string {
	switch {
	case o.Dataset != nil:
		return "inline"
	case o.Sample:
		return "sample"
	case o.Path != "":
		return o.Path
	}
	return ""
}
