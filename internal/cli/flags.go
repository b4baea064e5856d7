package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/riskflow/internal/config"
	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
)

// diagramFlags collects the flags shared by commands that load a dataset
// and lay it out. Values only override the config file when the flag was
// set explicitly.
type diagramFlags struct {
	sample bool
	strict bool

	width, height                                    float64
	marginTop, marginRight, marginBottom, marginLeft float64
	nodeWidth, nodeHeight, gap                       float64
	minThickness, maxThickness, curveOffset          float64

	style       string
	interactive bool
	noLegend    bool
	title       string
	scale       float64

	hover, selected int
}

func (f *diagramFlags) addDatasetFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.sample, "sample", false, "use the built-in sample dataset")
	fs.BoolVar(&f.strict, "strict", false, "reject links that skip layers")
}

func (f *diagramFlags) addLayoutFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&f.width, "width", layout.DefaultWidth, "canvas width")
	fs.Float64Var(&f.height, "height", layout.DefaultHeight, "canvas height")
	fs.Float64Var(&f.marginTop, "margin-top", layout.DefaultMarginTop, "top margin")
	fs.Float64Var(&f.marginRight, "margin-right", layout.DefaultMarginRight, "right margin (outcome labels and legend)")
	fs.Float64Var(&f.marginBottom, "margin-bottom", layout.DefaultMarginBottom, "bottom margin")
	fs.Float64Var(&f.marginLeft, "margin-left", layout.DefaultMarginLeft, "left margin")
	fs.Float64Var(&f.nodeWidth, "node-width", pipeline.DefaultNodeWidth, "node box width")
	fs.Float64Var(&f.nodeHeight, "node-height", pipeline.DefaultNodeHeight, "node box height")
	fs.Float64Var(&f.gap, "gap", pipeline.DefaultGap, "vertical gap between nodes of a layer")
	fs.Float64Var(&f.minThickness, "min-thickness", pipeline.DefaultMinThickness, "thinnest ribbon")
	fs.Float64Var(&f.maxThickness, "max-thickness", pipeline.DefaultMaxThickness, "thickest ribbon")
	fs.Float64Var(&f.curveOffset, "curve-offset", pipeline.DefaultCurveOffset, "horizontal pull of ribbon control points")
}

func (f *diagramFlags) addStyleFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple (default), contrast, handdrawn")
	fs.BoolVar(&f.interactive, "interactive", false, "embed hover and selection script in SVG output")
	fs.BoolVar(&f.noLegend, "no-legend", false, "omit the risk level legend")
	fs.StringVar(&f.title, "title", "", "diagram title")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

func (f *diagramFlags) addStateFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.hover, "hover", 0, "render with this node hovered")
	fs.IntVar(&f.selected, "select", 0, "render with this node selected")
}

// options starts from the config file and applies every flag the user
// set on cmd.
func (f *diagramFlags) options(cmd *cobra.Command, cfg *config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	fs := cmd.Flags()
	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}

	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}
	setFloat := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}

	opts.Sample = f.sample
	setBool("strict", &opts.Strict, f.strict)

	setFloat("width", &opts.Canvas.Width, f.width)
	setFloat("height", &opts.Canvas.Height, f.height)
	setFloat("margin-top", &opts.Canvas.Margins.Top, f.marginTop)
	setFloat("margin-right", &opts.Canvas.Margins.Right, f.marginRight)
	setFloat("margin-bottom", &opts.Canvas.Margins.Bottom, f.marginBottom)
	setFloat("margin-left", &opts.Canvas.Margins.Left, f.marginLeft)
	setFloat("node-width", &opts.NodeWidth, f.nodeWidth)
	setFloat("node-height", &opts.NodeHeight, f.nodeHeight)
	setFloat("gap", &opts.Gap, f.gap)
	setFloat("min-thickness", &opts.MinThickness, f.minThickness)
	setFloat("max-thickness", &opts.MaxThickness, f.maxThickness)
	setFloat("curve-offset", &opts.CurveOffset, f.curveOffset)

	if changed("style") {
		opts.Style = f.style
	}
	setBool("interactive", &opts.Interactive, f.interactive)
	setBool("no-legend", &opts.NoLegend, f.noLegend)
	if changed("title") {
		opts.Title = f.title
	}
	setFloat("scale", &opts.Scale, f.scale)

	if changed("hover") {
		v := f.hover
		opts.Hover = &v
	}
	if changed("select") {
		v := f.selected
		opts.Select = &v
	}
	return opts
}

// input returns the dataset path argument and checks that exactly one of
// a path and --sample was given.
func (f *diagramFlags) input(args []string) (string, error) {
	switch {
	case f.sample && len(args) > 0:
		return "", errInputConflict
	case !f.sample && len(args) == 0:
		return "", errNoInput
	case f.sample:
		return "", nil
	default:
		return args[0], nil
	}
}
