package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/riskflow/pkg/errors"
)

// converter is the librsvg command line tool; tests may point it elsewhere.
var converter = "rsvg-convert"

const installHint = "install librsvg (brew install librsvg, apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return run(ctx, svg, "-f", "pdf")
}

// ToPNG rasterizes an SVG document; scale 2 doubles each dimension.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", scale)
	}
	return run(ctx, svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func run(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	format := args[1]
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs %s: %s", format, converter, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = bytes.NewReader(svg), &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s %s: %s",
			converter, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
