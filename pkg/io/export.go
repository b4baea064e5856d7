package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
)

// Write encodes ds in the given format. The output can be read back with
// [Read] and yields an equal dataset.
func Write(ds *dataset.Dataset, w io.Writer, format Format) error {
	doc := fromDataset(ds)

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s dataset", format)
	}
	return nil
}

// WriteJSON is shorthand for Write(ds, w, FormatJSON).
func WriteJSON(ds *dataset.Dataset, w io.Writer) error {
	return Write(ds, w, FormatJSON)
}

// Export writes ds to path, choosing the encoder from the extension.
func Export(ds *dataset.Dataset, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(ds, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
