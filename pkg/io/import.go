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

// Read decodes a dataset in the given format from r.
//
// Read returns an error with code [errors.ErrCodeInvalidFormat] if the input
// cannot be decoded, and [errors.ErrCodeInvalidDataset] if it decodes but
// fails schema validation. Errors from [dataset.New] are returned as is, so
// unknown link endpoints keep their [errors.ErrCodeUnknownNode] code.
//
// Read does not close r.
func Read(r io.Reader, format Format, opts ...dataset.Option) (*dataset.Dataset, error) {
	var doc document
	if err := decode(r, format, &doc); err != nil {
		return nil, err
	}
	if err := doc.check(); err != nil {
		return nil, err
	}
	return doc.toDataset(opts...)
}

func decode(r io.Reader, format Format, doc *document) error {
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(doc)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(doc)
		if err == io.EOF {
			err = nil
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s dataset", format)
	}
	return nil
}

// ReadJSON is shorthand for Read(r, FormatJSON, opts...).
func ReadJSON(r io.Reader, opts ...dataset.Option) (*dataset.Dataset, error) {
	return Read(r, FormatJSON, opts...)
}

// Import reads the dataset file at path, choosing the decoder from its
// extension. A missing file yields [errors.ErrCodeFileNotFound].
func Import(path string, opts ...dataset.Option) (*dataset.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	ds, err := Read(f, format, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return ds, nil
}
