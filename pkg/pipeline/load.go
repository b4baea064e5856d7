package pipeline

import (
	"bytes"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	pkgio "github.com/matzehuels/riskflow/pkg/io"
)

// Load returns the dataset named by opts. Strict applies to the sample and
// to files; a preloaded Dataset is returned as is.
func Load(opts Options) (*dataset.Dataset, error) {
	switch {
	case opts.Dataset != nil:
		return opts.Dataset, nil
	case opts.Sample:
		if opts.Strict {
			return dataset.New(dataset.Sample().Nodes(), dataset.Sample().Links(), dataset.Strict())
		}
		return dataset.Sample(), nil
	case opts.Path != "":
		return pkgio.Import(opts.Path, opts.DatasetOptions()...)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "no dataset: pass a file or use the sample")
}

// DatasetHash hashes the canonical JSON encoding of ds.
func DatasetHash(ds *dataset.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(ds, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return cache.Hash(buf.Bytes()), nil
}
