package sources

import (
	"context"

	"donations/internal/dataset"
)

// Ports for dataset sources.
type (
	// DatasetLoader reads every category and donation from a source and
	// builds the dataset served for the lifetime of the process.
	DatasetLoader interface {
		Load(ctx context.Context) (*dataset.Dataset, error)
	}
)
