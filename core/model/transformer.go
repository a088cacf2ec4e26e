package model

import "github.com/gotabular/tabprep/dataset"

// FrameTransformer is a dataset-to-dataset transform with learned state:
// Fit derives parameters from a reference dataset, Transform applies them
// to a (possibly different) dataset and returns a new one.
type FrameTransformer interface {
	// Fit learns the transform parameters from ds.
	Fit(ds *dataset.Dataset) error

	// Transform applies the learned parameters, leaving ds unmodified.
	Transform(ds *dataset.Dataset) (*dataset.Dataset, error)
}
