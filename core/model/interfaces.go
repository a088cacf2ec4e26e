package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model trainable on a predictor matrix and target vector.
type Fitter interface {
	// Fit trains the model on X and y.
	Fit(X, y mat.Matrix) error
}

// Predictor is a fitted model capable of prediction.
type Predictor interface {
	// Predict returns predicted labels for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the capability expected of an external model-training
// collaborator: tree, forest, or any compliant implementation.
type Classifier interface {
	Fitter
	Predictor
}

// FeatureImportancer is an ensemble model exposing per-predictor importance
// scores. Scores are normalized and sum to 1.0.
type FeatureImportancer interface {
	// FeatureImportances returns one score per predictor column, in the
	// column order the model was fitted with.
	FeatureImportances() []float64
}
