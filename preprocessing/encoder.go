// Package preprocessing provides dataset transforms applied before model
// training.
package preprocessing

import (
	"fmt"
	"log/slog"

	"github.com/gotabular/tabprep/core/model"
	"github.com/gotabular/tabprep/dataset"
	"github.com/gotabular/tabprep/pkg/errors"
	"github.com/gotabular/tabprep/pkg/log"
)

// OneHotEncoder converts one categorical column into a set of binary
// indicator columns, one per distinct non-missing value.
//
// Indicator columns are named "{column}_{value}". Re-encoding the same
// column is idempotent: any indicator columns from a previous pass are
// dropped by name before new ones are generated. Rows where the source value
// is missing get 0.0 in every indicator column; no explicit missing
// indicator is created.
type OneHotEncoder struct {
	model.BaseEstimator

	// Column is the categorical column to encode.
	Column string

	categories []string
	names      []string
}

// NewOneHotEncoder creates an encoder for the given column.
//
// Example:
//
//	enc := preprocessing.NewOneHotEncoder("Sex")
//	encoded, names, err := enc.Encode(ds)
func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{Column: column}
}

// Encode returns an augmented copy of ds with one indicator column per
// distinct value of the source column, plus the ordered list of generated
// indicator column names for later use as model predictors. The input
// dataset is left unmodified.
func (e *OneHotEncoder) Encode(ds *dataset.Dataset) (*dataset.Dataset, []string, error) {
	col, err := ds.Column(e.Column)
	if err != nil {
		return nil, nil, errors.NewColumnNotFoundError("OneHotEncoder.Encode", e.Column)
	}

	if col.Kind() == dataset.Numeric {
		errors.Warn(errors.NewDataConversionWarning(
			"float64", "string",
			fmt.Sprintf("numeric column '%s' treated as categorical for encoding", e.Column),
		))
	}

	// Distinct non-missing values in first-occurrence order.
	seen := make(map[string]bool)
	e.categories = e.categories[:0]
	for i := 0; i < col.Len(); i++ {
		v, ok := col.ValueString(i)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		e.categories = append(e.categories, v)
	}

	out := ds.Copy()
	e.names = make([]string, 0, len(e.categories))
	for _, category := range e.categories {
		name := e.Column + "_" + category
		// Drop indicators from a prior encoding pass, if any.
		out.DropColumn(name)
		e.names = append(e.names, name)
	}

	for ci, category := range e.categories {
		indicator := make([]float64, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.ValueString(i); ok && v == category {
				indicator[i] = 1.0
			}
		}
		if err := out.AddColumn(dataset.NewNumericSeries(e.names[ci], indicator)); err != nil {
			return nil, nil, err
		}
	}

	e.SetFitted()
	slog.Debug("column encoded",
		log.OperationKey, "encode",
		log.ColumnKey, e.Column,
		"categories", len(e.categories),
	)
	return out, append([]string(nil), e.names...), nil
}

// Categories returns the distinct values captured by the last Encode call,
// in first-occurrence order.
func (e *OneHotEncoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

// FeatureNames returns the indicator column names generated by the last
// Encode call.
func (e *OneHotEncoder) FeatureNames() []string {
	return append([]string(nil), e.names...)
}

// String returns a printable description of the encoder.
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(column=%s)", e.Column)
	}
	return fmt.Sprintf("OneHotEncoder(column=%s, categories=%d)", e.Column, len(e.categories))
}
