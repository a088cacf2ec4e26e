package impute

import (
	"fmt"
	"log/slog"

	"github.com/gotabular/tabprep/core/model"
	"github.com/gotabular/tabprep/dataset"
	"github.com/gotabular/tabprep/pkg/errors"
	"github.com/gotabular/tabprep/pkg/log"
)

// GroupMeanImputer fills missing values of a numeric target column with the
// mean of the target over rows sharing the same grouping-column values.
//
// Fit computes the group-mean matrix from a reference dataset; Transform
// applies it to a target dataset, which may differ from the reference. Rows
// whose grouping tuple never appeared in the reference (including rows with
// a missing grouping cell, unless the reference had the same missing
// pattern) are left unimputed.
type GroupMeanImputer struct {
	model.BaseEstimator

	// TargetColumn is the numeric column to impute.
	TargetColumn string

	// GroupColumns are the columns whose value tuple partitions the rows.
	GroupColumns []string

	matrix *Matrix
}

var _ model.FrameTransformer = (*GroupMeanImputer)(nil)

// NewGroupMeanImputer creates an imputer for target grouped by groups.
//
// Example:
//
//	imp := impute.NewGroupMeanImputer("Age", "Pclass", "Sex")
//	if err := imp.Fit(train); err != nil { ... }
//	filled, err := imp.Transform(test)
func NewGroupMeanImputer(target string, groups ...string) *GroupMeanImputer {
	return &GroupMeanImputer{TargetColumn: target, GroupColumns: groups}
}

// Fit builds the imputation matrix from ds.
//
// Rows are partitioned by their grouping tuple; rows with a missing grouping
// cell form their own partition keyed by the missing marker in that
// position. Each partition contributes one entry holding the mean of the
// observed target values; partitions with no observed target are omitted.
// Entries are ordered by first appearance, and the resulting means do not
// depend on row order.
func (im *GroupMeanImputer) Fit(ds *dataset.Dataset) error {
	if len(im.GroupColumns) == 0 {
		return errors.NewValueError("GroupMeanImputer.Fit", "at least one grouping column is required")
	}

	target, groupCols, err := im.resolve(ds, "GroupMeanImputer.Fit")
	if err != nil {
		return err
	}
	if target.Kind() != dataset.Numeric {
		return errors.NewValueError("GroupMeanImputer.Fit", "target column '"+im.TargetColumn+"' is not numeric")
	}

	type accum struct {
		sum   float64
		count int
	}
	order := make([]GroupKey, 0)
	display := make(map[GroupKey][]string)
	sums := make(map[GroupKey]*accum)

	for i := 0; i < ds.NumRows(); i++ {
		key, values := rowKey(groupCols, i)
		if _, seen := sums[key]; !seen {
			sums[key] = &accum{}
			display[key] = values
			order = append(order, key)
		}
		if v, ok := target.Float(i); ok {
			a := sums[key]
			a.sum += v
			a.count++
		}
	}

	m := &Matrix{
		TargetColumn: im.TargetColumn,
		GroupColumns: append([]string(nil), im.GroupColumns...),
		index:        make(map[GroupKey]int),
	}
	for _, key := range order {
		a := sums[key]
		if a.count == 0 {
			// No observed target in this partition; an undefined mean
			// produces no entry.
			continue
		}
		m.index[key] = len(m.entries)
		m.entries = append(m.entries, Entry{
			Values: display[key],
			Key:    key,
			Mean:   a.sum / float64(a.count),
		})
	}

	im.matrix = m
	im.SetFitted()
	slog.Debug("imputation matrix built",
		log.OperationKey, "fit",
		log.ColumnKey, im.TargetColumn,
		log.GroupsKey, m.Len(),
	)
	return nil
}

// Transform returns a copy of ds in which every row with a missing target
// and a grouping tuple present in the matrix receives the group mean. Rows
// with an observed target are never touched; unmatched rows stay missing.
// The input dataset is left unmodified.
func (im *GroupMeanImputer) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !im.IsFitted() {
		return nil, errors.NewNotFittedError("GroupMeanImputer", "Transform")
	}

	_, groupCols, err := im.resolve(ds, "GroupMeanImputer.Transform")
	if err != nil {
		return nil, err
	}

	out := ds.Copy()
	target, err := out.Column(im.TargetColumn)
	if err != nil {
		return nil, errors.NewColumnNotFoundError("GroupMeanImputer.Transform", im.TargetColumn)
	}
	if target.Kind() != dataset.Numeric {
		return nil, errors.NewValueError("GroupMeanImputer.Transform", "target column '"+im.TargetColumn+"' is not numeric")
	}

	filled := 0
	for i := 0; i < out.NumRows(); i++ {
		if !target.IsMissing(i) {
			continue
		}
		key, _ := rowKey(groupCols, i)
		if mean, ok := im.matrix.Lookup(key); ok {
			target.SetFloat(i, mean)
			filled++
		}
	}

	slog.Debug("imputation applied",
		log.OperationKey, "transform",
		log.ColumnKey, im.TargetColumn,
		log.RowsKey, out.NumRows(),
		"filled", filled,
	)
	return out, nil
}

// FitTransform fits on ds and applies the matrix to the same dataset.
func (im *GroupMeanImputer) FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := im.Fit(ds); err != nil {
		return nil, err
	}
	return im.Transform(ds)
}

// Matrix returns the fitted imputation matrix, or nil before Fit.
func (im *GroupMeanImputer) Matrix() *Matrix {
	return im.matrix
}

// resolve fetches the target and grouping columns from ds. Grouping cells
// are read from ds even when some are missing; matching handles the missing
// marker.
func (im *GroupMeanImputer) resolve(ds *dataset.Dataset, op string) (*dataset.Series, []*dataset.Series, error) {
	target, err := ds.Column(im.TargetColumn)
	if err != nil {
		return nil, nil, errors.NewColumnNotFoundError(op, im.TargetColumn)
	}
	groupCols := make([]*dataset.Series, len(im.GroupColumns))
	for j, name := range im.GroupColumns {
		col, err := ds.Column(name)
		if err != nil {
			return nil, nil, errors.NewColumnNotFoundError(op, name)
		}
		groupCols[j] = col
	}
	return target, groupCols, nil
}

// String returns a printable description of the imputer.
func (im *GroupMeanImputer) String() string {
	if !im.IsFitted() {
		return fmt.Sprintf("GroupMeanImputer(target=%s)", im.TargetColumn)
	}
	return fmt.Sprintf("GroupMeanImputer(target=%s, groups=%d)", im.TargetColumn, im.matrix.Len())
}
