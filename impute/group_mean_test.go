package impute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotabular/tabprep/dataset"
	"github.com/gotabular/tabprep/pkg/errors"
)

func strPtr(s string) *string { return &s }

// titanicLike builds a dataset with all six (Pclass, Sex) combinations and
// some missing ages.
func titanicLike(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewNumericSeries("Pclass", []float64{1, 1, 2, 2, 3, 3, 1, 1, 2, 2, 3, 3}),
		dataset.NewCategorySeries("Sex", []*string{
			strPtr("male"), strPtr("female"), strPtr("male"), strPtr("female"),
			strPtr("male"), strPtr("female"), strPtr("male"), strPtr("female"),
			strPtr("male"), strPtr("female"), strPtr("male"), strPtr("female"),
		}),
		dataset.NewNumericSeries("Age", []float64{
			40, 35, 30, 28, 25, 21,
			42, math.NaN(), 32, math.NaN(), math.NaN(), 23,
		}),
	)
	require.NoError(t, err)
	return ds
}

func TestGroupMeanImputer_Fit(t *testing.T) {
	ds := titanicLike(t)

	imp := NewGroupMeanImputer("Age", "Pclass", "Sex")
	require.NoError(t, imp.Fit(ds))

	m := imp.Matrix()
	// One entry per (Pclass, Sex) combination present in the data.
	assert.Equal(t, 6, m.Len())

	for _, e := range m.Entries() {
		assert.False(t, math.IsNaN(e.Mean))
		assert.Greater(t, e.Mean, 0.0)
		assert.Less(t, e.Mean, 100.0)
	}

	// Entries follow first appearance; the first group is (1, male) with
	// observed ages 40 and 42.
	first := m.Entries()[0]
	assert.Equal(t, []string{"1", "male"}, first.Values)
	assert.InDelta(t, 41.0, first.Mean, 1e-12)
}

func TestGroupMeanImputer_EmptyPartitionOmitted(t *testing.T) {
	// The (2, female) group has no observed ages at all.
	ds, err := dataset.New(
		dataset.NewNumericSeries("Pclass", []float64{1, 1, 2}),
		dataset.NewCategorySeries("Sex", []*string{strPtr("male"), strPtr("male"), strPtr("female")}),
		dataset.NewNumericSeries("Age", []float64{30, 40, math.NaN()}),
	)
	require.NoError(t, err)

	imp := NewGroupMeanImputer("Age", "Pclass", "Sex")
	require.NoError(t, imp.Fit(ds))

	m := imp.Matrix()
	assert.Equal(t, 1, m.Len(), "partition without observed targets must produce no entry")
	assert.Equal(t, []string{"1", "male"}, m.Entries()[0].Values)
}

func TestGroupMeanImputer_Transform(t *testing.T) {
	ds := titanicLike(t)

	imp := NewGroupMeanImputer("Age", "Pclass", "Sex")
	filled, err := imp.FitTransform(ds)
	require.NoError(t, err)

	age, err := filled.Column("Age")
	require.NoError(t, err)

	// Every missing row's group appeared with observed ages, so no gap
	// survives.
	assert.Equal(t, 0, age.MissingCount())

	// Row 7 is (1, female): observed age 35 in row 1.
	v, ok := age.Float(7)
	require.True(t, ok)
	assert.InDelta(t, 35.0, v, 1e-12)

	// Observed values are never touched.
	v, _ = age.Float(0)
	assert.Equal(t, 40.0, v)

	// The input dataset is unmodified.
	origAge, _ := ds.Column("Age")
	assert.Equal(t, 3, origAge.MissingCount())
}

func TestGroupMeanImputer_UnmatchedRowStaysMissing(t *testing.T) {
	ref, err := dataset.New(
		dataset.NewNumericSeries("Pclass", []float64{1, 1}),
		dataset.NewNumericSeries("Age", []float64{30, 40}),
	)
	require.NoError(t, err)

	target, err := dataset.New(
		dataset.NewNumericSeries("Pclass", []float64{1, 2}),
		dataset.NewNumericSeries("Age", []float64{math.NaN(), math.NaN()}),
	)
	require.NoError(t, err)

	imp := NewGroupMeanImputer("Age", "Pclass")
	require.NoError(t, imp.Fit(ref))

	filled, err := imp.Transform(target)
	require.NoError(t, err)

	age, _ := filled.Column("Age")
	v, ok := age.Float(0)
	require.True(t, ok, "matched group must be imputed")
	assert.InDelta(t, 35.0, v, 1e-12)
	assert.True(t, age.IsMissing(1), "group unseen at build time must stay missing")
}

func TestGroupMeanImputer_MissingGroupCell(t *testing.T) {
	// A missing grouping cell forms its own partition at build time and a
	// missing cell at apply time matches only that partition, never a
	// concrete key.
	ref, err := dataset.New(
		dataset.NewCategorySeries("Embarked", []*string{strPtr("S"), strPtr("S"), nil, nil}),
		dataset.NewNumericSeries("Age", []float64{10, 20, 50, 60}),
	)
	require.NoError(t, err)

	target, err := dataset.New(
		dataset.NewCategorySeries("Embarked", []*string{nil, strPtr("S")}),
		dataset.NewNumericSeries("Age", []float64{math.NaN(), math.NaN()}),
	)
	require.NoError(t, err)

	imp := NewGroupMeanImputer("Age", "Embarked")
	require.NoError(t, imp.Fit(ref))
	assert.Equal(t, 2, imp.Matrix().Len())

	filled, err := imp.Transform(target)
	require.NoError(t, err)

	age, _ := filled.Column("Age")
	v, ok := age.Float(0)
	require.True(t, ok)
	assert.InDelta(t, 55.0, v, 1e-12, "missing cell matches the missing-marker partition")

	v, ok = age.Float(1)
	require.True(t, ok)
	assert.InDelta(t, 15.0, v, 1e-12)
}

func TestGroupMeanImputer_NotFitted(t *testing.T) {
	ds := titanicLike(t)

	_, err := NewGroupMeanImputer("Age", "Pclass").Transform(ds)
	require.Error(t, err)

	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

func TestGroupMeanImputer_ColumnChecks(t *testing.T) {
	ds := titanicLike(t)

	err := NewGroupMeanImputer("Cabin", "Pclass").Fit(ds)
	assert.True(t, errors.IsColumnNotFound(err))

	err = NewGroupMeanImputer("Age", "Cabin").Fit(ds)
	assert.True(t, errors.IsColumnNotFound(err))

	err = NewGroupMeanImputer("Sex", "Pclass").Fit(ds)
	require.Error(t, err, "categorical target must be rejected")

	err = NewGroupMeanImputer("Age").Fit(ds)
	require.Error(t, err, "at least one grouping column is required")
}

func TestGroupMeanImputer_RowOrderIndependentMeans(t *testing.T) {
	ds := titanicLike(t)
	reversed := ds.Subset([]int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0})

	a := NewGroupMeanImputer("Age", "Pclass", "Sex")
	require.NoError(t, a.Fit(ds))
	b := NewGroupMeanImputer("Age", "Pclass", "Sex")
	require.NoError(t, b.Fit(reversed))

	require.Equal(t, a.Matrix().Len(), b.Matrix().Len())
	for _, e := range a.Matrix().Entries() {
		mean, ok := b.Matrix().Lookup(e.Key)
		require.True(t, ok)
		assert.InDelta(t, e.Mean, mean, 1e-12)
	}
}
