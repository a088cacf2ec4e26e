// Package dataset implements an in-memory column-oriented table with
// per-cell missing markers, the common currency of all tabprep components.
//
// A Dataset holds an ordered list of homogeneously typed columns (numeric or
// categorical); any cell in any column may instead hold the missing marker.
// Column order and row order are insertion order. Datasets bridge to gonum
// matrices for model-training collaborators.
package dataset

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/gotabular/tabprep/pkg/errors"
)

// Kind is the value type of a column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Category columns hold string labels.
	Category
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "category"
}

// Series is a single named column. Values are homogeneous within the column
// apart from missing cells, which are tracked by a validity mask.
type Series struct {
	name   string
	kind   Kind
	floats []float64
	labels []string
	valid  []bool
}

// NewNumericSeries creates a numeric column. A NaN value marks a missing
// cell.
func NewNumericSeries(name string, values []float64) *Series {
	floats := make([]float64, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			floats[i] = v
			valid[i] = true
		}
	}
	return &Series{name: name, kind: Numeric, floats: floats, valid: valid}
}

// NewCategorySeries creates a categorical column. A nil entry marks a
// missing cell; the empty string is a legal label.
func NewCategorySeries(name string, values []*string) *Series {
	labels := make([]string, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		if v != nil {
			labels[i] = *v
			valid[i] = true
		}
	}
	return &Series{name: name, kind: Category, labels: labels, valid: valid}
}

// NewCategorySeriesFromStrings creates a categorical column from plain
// strings, treating the empty string as missing. This matches the CSV
// convention where an empty field denotes a missing value.
func NewCategorySeriesFromStrings(name string, values []string) *Series {
	labels := make([]string, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		if v != "" {
			labels[i] = v
			valid[i] = true
		}
	}
	return &Series{name: name, kind: Category, labels: labels, valid: valid}
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Kind returns the column kind.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.valid) }

// IsMissing reports whether row i holds the missing marker.
func (s *Series) IsMissing(i int) bool { return !s.valid[i] }

// MissingCount returns the number of missing cells.
func (s *Series) MissingCount() int {
	n := 0
	for _, ok := range s.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns the numeric value at row i. ok is false when the cell is
// missing or the column is categorical.
func (s *Series) Float(i int) (v float64, ok bool) {
	if s.kind != Numeric || !s.valid[i] {
		return 0, false
	}
	return s.floats[i], true
}

// Label returns the label at row i. ok is false when the cell is missing or
// the column is numeric.
func (s *Series) Label(i int) (v string, ok bool) {
	if s.kind != Category || !s.valid[i] {
		return "", false
	}
	return s.labels[i], true
}

// ValueString renders the cell at row i for use in derived names and group
// keys. Numeric values use the shortest exact decimal form, so 3.0 renders
// as "3". ok is false when the cell is missing.
func (s *Series) ValueString(i int) (v string, ok bool) {
	if !s.valid[i] {
		return "", false
	}
	if s.kind == Numeric {
		return strconv.FormatFloat(s.floats[i], 'g', -1, 64), true
	}
	return s.labels[i], true
}

// SetFloat stores a numeric value at row i, clearing the missing marker.
// It is a no-op on categorical columns.
func (s *Series) SetFloat(i int, v float64) {
	if s.kind != Numeric {
		return
	}
	s.floats[i] = v
	s.valid[i] = true
}

// Floats returns the observed (non-missing) numeric values in row order.
// The result is nil for categorical columns.
func (s *Series) Floats() []float64 {
	if s.kind != Numeric {
		return nil
	}
	out := make([]float64, 0, len(s.floats))
	for i, ok := range s.valid {
		if ok {
			out = append(out, s.floats[i])
		}
	}
	return out
}

// copySeries returns a deep copy.
func (s *Series) copySeries() *Series {
	dup := &Series{name: s.name, kind: s.kind}
	dup.valid = append([]bool(nil), s.valid...)
	if s.floats != nil {
		dup.floats = append([]float64(nil), s.floats...)
	}
	if s.labels != nil {
		dup.labels = append([]string(nil), s.labels...)
	}
	return dup
}

// subset returns a copy restricted to the given rows, in the given order.
func (s *Series) subset(rows []int) *Series {
	dup := &Series{name: s.name, kind: s.kind}
	dup.valid = make([]bool, len(rows))
	if s.kind == Numeric {
		dup.floats = make([]float64, len(rows))
	} else {
		dup.labels = make([]string, len(rows))
	}
	for j, i := range rows {
		dup.valid[j] = s.valid[i]
		if s.kind == Numeric {
			dup.floats[j] = s.floats[i]
		} else {
			dup.labels[j] = s.labels[i]
		}
	}
	return dup
}

// Dataset is an ordered collection of equal-length columns.
type Dataset struct {
	cols  []*Series
	index map[string]int
	nrows int
}

// New creates a dataset from columns. All columns must share the same length
// and have distinct names.
func New(columns ...*Series) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int)}
	for _, col := range columns {
		if err := ds.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// NumRows returns the number of rows.
func (ds *Dataset) NumRows() int { return ds.nrows }

// NumColumns returns the number of columns.
func (ds *Dataset) NumColumns() int { return len(ds.cols) }

// ColumnNames returns the column names in insertion order.
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.cols))
	for i, col := range ds.cols {
		names[i] = col.name
	}
	return names
}

// HasColumn reports whether a column exists.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// Column returns the named column, or ColumnNotFoundError.
func (ds *Dataset) Column(name string) (*Series, error) {
	i, ok := ds.index[name]
	if !ok {
		return nil, errors.NewColumnNotFoundError("Dataset.Column", name)
	}
	return ds.cols[i], nil
}

// AddColumn appends a column. The first column fixes the row count.
func (ds *Dataset) AddColumn(col *Series) error {
	if _, dup := ds.index[col.name]; dup {
		return errors.NewValueError("Dataset.AddColumn", "duplicate column name '"+col.name+"'")
	}
	if len(ds.cols) == 0 {
		ds.nrows = col.Len()
	} else if col.Len() != ds.nrows {
		return errors.NewDimensionError("Dataset.AddColumn", ds.nrows, col.Len(), 0)
	}
	ds.index[col.name] = len(ds.cols)
	ds.cols = append(ds.cols, col)
	return nil
}

// DropColumn removes a column if present and reports whether it existed.
// Absent names are ignored, mirroring pandas drop(errors="ignore").
func (ds *Dataset) DropColumn(name string) bool {
	i, ok := ds.index[name]
	if !ok {
		return false
	}
	ds.cols = append(ds.cols[:i], ds.cols[i+1:]...)
	delete(ds.index, name)
	for j := i; j < len(ds.cols); j++ {
		ds.index[ds.cols[j].name] = j
	}
	return true
}

// Copy returns a deep copy. Mutating the copy never affects the original.
func (ds *Dataset) Copy() *Dataset {
	dup := &Dataset{index: make(map[string]int, len(ds.index)), nrows: ds.nrows}
	for _, col := range ds.cols {
		dup.index[col.name] = len(dup.cols)
		dup.cols = append(dup.cols, col.copySeries())
	}
	return dup
}

// Subset returns a deep copy restricted to the given rows, in the given
// order. Row indices may repeat.
func (ds *Dataset) Subset(rows []int) *Dataset {
	dup := &Dataset{index: make(map[string]int, len(ds.index)), nrows: len(rows)}
	for _, col := range ds.cols {
		dup.index[col.name] = len(dup.cols)
		dup.cols = append(dup.cols, col.subset(rows))
	}
	return dup
}

// Matrix assembles the named numeric columns into a row-major gonum matrix
// for a model-training collaborator. All requested columns must be numeric
// and fully observed.
func (ds *Dataset) Matrix(columns ...string) (*mat.Dense, error) {
	if len(columns) == 0 || ds.nrows == 0 {
		return nil, errors.NewModelError("Dataset.Matrix", "empty data", errors.ErrEmptyData)
	}
	cols := make([]*Series, len(columns))
	for j, name := range columns {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		if col.kind != Numeric {
			return nil, errors.NewValueError("Dataset.Matrix", "column '"+name+"' is not numeric")
		}
		cols[j] = col
	}
	out := mat.NewDense(ds.nrows, len(columns), nil)
	for i := 0; i < ds.nrows; i++ {
		for j, col := range cols {
			v, ok := col.Float(i)
			if !ok {
				return nil, errors.NewValueError("Dataset.Matrix", "column '"+col.name+"' has a missing value at row "+strconv.Itoa(i))
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// Vector assembles one numeric column into a gonum vector.
func (ds *Dataset) Vector(column string) (*mat.VecDense, error) {
	m, err := ds.Matrix(column)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(ds.nrows, nil)
	for i := 0; i < ds.nrows; i++ {
		out.SetVec(i, m.At(i, 0))
	}
	return out, nil
}
