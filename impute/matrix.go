// Package impute fills missing values using statistics computed from a
// reference dataset.
package impute

import (
	"fmt"
	"strings"

	"github.com/gotabular/tabprep/dataset"
)

// missingMarker is the group-key component for a missing grouping cell. The
// NUL prefix keeps it from colliding with any observed value; a missing cell
// therefore never compares equal to a concrete key component.
const missingMarker = "\x00<missing>"

// keySeparator joins group-key components.
const keySeparator = "\x1f"

// GroupKey is the encoded tuple of grouping-column values identifying one
// partition.
type GroupKey string

// Entry is one (grouping-key-tuple, mean) pair.
type Entry struct {
	// Values holds the display form of each grouping value, with
	// "<missing>" for a missing marker. Ordered like GroupColumns.
	Values []string
	// Key is the encoded tuple used for matching.
	Key GroupKey
	// Mean is the arithmetic mean of the observed target values in the
	// partition.
	Mean float64
}

// Matrix is an immutable, ordered set of group-mean entries computed from a
// reference dataset. Keys are unique; entry order is the order of first
// appearance in the reference data.
type Matrix struct {
	// TargetColumn is the numeric column the means were computed over.
	TargetColumn string
	// GroupColumns are the grouping column names, in key order.
	GroupColumns []string

	entries []Entry
	index   map[GroupKey]int
}

// Len returns the number of entries.
func (m *Matrix) Len() int { return len(m.entries) }

// Entries returns the entries in first-appearance order.
func (m *Matrix) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Lookup returns the mean for a group key.
func (m *Matrix) Lookup(key GroupKey) (mean float64, ok bool) {
	i, ok := m.index[key]
	if !ok {
		return 0, false
	}
	return m.entries[i].Mean, true
}

// String renders the matrix as a small table, one group per line.
func (m *Matrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ImputationMatrix(%s by %s)\n", m.TargetColumn, strings.Join(m.GroupColumns, ", "))
	for _, e := range m.entries {
		fmt.Fprintf(&b, "  (%s) -> %.4f\n", strings.Join(e.Values, ", "), e.Mean)
	}
	return b.String()
}

// rowKey encodes the grouping tuple of row i. A missing cell contributes the
// missing marker, so two rows match only when every component is either
// equal or missing in both.
func rowKey(cols []*dataset.Series, i int) (GroupKey, []string) {
	parts := make([]string, len(cols))
	display := make([]string, len(cols))
	for j, col := range cols {
		if v, ok := col.ValueString(i); ok {
			parts[j] = v
			display[j] = v
		} else {
			parts[j] = missingMarker
			display[j] = "<missing>"
		}
	}
	return GroupKey(strings.Join(parts, keySeparator)), display
}
