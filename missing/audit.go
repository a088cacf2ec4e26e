// Package missing provides diagnostics for missing data: per-column audits
// and statistical tests of the missingness mechanism (MCAR/MAR/MNAR).
package missing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gotabular/tabprep/dataset"
)

// ColumnCount is one line of a missingness report.
type ColumnCount struct {
	Column string
	Count  int
}

// Report lists columns with at least one missing value, ordered by count
// descending with ties broken by original column order.
type Report []ColumnCount

// Audit counts missing values per column. Columns with no missing values are
// omitted. The dataset is not modified.
func Audit(ds *dataset.Dataset) Report {
	report := make(Report, 0)
	for _, name := range ds.ColumnNames() {
		col, _ := ds.Column(name)
		if n := col.MissingCount(); n > 0 {
			report = append(report, ColumnCount{Column: name, Count: n})
		}
	}
	// Stable sort keeps original column order for equal counts.
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Count > report[j].Count
	})
	return report
}

// Count returns the missing count for a column, or 0 if the column is not in
// the report.
func (r Report) Count(column string) int {
	for _, c := range r {
		if c.Column == column {
			return c.Count
		}
	}
	return 0
}

// String renders the report one column per line.
func (r Report) String() string {
	if len(r) == 0 {
		return "no missing values"
	}
	var b strings.Builder
	for _, c := range r {
		fmt.Fprintf(&b, "%s: %d\n", c.Column, c.Count)
	}
	return b.String()
}
