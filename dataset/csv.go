package dataset

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/gotabular/tabprep/pkg/errors"
	"github.com/gotabular/tabprep/pkg/log"
)

// ReadCSV parses a comma-separated table with a header row into a Dataset.
// Empty fields denote missing values. A column is numeric when every
// non-empty field parses as a float; otherwise it is categorical.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "tabprep: ReadCSV: parsing input")
	}
	if len(records) == 0 {
		return nil, errors.NewModelError("ReadCSV", "empty input", errors.ErrEmptyData)
	}

	header := records[0]
	rows := records[1:]

	ds := &Dataset{index: make(map[string]int)}
	for j, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[j]
		}
		if err := ds.AddColumn(inferColumn(name, cells)); err != nil {
			return nil, err
		}
	}

	slog.Debug("dataset loaded",
		log.RowsKey, ds.NumRows(),
		log.ColumnsKey, ds.NumColumns(),
	)
	return ds, nil
}

// ReadCSVFile reads a CSV file from disk.
func ReadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tabprep: ReadCSVFile: opening %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// inferColumn builds a Series from raw cells, deciding the column kind from
// the non-empty values.
func inferColumn(name string, cells []string) *Series {
	numeric := true
	seen := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			numeric = false
			break
		}
	}
	// An all-missing column stays categorical; there is no evidence either way.
	if !seen || !numeric {
		return NewCategorySeriesFromStrings(name, cells)
	}

	values := make([]float64, len(cells))
	valid := make([]bool, len(cells))
	for i, c := range cells {
		if c == "" {
			continue
		}
		v, _ := strconv.ParseFloat(c, 64)
		values[i] = v
		valid[i] = true
	}
	return &Series{name: name, kind: Numeric, floats: values, valid: valid}
}
