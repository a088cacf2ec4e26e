package dataset

import (
	"github.com/montanaflynn/stats"

	"github.com/gotabular/tabprep/pkg/errors"
)

// Summary holds descriptive statistics for the observed values of a numeric
// column.
type Summary struct {
	Count   int // observed values
	Missing int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Describe computes descriptive statistics for a numeric column over its
// observed values. Missing cells are counted but excluded from every
// statistic.
func (ds *Dataset) Describe(column string) (Summary, error) {
	col, err := ds.Column(column)
	if err != nil {
		return Summary{}, err
	}
	if col.Kind() != Numeric {
		return Summary{}, errors.NewValueError("Dataset.Describe", "column '"+column+"' is not numeric")
	}

	observed := col.Floats()
	if len(observed) == 0 {
		return Summary{}, errors.NewModelError("Dataset.Describe", "no observed values in '"+column+"'", errors.ErrEmptyData)
	}

	data := stats.Float64Data(observed)
	mean, err := data.Mean()
	if err != nil {
		return Summary{}, errors.Wrap(err, "tabprep: Dataset.Describe: mean")
	}
	median, err := data.Median()
	if err != nil {
		return Summary{}, errors.Wrap(err, "tabprep: Dataset.Describe: median")
	}
	stddev, err := data.StandardDeviation()
	if err != nil {
		return Summary{}, errors.Wrap(err, "tabprep: Dataset.Describe: stddev")
	}
	minV, err := data.Min()
	if err != nil {
		return Summary{}, errors.Wrap(err, "tabprep: Dataset.Describe: min")
	}
	maxV, err := data.Max()
	if err != nil {
		return Summary{}, errors.Wrap(err, "tabprep: Dataset.Describe: max")
	}

	return Summary{
		Count:   len(observed),
		Missing: col.MissingCount(),
		Mean:    mean,
		Median:  median,
		StdDev:  stddev,
		Min:     minV,
		Max:     maxV,
	}, nil
}
