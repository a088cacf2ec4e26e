package missing

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/gotabular/tabprep/dataset"
	"github.com/gotabular/tabprep/pkg/errors"
	"github.com/gotabular/tabprep/pkg/log"
)

// DefaultThreshold is the significance level above which a p-value is read
// as "consistent with random missingness".
const DefaultThreshold = 0.05

// MCARResult is the outcome of one pairwise mechanism test.
type MCARResult struct {
	// Statistic is the Welch t statistic. Zero when SampleTooSmall.
	Statistic float64
	// PValue is the two-sided p-value. Zero when SampleTooSmall.
	PValue float64
	// IsMCAR reports whether the p-value exceeds the threshold, i.e. the
	// missingness looks independent of this column.
	IsMCAR bool
	// SampleTooSmall is set when either comparison group had fewer than
	// two usable values; the statistic and p-value are then meaningless
	// and must not be trusted.
	SampleTooSmall bool
}

// MechanismTester classifies the missingness mechanism of dataset columns.
//
// PairwiseTest checks, column by column, whether missingness in a target
// column is independent of another observed column. JointTest runs Little's
// MCAR test across all numeric columns at once.
type MechanismTester struct {
	// Dist is the statistical-distribution collaborator.
	Dist Distribution
	// Threshold is the significance level, DefaultThreshold if zero.
	Threshold float64
}

// NewMechanismTester creates a tester backed by gonum distributions.
func NewMechanismTester() *MechanismTester {
	return &MechanismTester{Dist: GonumDistribution{}, Threshold: DefaultThreshold}
}

func (mt *MechanismTester) threshold() float64 {
	if mt.Threshold == 0 {
		return DefaultThreshold
	}
	return mt.Threshold
}

// PairwiseTest tests, for every numeric column other than target, whether
// rows with a missing target differ in that column's mean from rows with an
// observed target (Welch's unequal-variance t-test).
//
// Values missing in the compared column are dropped within each group. When
// either group retains fewer than two values the result carries
// SampleTooSmall and the statistic and p-value are zero.
func (mt *MechanismTester) PairwiseTest(ds *dataset.Dataset, target string) (map[string]MCARResult, error) {
	targetCol, err := ds.Column(target)
	if err != nil {
		return nil, errors.NewColumnNotFoundError("MechanismTester.PairwiseTest", target)
	}

	results := make(map[string]MCARResult)
	for _, name := range ds.ColumnNames() {
		if name == target {
			continue
		}
		col, _ := ds.Column(name)
		if col.Kind() != dataset.Numeric {
			// A mean-difference test is undefined for labels.
			continue
		}

		var observed, missingGroup []float64
		for i := 0; i < ds.NumRows(); i++ {
			v, ok := col.Float(i)
			if !ok {
				continue
			}
			if targetCol.IsMissing(i) {
				missingGroup = append(missingGroup, v)
			} else {
				observed = append(observed, v)
			}
		}

		if len(observed) < 2 || len(missingGroup) < 2 {
			small := len(observed)
			if len(missingGroup) < small {
				small = len(missingGroup)
			}
			errors.Warn(errors.NewInsufficientSampleWarning("pairwise t-test", name, small))
			results[name] = MCARResult{SampleTooSmall: true}
			continue
		}

		t, p, err := mt.Dist.TwoSampleTTest(missingGroup, observed)
		if err != nil {
			return nil, errors.Wrapf(err, "tabprep: MechanismTester.PairwiseTest: column '%s'", name)
		}
		results[name] = MCARResult{
			Statistic: t,
			PValue:    p,
			IsMCAR:    p > mt.threshold(),
		}
		slog.Debug("pairwise mechanism test",
			log.OperationKey, "pairwise_test",
			log.ColumnKey, name,
			log.StatisticKey, t,
			log.PValueKey, p,
		)
	}
	return results, nil
}

// JointTest runs Little's MCAR test over the numeric columns of ds and
// returns the upper-tail p-value. A p-value above the threshold is
// consistent with data missing completely at random.
//
// Rows are grouped by their pattern of missing numeric columns. For each
// pattern group and each column observed in that pattern, the squared
// deviation of the group mean from the column's overall observed mean,
// scaled by group size over the column's overall variance, accumulates into
// a chi-square statistic; degrees of freedom accumulate as (observed columns
// in pattern - 1) per group.
//
// A participating column whose observed values have zero variance makes the
// statistic undefined and yields ZeroVarianceError rather than a silent
// NaN.
func (mt *MechanismTester) JointTest(ds *dataset.Dataset) (float64, error) {
	var cols []*dataset.Series
	for _, name := range ds.ColumnNames() {
		col, _ := ds.Column(name)
		if col.Kind() != dataset.Numeric {
			continue
		}
		if len(col.Floats()) == 0 {
			// Never observed; the column cannot appear in any pattern's
			// observed set.
			continue
		}
		cols = append(cols, col)
	}
	if len(cols) < 2 {
		return 0, errors.NewValueError("MechanismTester.JointTest", "need at least two numeric columns")
	}

	// Overall mean and variance per column over observed rows. Variance is
	// the population variance, matching the maximum-likelihood estimate the
	// test statistic assumes.
	means := make([]float64, len(cols))
	variances := make([]float64, len(cols))
	for j, col := range cols {
		obs := col.Floats()
		means[j] = stat.Mean(obs, nil)
		var ss float64
		for _, v := range obs {
			d := v - means[j]
			ss += d * d
		}
		variances[j] = ss / float64(len(obs))
		if variances[j] == 0 {
			return 0, errors.NewZeroVarianceError("MechanismTester.JointTest", col.Name())
		}
	}

	// Group rows by missingness pattern.
	type group struct {
		rows     []int
		observed []int // column indices observed in this pattern
	}
	patternOf := func(i int) string {
		key := make([]byte, len(cols))
		for j, col := range cols {
			if col.IsMissing(i) {
				key[j] = '1'
			} else {
				key[j] = '0'
			}
		}
		return string(key)
	}
	groups := make(map[string]*group)
	var order []string
	for i := 0; i < ds.NumRows(); i++ {
		key := patternOf(i)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			for j := range cols {
				if key[j] == '0' {
					g.observed = append(g.observed, j)
				}
			}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, i)
	}

	var statistic float64
	df := 0
	for _, key := range order {
		g := groups[key]
		if len(g.observed) == 0 {
			// Rows missing everywhere carry no information about the
			// observed means.
			continue
		}
		n := float64(len(g.rows))
		for _, j := range g.observed {
			var sum float64
			for _, i := range g.rows {
				v, _ := cols[j].Float(i)
				sum += v
			}
			groupMean := sum / n
			dev := groupMean - means[j]
			statistic += n * dev * dev / variances[j]
		}
		df += len(g.observed) - 1
	}

	if df <= 0 {
		return 0, errors.NewValueError("MechanismTester.JointTest", "degrees of freedom are not positive; too few distinct missingness patterns")
	}

	p := mt.Dist.ChiSquareUpperTail(statistic, float64(df))
	slog.Debug("joint MCAR test",
		log.OperationKey, "joint_test",
		log.StatisticKey, statistic,
		log.PValueKey, p,
		"df", df,
	)
	return p, nil
}
