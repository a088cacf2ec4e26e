package missing

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gotabular/tabprep/pkg/errors"
)

// Distribution is the statistical-distribution collaborator: upper-tail
// chi-square probabilities and a two-sample unequal-variance significance
// test. Any compliant numeric library may be substituted.
type Distribution interface {
	// ChiSquareUpperTail returns P(X > x) for X chi-square distributed
	// with df degrees of freedom.
	ChiSquareUpperTail(x, df float64) float64

	// TwoSampleTTest runs Welch's unequal-variance t-test between a and b
	// and returns the t statistic and two-sided p-value. Both samples need
	// at least two values.
	TwoSampleTTest(a, b []float64) (statistic, pValue float64, err error)
}

// GonumDistribution implements Distribution on gonum's stat/distuv.
type GonumDistribution struct{}

// ChiSquareUpperTail returns the chi-square survival function at x.
func (GonumDistribution) ChiSquareUpperTail(x, df float64) float64 {
	dist := distuv.ChiSquared{K: df}
	return dist.Survival(x)
}

// TwoSampleTTest runs Welch's t-test. The degrees of freedom follow the
// Welch-Satterthwaite equation and the p-value is taken from Student's t
// distribution.
func (GonumDistribution) TwoSampleTTest(a, b []float64) (float64, float64, error) {
	n1 := float64(len(a))
	n2 := float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 0, errors.NewValueError("TwoSampleTTest", "both samples need at least two values")
	}

	mean1 := stat.Mean(a, nil)
	mean2 := stat.Mean(b, nil)
	var1 := stat.Variance(a, nil)
	var2 := stat.Variance(b, nil)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return 0, 0, errors.NewValueError("TwoSampleTTest", "zero variance in both samples")
	}
	t := (mean1 - mean2) / se

	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * tDist.Survival(math.Abs(t))
	return t, p, nil
}
