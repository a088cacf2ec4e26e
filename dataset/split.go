package dataset

import (
	"math/rand"

	"github.com/gotabular/tabprep/pkg/errors"
)

// TrainTestSplit shuffles the rows with the given seed and splits them into
// a train and a test dataset. testFraction must lie in (0, 1); the test set
// receives floor(n * testFraction) rows.
//
// The seed is an explicit parameter so repeated runs with the same inputs
// produce identical splits.
func TrainTestSplit(ds *Dataset, testFraction float64, seed int64) (train, test *Dataset, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "testFraction must be in (0, 1)")
	}
	n := ds.NumRows()
	if n < 2 {
		return nil, nil, errors.NewModelError("TrainTestSplit", "too few rows to split", errors.ErrEmptyData)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFraction)
	if nTest < 1 {
		nTest = 1
	}

	test = ds.Subset(perm[:nTest])
	train = ds.Subset(perm[nTest:])
	return train, test, nil
}
