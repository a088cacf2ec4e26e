// Package tabprep provides tabular preprocessing and missing-data tooling
// for Go, covering the classic workflow steps that precede model training:
// one-hot encoding, missingness auditing, group-mean imputation, and
// statistical tests of the missingness mechanism.
//
// # Packages
//
//   - dataset: an in-memory column-oriented table with missing markers, CSV
//     loading, deterministic train/test splitting, and a gonum matrix bridge
//   - preprocessing: one-hot encoding of categorical columns
//   - impute: group-mean imputation matrices built on a reference dataset
//     and applied to any compatible dataset
//   - missing: missingness audits, pairwise Welch t-tests, and Little's
//     MCAR chi-square test
//   - metrics: evaluation helpers for model collaborators
//
// Model training itself stays behind the capability interfaces in
// core/model; any classifier exposing Fit/Predict (and optionally
// feature importances) can consume the matrices produced here.
//
// # Quick start
//
//	ds, err := dataset.ReadCSVFile("train.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(missing.Audit(ds))
//
//	enc := preprocessing.NewOneHotEncoder("Sex")
//	ds, sexCols, err := enc.Encode(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	imp := impute.NewGroupMeanImputer("Age", "Pclass", "Sex")
//	ds, err = imp.FitTransform(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	X, err := ds.Matrix(append(sexCols, "Pclass", "Age", "Fare")...)
package tabprep
