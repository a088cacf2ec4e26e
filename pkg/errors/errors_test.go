package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewColumnNotFoundError(t *testing.T) {
	err := NewColumnNotFoundError("OneHotEncoder.Encode", "Cabin")

	want := "tabprep: OneHotEncoder.Encode: column 'Cabin' not found in dataset"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	if !IsColumnNotFound(err) {
		t.Error("IsColumnNotFound should report true")
	}

	// Stack trace should point back at this test file.
	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}
}

func TestNewColumnNotFoundError_WrappedStillMatches(t *testing.T) {
	err := Wrap(NewColumnNotFoundError("Audit", "Age"), "auditing dataset")
	if !IsColumnNotFound(err) {
		t.Error("wrapped ColumnNotFoundError should still match")
	}
}

func TestNewZeroVarianceError(t *testing.T) {
	err := NewZeroVarianceError("MechanismTester.JointTest", "Fare")

	want := "tabprep: MechanismTester.JointTest: column 'Fare' has zero variance over observed rows"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	if !IsZeroVariance(err) {
		t.Error("IsZeroVariance should report true")
	}
	if IsColumnNotFound(err) {
		t.Error("ZeroVarianceError must not match ColumnNotFoundError")
	}
}

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "tabprep: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Transform",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "tabprep: Transform: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Accuracy", 10, 8, 0)

	want := "tabprep: Accuracy: dimension mismatch on axis 0 (rows). Expected 10, got 8"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GroupMeanImputer", "Transform")

	want := "tabprep: GroupMeanImputer: this estimator is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewInsufficientSampleWarning("pairwise t-test", "Age", 1)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "'Age'") {
		t.Errorf("unexpected warning message: %v", captured)
	}
}
