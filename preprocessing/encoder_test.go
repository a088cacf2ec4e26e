package preprocessing

import (
	"testing"

	"github.com/gotabular/tabprep/dataset"
	"github.com/gotabular/tabprep/pkg/errors"
)

func strPtr(s string) *string { return &s }

func sexDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewCategorySeries("Sex", []*string{
			strPtr("male"), strPtr("female"), strPtr("female"), nil, strPtr("male"),
		}),
		dataset.NewNumericSeries("Survived", []float64{0, 1, 1, 0, 0}),
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return ds
}

func TestOneHotEncoder_Encode(t *testing.T) {
	ds := sexDataset(t)

	enc := NewOneHotEncoder("Sex")
	encoded, names, err := enc.Encode(ds)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Names follow first-occurrence order of the values.
	want := []string{"Sex_male", "Sex_female"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	male, err := encoded.Column("Sex_male")
	if err != nil {
		t.Fatalf("Sex_male missing from output: %v", err)
	}
	female, _ := encoded.Column("Sex_female")

	wantMale := []float64{1, 0, 0, 0, 1}
	wantFemale := []float64{0, 1, 1, 0, 0}
	for i := 0; i < 5; i++ {
		if v, _ := male.Float(i); v != wantMale[i] {
			t.Errorf("Sex_male[%d] = %v, want %v", i, v, wantMale[i])
		}
		if v, _ := female.Float(i); v != wantFemale[i] {
			t.Errorf("Sex_female[%d] = %v, want %v", i, v, wantFemale[i])
		}
	}
}

// Indicator values of a row sum to 1 when the source value is observed and
// to 0 when it is missing.
func TestOneHotEncoder_Coverage(t *testing.T) {
	ds := sexDataset(t)
	sex, _ := ds.Column("Sex")

	encoded, names, err := NewOneHotEncoder("Sex").Encode(ds)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for i := 0; i < encoded.NumRows(); i++ {
		sum := 0.0
		for _, name := range names {
			col, _ := encoded.Column(name)
			v, _ := col.Float(i)
			sum += v
		}
		want := 1.0
		if sex.IsMissing(i) {
			want = 0.0
		}
		if sum != want {
			t.Errorf("row %d indicator sum = %v, want %v", i, sum, want)
		}
	}
}

func TestOneHotEncoder_Idempotent(t *testing.T) {
	ds := sexDataset(t)

	once, names1, err := NewOneHotEncoder("Sex").Encode(ds)
	if err != nil {
		t.Fatalf("first Encode failed: %v", err)
	}
	twice, names2, err := NewOneHotEncoder("Sex").Encode(once)
	if err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}

	if len(names1) != len(names2) {
		t.Fatalf("names changed across passes: %v vs %v", names1, names2)
	}
	if twice.NumColumns() != once.NumColumns() {
		t.Fatalf("column count changed across passes: %d vs %d", once.NumColumns(), twice.NumColumns())
	}
	for _, name := range names1 {
		a, _ := once.Column(name)
		b, _ := twice.Column(name)
		for i := 0; i < once.NumRows(); i++ {
			va, _ := a.Float(i)
			vb, _ := b.Float(i)
			if va != vb {
				t.Errorf("%s[%d] changed across passes: %v vs %v", name, i, va, vb)
			}
		}
	}
}

func TestOneHotEncoder_InputUnmodified(t *testing.T) {
	ds := sexDataset(t)
	before := ds.NumColumns()

	if _, _, err := NewOneHotEncoder("Sex").Encode(ds); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if ds.NumColumns() != before {
		t.Errorf("input dataset gained columns: %d -> %d", before, ds.NumColumns())
	}
}

func TestOneHotEncoder_NumericCategories(t *testing.T) {
	ds, _ := dataset.New(dataset.NewNumericSeries("Pclass", []float64{3, 1, 2, 3}))

	_, names, err := NewOneHotEncoder("Pclass").Encode(ds)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []string{"Pclass_3", "Pclass_1", "Pclass_2"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestOneHotEncoder_ColumnNotFound(t *testing.T) {
	ds := sexDataset(t)

	_, _, err := NewOneHotEncoder("Cabin").Encode(ds)
	if err == nil {
		t.Fatal("expected error for absent column")
	}
	if !errors.IsColumnNotFound(err) {
		t.Errorf("expected ColumnNotFoundError, got %v", err)
	}
}
