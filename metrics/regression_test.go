package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{610, 702, 455, 812, 598}),
			yPred:     mat.NewVecDense(5, []float64{610, 702, 455, 812, 598}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("MSE() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
				}
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() unexpected error: %v", err)
	}
	if math.Abs(got-0.5) > 1e-10 {
		t.Errorf("RMSE() = %v, want 0.5", got)
	}
}

func TestMAE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{name: "perfect prediction", yTrue: []float64{1, 2, 3}, yPred: []float64{1, 2, 3}, want: 0},
		{name: "mixed signs", yTrue: []float64{10, 20, 30}, yPred: []float64{12, 18, 33}, want: 7.0 / 3.0},
		{name: "dimension mismatch", yTrue: []float64{1, 2}, yPred: []float64{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(mat.NewVecDense(len(tt.yTrue), tt.yTrue), mat.NewVecDense(len(tt.yPred), tt.yPred))

			if (err != nil) != tt.wantErr {
				t.Errorf("MAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MAE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxAbsError(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{600, 650, 700, 750})
	yPred := mat.NewVecDense(4, []float64{600.5, 648, 700, 750.25})

	got, at, err := MaxAbsError(yTrue, yPred)
	if err != nil {
		t.Fatalf("MaxAbsError() unexpected error: %v", err)
	}
	if got != 2 || at != 1 {
		t.Errorf("MaxAbsError() = (%v, %d), want (2, 1)", got, at)
	}

	yPred.SetVec(2, math.NaN())
	got, at, err = MaxAbsError(yTrue, yPred)
	if err != nil {
		t.Fatalf("MaxAbsError() unexpected error: %v", err)
	}
	if !math.IsNaN(got) || at != 2 {
		t.Errorf("MaxAbsError() with NaN = (%v, %d), want (NaN, 2)", got, at)
	}
}

func TestMetricsErrorTypes(t *testing.T) {
	_, err := MSE(&mat.VecDense{}, &mat.VecDense{})
	var valueErr *errors.ValueError
	if !errors.As(err, &valueErr) {
		t.Errorf("MSE() on empty input: got %T, want *ValueError", err)
	}

	_, _, err = MaxAbsError(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("MaxAbsError() on mismatch: got %T, want *DimensionError", err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("DimensionError = %+v", dimErr)
	}
}
