package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/scoring"
)

// DefaultTolerance is the largest absolute difference accepted between a
// document's score and the trainer's own prediction.
const DefaultTolerance = 1e-6

// ParityReport compares document scores with trainer reference predictions.
type ParityReport struct {
	Samples     int     `json:"samples"`
	MSE         float64 `json:"mse"`
	MAE         float64 `json:"mae"`
	MaxAbsError float64 `json:"max_abs_error"`
	// WorstRow is the row with the largest absolute difference.
	WorstRow  int     `json:"worst_row"`
	Tolerance float64 `json:"tolerance"`
	Within    bool    `json:"within_tolerance"`
}

// Parity scores every row of X and compares the results with want.
func Parity(scorer *scoring.Scorer, X mat.Matrix, want *mat.VecDense, tolerance float64) (ParityReport, error) {
	switch {
	case scorer == nil:
		return ParityReport{}, errors.NewValueError("Parity", "nil scorer")
	case X == nil:
		return ParityReport{}, errors.NewValueError("Parity", "nil feature matrix")
	case want == nil:
		return ParityReport{}, errors.NewValueError("Parity", "nil reference predictions")
	}
	if !errors.IsFinite(tolerance) || tolerance < 0 {
		return ParityReport{}, errors.NewValidationError("tolerance", "must be finite and non-negative", tolerance)
	}
	rows, _ := X.Dims()
	if rows != want.Len() {
		return ParityReport{}, errors.NewDimensionError("Parity", rows, want.Len(), 0)
	}

	got, err := scorer.ScoreBatch(X)
	if err != nil {
		return ParityReport{}, errors.Wrap(err, "scoring reference features")
	}

	report := ParityReport{Samples: rows, Tolerance: tolerance}
	if report.MSE, err = MSE(want, got); err != nil {
		return ParityReport{}, err
	}
	if report.MAE, err = MAE(want, got); err != nil {
		return ParityReport{}, err
	}
	if report.MaxAbsError, report.WorstRow, err = MaxAbsError(want, got); err != nil {
		return ParityReport{}, err
	}
	report.Within = report.MaxAbsError <= tolerance
	return report, nil
}
