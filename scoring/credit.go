package scoring

import (
	"math"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// RiskBand is the coarse risk label shown next to a credit score.
type RiskBand string

const (
	LowRisk    RiskBand = "Low Risk"
	MediumRisk RiskBand = "Medium Risk"
	HighRisk   RiskBand = "High Risk"
)

// ScaleConfig maps raw model output onto the displayed credit scale.
type ScaleConfig struct {
	// Min and Max bound the displayed score.
	Min float64
	Max float64
	// Scores at or above LowRiskFrom are LowRisk, scores below HighRiskBelow
	// are HighRisk.
	LowRiskFrom   float64
	HighRiskBelow float64
}

// DefaultScale is the 300 to 900 scale used by the tenant dashboard.
var DefaultScale = ScaleConfig{Min: 300, Max: 900, LowRiskFrom: 750, HighRiskBelow: 600}

// Validate checks that the bounds are finite and ordered.
func (c ScaleConfig) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"min", c.Min}, {"max", c.Max}, {"low_risk_from", c.LowRiskFrom}, {"high_risk_below", c.HighRiskBelow},
	} {
		if !errors.IsFinite(v.value) {
			return errors.NewValidationError(v.name, "must be finite", v.value)
		}
	}
	if c.Min >= c.Max {
		return errors.NewValidationError("max", "must be greater than min", c.Max)
	}
	if c.HighRiskBelow > c.LowRiskFrom {
		return errors.NewValidationError("high_risk_below", "must not exceed low_risk_from", c.HighRiskBelow)
	}
	return nil
}

// CreditScore rounds raw half away from zero and clamps it to [Min, Max].
// NaN maps to Min.
func (c ScaleConfig) CreditScore(raw float64) float64 {
	if math.IsNaN(raw) {
		return c.Min
	}
	return math.Max(c.Min, math.Min(c.Max, math.Round(raw)))
}

// Band labels a credit score.
func (c ScaleConfig) Band(score float64) RiskBand {
	switch {
	case score >= c.LowRiskFrom:
		return LowRisk
	case score < c.HighRiskBelow:
		return HighRisk
	default:
		return MediumRisk
	}
}

// CreditScore applies DefaultScale.
func CreditScore(raw float64) float64 { return DefaultScale.CreditScore(raw) }

// Band applies DefaultScale.
func Band(score float64) RiskBand { return DefaultScale.Band(score) }
