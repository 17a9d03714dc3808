package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{612.4, 612},
		{612.5, 613},
		{-12, 300},
		{299.5, 300},
		{900.4, 900},
		{1200, 900},
		{math.Inf(1), 900},
		{math.Inf(-1), 300},
		{math.NaN(), 300},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CreditScore(tt.raw), "raw %v", tt.raw)
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskBand
	}{
		{900, LowRisk},
		{750, LowRisk},
		{749, MediumRisk},
		{600, MediumRisk},
		{599, HighRisk},
		{300, HighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.score), "score %v", tt.score)
	}
}

func TestScaleConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultScale.Validate())

	bad := []ScaleConfig{
		{Min: 900, Max: 300, LowRiskFrom: 750, HighRiskBelow: 600},
		{Min: 300, Max: 900, LowRiskFrom: 600, HighRiskBelow: 750},
		{Min: math.NaN(), Max: 900, LowRiskFrom: 750, HighRiskBelow: 600},
	}
	for _, c := range bad {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestScaleConfig_Custom(t *testing.T) {
	c := ScaleConfig{Min: 0, Max: 100, LowRiskFrom: 80, HighRiskBelow: 40}
	assert.Equal(t, 100.0, c.CreditScore(612))
	assert.Equal(t, LowRisk, c.Band(c.CreditScore(612)))
	assert.Equal(t, HighRisk, c.Band(c.CreditScore(-3)))
}
