package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// vectorFlags binds one flag per feature slot plus a --features shorthand.
type vectorFlags struct {
	streak, delay, utility, linkedin float64
	features                         string
}

func (v *vectorFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&v.streak, "streak", 0, "on-time payment streak in months")
	f.Float64Var(&v.delay, "delay", 0, "average payment delay in days")
	f.Float64Var(&v.utility, "utility", 0, "utility payment consistency (0-1)")
	f.Float64Var(&v.linkedin, "linkedin", 0, "1 if a verified LinkedIn profile is present")
	f.StringVar(&v.features, "features", "", "comma-separated vector in slot order streak,delay,utility,linkedin")
}

func (v *vectorFlags) vector(cmd *cobra.Command) ([]float64, error) {
	if cmd.Flags().Changed("features") {
		return parseVector(v.features)
	}
	return model.NewFeatureVector(v.streak, v.delay, v.utility, v.linkedin), nil
}

// parseVector reads a comma-separated list of numbers. The length is checked
// by the scorer, not here.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		out[i] = x
	}
	return out, nil
}
