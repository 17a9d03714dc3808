package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/sensitivity"
	"github.com/YuminosukeSato/tenantscore/scoring"
)

// sweep --model m.json [--model other.json] --feature delay --from -5 --to 30 --out delay.png
func sweepCmd(a *app) *cobra.Command {
	var (
		modelPaths []string
		feature    string
		from, to   float64
		steps      int
		outPath    string
		vec        vectorFlags
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Plot the score against one feature, holding the others fixed",
		Args:  cobra.NoArgs,
		RunE: a.run("sweep", func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFeature(feature)
			if err != nil {
				return err
			}
			base, err := vec.vector(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("steps") {
				steps = a.cfg.Sweep.Steps
			}

			curves := make([]sensitivity.Curve, 0, len(modelPaths))
			for _, path := range modelPaths {
				doc, err := model.Load(path)
				if err != nil {
					return err
				}
				scorer, err := scoring.NewScorer(doc)
				if err != nil {
					return err
				}
				c, err := sensitivity.Sweep(scorer, base, f, from, to, steps)
				if err != nil {
					return err
				}
				if len(modelPaths) > 1 {
					c.Label = filepath.Base(path)
				}
				curves = append(curves, c)
			}

			width := vg.Length(a.cfg.Sweep.Width) * vg.Inch
			height := vg.Length(a.cfg.Sweep.Height) * vg.Inch
			if err := sensitivity.Render(outPath, width, height, curves...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d points per curve)\n", outPath, steps)
			return nil
		}),
	}

	cmd.Flags().StringArrayVarP(&modelPaths, "model", "m", nil, "model document; repeat to compare models")
	cmd.Flags().StringVar(&feature, "feature", "", "feature to vary: streak, delay, utility or linkedin")
	cmd.Flags().Float64Var(&from, "from", 0, "first feature value")
	cmd.Flags().Float64Var(&to, "to", 0, "last feature value")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of points (default from config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output image (.png or .svg)")
	vec.register(cmd)
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("feature")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
