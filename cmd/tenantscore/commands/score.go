package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
	"github.com/YuminosukeSato/tenantscore/scoring"
)

// score --model m.json [--streak ...|--features a,b,c,d] [--credit] [--explain]
func scoreCmd(a *app) *cobra.Command {
	var (
		modelPath string
		vec       vectorFlags
		credit    bool
		explain   bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one tenant",
		Args:  cobra.NoArgs,
		RunE: a.run("score", func(cmd *cobra.Command, args []string) error {
			x, err := vec.vector(cmd)
			if err != nil {
				return err
			}
			doc, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			scorer, err := scoring.NewScorer(doc)
			if err != nil {
				return err
			}
			raw, err := scorer.Score(x)
			if err != nil {
				return err
			}
			a.logger.Debug("Scored tenant", log.ModelKindKey, string(doc.Kind()), log.ScoreKey, raw)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "raw: %g\n", raw)
			if credit {
				sc := a.cfg.Scoring.Scale()
				s := sc.CreditScore(raw)
				a.logger.Debug("Mapped to credit scale", log.CreditScoreKey, s)
				fmt.Fprintf(out, "credit: %g (%s)\n", s, sc.Band(s))
			}
			if explain {
				b, err := scorer.Breakdown(x)
				if err != nil {
					return err
				}
				printBreakdown(cmd, b)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model document (JSON)")
	vec.register(cmd)
	cmd.Flags().BoolVar(&credit, "credit", false, "also print the clamped credit score and risk band")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the additive breakdown of the score")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func printBreakdown(cmd *cobra.Command, b scoring.Breakdown) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "base: %g\n", b.Base)
	for i, term := range b.Terms {
		if b.Kind == model.KindLinear {
			fmt.Fprintf(out, "  %-8s %g\n", model.Feature(i), term)
		} else {
			fmt.Fprintf(out, "  tree[%d] %g\n", i, term)
		}
	}
}
