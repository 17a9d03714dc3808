package commands

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/metrics"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
	"github.com/YuminosukeSato/tenantscore/scoring"
	"github.com/YuminosukeSato/tenantscore/sklearn/export"
)

// export --dump in.json [--out model.json]: write the portable document.
func exportCmd(a *app) *cobra.Command {
	var dumpPath, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert a trainer dump into a model document",
		Args:  cobra.NoArgs,
		RunE: a.run("export", func(cmd *cobra.Command, args []string) error {
			d, err := export.LoadDump(dumpPath)
			if err != nil {
				return err
			}
			doc, err := d.Export(a.exporter())
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				if err := model.Write(doc, cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				if err := model.Save(doc, outPath); err != nil {
					return err
				}
				a.logger.Info("Wrote model document", log.ModelPathKey, outPath, log.ModelKindKey, string(doc.Kind()))
			}

			if d.Reference != nil {
				a.reportParity(doc, d.Reference)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&dumpPath, "dump", "", "trainer dump (JSON)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output document (default stdout)")
	_ = cmd.MarkFlagRequired("dump")
	return cmd
}

// reportParity logs how closely the fresh document reproduces the trainer.
// Mismatches are warnings here; verify turns them into a failure.
func (a *app) reportParity(doc model.Document, ref *export.Reference) {
	X, want, err := ref.Matrices(model.NumFeatures)
	if err != nil {
		a.logger.Warn("Reference predictions unusable", "error", err)
		return
	}
	scorer, err := scoring.NewScorer(doc, scoring.WithParallelThreshold(a.cfg.Scoring.ParallelThreshold))
	if err != nil {
		a.logger.Warn("Reference predictions unusable", "error", err)
		return
	}
	report, err := metrics.Parity(scorer, X, want, a.cfg.Verify.Tolerance)
	if err != nil {
		a.logger.Warn("Reference predictions unusable", "error", err)
		return
	}

	fields := []any{
		log.SamplesKey, report.Samples,
		log.MaxAbsErrorKey, report.MaxAbsError,
		log.MSEKey, report.MSE,
	}
	if report.Within {
		a.logger.Info("Document matches trainer predictions", fields...)
	} else {
		a.logger.Warn("Document diverges from trainer predictions", fields...)
	}
}
