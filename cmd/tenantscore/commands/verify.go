package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/metrics"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
	"github.com/YuminosukeSato/tenantscore/scoring"
	"github.com/YuminosukeSato/tenantscore/sklearn/export"
)

// verify --dump in.json [--model m.json]: compare document scores with the
// trainer's reference predictions. Without --model the dump is exported in
// memory first.
func verifyCmd(a *app) *cobra.Command {
	var (
		dumpPath  string
		modelPath string
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a model document against trainer reference predictions",
		Args:  cobra.NoArgs,
		RunE: a.run("verify", func(cmd *cobra.Command, args []string) error {
			d, err := export.LoadDump(dumpPath)
			if err != nil {
				return err
			}
			if d.Reference == nil {
				return errors.NewValidationError("reference", "dump carries no reference predictions", dumpPath)
			}

			var doc model.Document
			if modelPath != "" {
				doc, err = model.Load(modelPath)
			} else {
				doc, err = d.Export(a.exporter())
			}
			if err != nil {
				return err
			}

			X, want, err := d.Reference.Matrices(model.NumFeatures)
			if err != nil {
				return err
			}
			scorer, err := scoring.NewScorer(doc, scoring.WithParallelThreshold(a.cfg.Scoring.ParallelThreshold))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("tolerance") {
				tolerance = a.cfg.Verify.Tolerance
			}
			report, err := metrics.Parity(scorer, X, want, tolerance)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "samples:       %d\n", report.Samples)
			fmt.Fprintf(out, "mse:           %g\n", report.MSE)
			fmt.Fprintf(out, "mae:           %g\n", report.MAE)
			fmt.Fprintf(out, "max abs error: %g (row %d)\n", report.MaxAbsError, report.WorstRow)

			if !report.Within {
				return errors.Newf("max abs error %g exceeds tolerance %g", report.MaxAbsError, report.Tolerance)
			}
			a.logger.Info("Parity verified", log.ModelKindKey, string(doc.Kind()), log.SamplesKey, report.Samples, log.MaxAbsErrorKey, report.MaxAbsError)
			fmt.Fprintln(out, "ok")
			return nil
		}),
	}

	cmd.Flags().StringVar(&dumpPath, "dump", "", "trainer dump with reference predictions")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model document to check (default: export the dump)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "largest accepted absolute difference (default from config)")
	_ = cmd.MarkFlagRequired("dump")
	return cmd
}
