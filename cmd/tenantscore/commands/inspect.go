package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
)

// inspect <model.json>...: load documents concurrently and print their shape.
func inspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <model.json>...",
		Short: "Summarise model documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run("inspect", func(cmd *cobra.Command, args []string) error {
			summaries := make([]model.Summary, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					doc, err := model.Load(path)
					if err != nil {
						return errors.Wrapf(err, "loading %s", path)
					}
					summaries[i] = model.Summarize(doc)
					a.logger.Debug("Loaded model document", log.ModelPathKey, path, log.ModelKindKey, string(doc.Kind()))
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "PATH\tKIND\tTREES\tDEPTH\tLEAVES\tNODES\t%s\n", strings.ToUpper(strings.Join(model.FeatureNames(), "\t")))
			for i, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d", args[i], s.Kind, s.Trees, s.MaxDepth, s.Leaves, s.Nodes)
				for _, u := range s.FeatureUsage {
					fmt.Fprintf(w, "\t%d", u)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		}),
	}
	return cmd
}
