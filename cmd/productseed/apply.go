package main

import (
	"github.com/spf13/cobra"

	"productseed/internal/config"
)

func newApplyCmd(a *app) *cobra.Command {
	var storageKind, dsn string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Generate the seed, write it, and execute it against a database",
		Long: `apply runs generate and then executes the statement once against the
configured storage. The target table must already exist. mysql storage always
receives the INSERT IGNORE form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := a.resolveJob()
			if err != nil {
				return err
			}
			j = config.ForApply(config.Overrides{Storage: storageKind, DSN: dsn}.Apply(j))
			if err := a.checkJob(j, true); err != nil {
				return err
			}
			flush := a.setupMetrics(j.Job)
			defer flush()

			ctx := cmd.Context()
			p := newPipeline(j, a.log)
			out, err := p.generate(ctx, j.ApplyDialect())
			if err != nil {
				return err
			}
			if err := p.write(ctx, out); err != nil {
				return err
			}
			if dryRun {
				a.log.Info("dry run; statement not executed")
				return nil
			}
			return p.apply(ctx, out)
		},
	}
	cmd.Flags().StringVar(&storageKind, "storage", "", "storage kind: postgres, sqlite or mysql (default: the output dialect)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "storage DSN (or PRODUCTSEED_DSN)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "write the statement but do not execute it")
	return cmd
}
