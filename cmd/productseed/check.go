package main

import (
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"productseed/internal/datasource/file"
	"productseed/internal/sqlgen"
)

// ErrDrift means the committed seed file differs from a fresh generation.
var ErrDrift = errors.New("seed file is out of date")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Regenerate in memory and compare with the existing output",
		Long: `check renders the statement without writing it and compares its xxh3
checksum with the current output file. It exits 1 when they differ.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := a.resolveJob()
			if err != nil {
				return err
			}
			if err := a.checkJob(j, false); err != nil {
				return err
			}
			flush := a.setupMetrics(j.Job)
			defer flush()

			ctx := cmd.Context()
			p := newPipeline(j, a.log)
			p.readOnly = true
			out, err := p.generate(ctx, j.Output.Dialect)
			if err != nil {
				return err
			}
			existing, err := file.NewLocal(j.Output.Path).ReadAll(ctx)
			if err != nil {
				return err
			}

			want := sqlgen.FormatChecksum(out.checksum)
			got := sqlgen.FormatChecksum(sqlgen.Checksum(existing))
			log := a.log.WithFields(logrus.Fields{"path": j.Output.Path, "want": want, "got": got})
			if want != got {
				log.Error("checksum mismatch")
				return errors.Wrapf(ErrDrift, "%s: regenerate with productseed generate", j.Output.Path)
			}
			log.Info("seed file is up to date")
			return nil
		},
	}
}
