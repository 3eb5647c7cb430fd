package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"productseed/internal/config"
)

func newValidateCmd(a *app) *cobra.Command {
	var forApply bool
	var storageKind, dsn string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the job configuration and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := a.resolveJob()
			if err != nil {
				return err
			}
			if forApply {
				j = config.ForApply(config.Overrides{Storage: storageKind, DSN: dsn}.Apply(j))
			}
			if err := a.checkJob(j, forApply); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"job":    j.Job,
				"source": j.Source.Path,
				"output": j.Output.Path,
			}).Info("configuration is valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&forApply, "apply", false, "also validate the storage section used by apply")
	cmd.Flags().StringVar(&storageKind, "storage", "", "storage kind: postgres, sqlite or mysql")
	cmd.Flags().StringVar(&dsn, "dsn", "", "storage DSN")
	return cmd
}
