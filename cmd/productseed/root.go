package main

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"productseed/internal/config"
)

// app carries the global flags and per-run state shared by every command.
type app struct {
	verbose bool
	envFile string

	configPath string
	input      string
	output     string
	dialect    string
	report     string

	metricsBackend string
	pushgatewayURL string
	statsdAddr     string

	log *logrus.Entry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "productseed",
		Short: "Generate the products seed INSERT from a catalog export",
		Long: `productseed reads a catalog export (CSV or XLSX) and writes one
INSERT ... ON CONFLICT (sku) DO NOTHING statement seeding the products table.
With no flags it reads supabase/seeds/productos.csv and writes
supabase/seeds/products.sql.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = newLogger(cmd.ErrOrStderr(), a.verbose)
			return config.LoadDotEnv(a.envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logs")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading PRODUCTSEED_* variables")
	pf.StringVar(&a.configPath, "config", "", "job config JSON path (optional)")
	pf.StringVar(&a.input, "input", "", "catalog export path")
	pf.StringVar(&a.output, "output", "", "SQL output path")
	pf.StringVar(&a.dialect, "dialect", "", "SQL dialect: postgres, sqlite or mysql")
	pf.StringVar(&a.report, "report", "", "validation report CSV path (optional)")
	pf.StringVar(&a.metricsBackend, "metrics-backend", "none", "metrics backend: none, pushgateway or datadog")
	pf.StringVar(&a.pushgatewayURL, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL")
	pf.StringVar(&a.statsdAddr, "statsd-addr", "127.0.0.1:8125", "DogStatsD address")

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newApplyCmd(a))
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the seed statement (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("run_id", uuid.NewString())
}

// resolveJob layers the job file, PRODUCTSEED_* variables and flags, in
// increasing precedence, then fills defaults.
func (a *app) resolveJob() (config.Job, error) {
	var j config.Job
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return config.Job{}, err
		}
		j = loaded
	}

	env, err := config.ReadOverrides(nil)
	if err != nil {
		return config.Job{}, err
	}
	j = env.Apply(j)
	j = config.Overrides{
		Input:   a.input,
		Output:  a.output,
		Dialect: a.dialect,
		Report:  a.report,
	}.Apply(j)

	return config.WithDefaults(j), nil
}

// checkJob logs every issue and fails on the first error.
func (a *app) checkJob(j config.Job, requireStorage bool) error {
	issues := config.Validate(j, requireStorage)
	for _, iss := range issues {
		e := a.log.WithField("path", iss.Path)
		if iss.Severity == config.SeverityError {
			e.Error(iss.Message)
			continue
		}
		e.Warn(iss.Message)
	}
	return config.Check(issues)
}

func (a *app) generate(cmd *cobra.Command) error {
	j, err := a.resolveJob()
	if err != nil {
		return err
	}
	if err := a.checkJob(j, false); err != nil {
		return err
	}
	flush := a.setupMetrics(j.Job)
	defer flush()

	p := newPipeline(j, a.log)
	out, err := p.generate(cmd.Context(), j.Output.Dialect)
	if err != nil {
		return err
	}
	return p.write(cmd.Context(), out)
}
