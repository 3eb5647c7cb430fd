package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRODUCTSEED_"

// Overrides are environment-provided values that take precedence over the
// job file but not over explicit CLI flags.
type Overrides struct {
	Input   string `env:"INPUT"`
	Output  string `env:"OUTPUT"`
	Dialect string `env:"DIALECT"`
	Report  string `env:"REPORT"`
	Storage string `env:"STORAGE"`
	DSN     string `env:"DSN"`
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; existing variables are not overwritten.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// ReadOverrides parses PRODUCTSEED_* variables. environ replaces the process
// environment when non-nil (tests).
func ReadOverrides(environ map[string]string) (Overrides, error) {
	var o Overrides
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, errors.Wrap(err, "parse environment")
	}
	return o, nil
}

// Apply copies every non-empty override into j.
func (o Overrides) Apply(j Job) Job {
	if o.Input != "" {
		j.Source.Path = o.Input
	}
	if o.Output != "" {
		j.Output.Path = o.Output
	}
	if o.Dialect != "" {
		j.Output.Dialect = o.Dialect
	}
	if o.Report != "" {
		j.Report.Path = o.Report
	}
	if o.Storage != "" {
		j.Storage.Kind = o.Storage
	}
	if o.DSN != "" {
		j.Storage.DSN = o.DSN
	}
	return j
}
