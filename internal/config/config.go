// Package config defines the JSON-serializable job model for productseed.
//
// A Job describes one seed generation run: where the catalog export lives,
// how to parse it, where the SQL file goes, and how source labels map onto
// destination columns. Every field has a default equal to the historical
// fixed constants, so an empty Job (or no config file at all) reproduces the
// original behavior.
//
// Example (trimmed):
//
//	{
//	  "job":    "products_seed",
//	  "source": { "path": "supabase/seeds/productos.csv" },
//	  "parser": { "kind": "csv", "options": { "comma": "," } },
//	  "output": { "path": "supabase/seeds/products.sql", "table": "public.products" },
//	  "mapping":{ "sku_prefix": "LEGACY-", "force_active": true }
//	}
package config

import (
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
)

// Job is the top-level object decoded from a job file.
type Job struct {
	// Job names the run; it labels metrics and log lines.
	Job string `json:"job"`

	Source  Source  `json:"source"`
	Parser  Parser  `json:"parser"`
	Output  Output  `json:"output"`
	Mapping Mapping `json:"mapping"`
	Report  Report  `json:"report"`
	Storage Storage `json:"storage"`
}

// Source identifies the catalog export on the local filesystem.
type Source struct {
	Path string `json:"path"`
}

// Parser selects how the export is turned into rows.
type Parser struct {
	// Kind is "csv" or "xlsx". Empty means infer from the source extension.
	Kind string `json:"kind"`

	// Options is interpreted by the parser implementation. For CSV:
	//   comma (string), lazy_quotes (bool), trim_space (bool), encoding (string)
	// For XLSX:
	//   sheet (string)
	Options Options `json:"options"`
}

// Output describes the generated statement.
type Output struct {
	Path           string `json:"path"`
	Table          string `json:"table"`
	ConflictColumn string `json:"conflict_column"`
	// Dialect is "postgres" (default), "sqlite" or "mysql".
	Dialect string `json:"dialect"`
	Comment string `json:"comment"`
}

// Mapping holds the knobs of the row tuple builder.
type Mapping struct {
	SKUPrefix      string `json:"sku_prefix"`
	EANPlaceholder string `json:"ean_placeholder"`

	// ForceActive pins is_active to true regardless of the source. A nil
	// value means "use the default" (true).
	ForceActive *bool `json:"force_active"`
}

// Report configures the optional validation report.
type Report struct {
	// Path of the CSV report; empty disables it.
	Path string `json:"path"`
}

// Storage configures the apply command.
type Storage struct {
	// Kind selects the backend: "postgres", "sqlite" or "mysql".
	Kind string `json:"kind"`
	DSN  string `json:"dsn"`
}

// Load decodes a job file from path. Missing fields are not defaulted here;
// call WithDefaults on the result.
func Load(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	var j Job
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return Job{}, errors.Wrapf(err, "decode config %s", path)
	}
	return j, nil
}

// Options is a small helper to fetch typed values from arbitrary JSON maps.
// It performs only minimal type coercion and returns provided defaults when a
// key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON makes a missing or null "options" object decode to a
// non-nil, empty Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
