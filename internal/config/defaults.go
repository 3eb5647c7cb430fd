package config

import (
	"path/filepath"
	"strings"
)

// Historical constants of the seed script. They are the defaults for every
// Job field left empty.
const (
	DefaultJob            = "products_seed"
	DefaultSourcePath     = "supabase/seeds/productos.csv"
	DefaultOutputPath     = "supabase/seeds/products.sql"
	DefaultTable          = "public.products"
	DefaultConflictColumn = "sku"
	DefaultDialect        = "postgres"
	DefaultComment        = "Seed data for products generated from CSV"
	DefaultSKUPrefix      = "LEGACY-"
	DefaultEANPlaceholder = "NO-EAN-"
)

// Default returns a Job populated with the historical constants.
func Default() Job {
	return WithDefaults(Job{})
}

// WithDefaults fills every empty field of j with its default. The parser kind
// is inferred from the source extension when not set.
func WithDefaults(j Job) Job {
	if j.Job == "" {
		j.Job = DefaultJob
	}
	if j.Source.Path == "" {
		j.Source.Path = DefaultSourcePath
	}
	if j.Parser.Options == nil {
		j.Parser.Options = Options{}
	}
	if j.Parser.Kind == "" {
		j.Parser.Kind = KindForPath(j.Source.Path)
	}
	if j.Output.Path == "" {
		j.Output.Path = DefaultOutputPath
	}
	if j.Output.Table == "" {
		j.Output.Table = DefaultTable
	}
	if j.Output.ConflictColumn == "" {
		j.Output.ConflictColumn = DefaultConflictColumn
	}
	if j.Output.Dialect == "" {
		j.Output.Dialect = DefaultDialect
	}
	if j.Output.Comment == "" {
		j.Output.Comment = DefaultComment
	}
	if j.Mapping.SKUPrefix == "" {
		j.Mapping.SKUPrefix = DefaultSKUPrefix
	}
	if j.Mapping.EANPlaceholder == "" {
		j.Mapping.EANPlaceholder = DefaultEANPlaceholder
	}
	if j.Mapping.ForceActive == nil {
		on := true
		j.Mapping.ForceActive = &on
	}
	return j
}

// ForceActiveEnabled reports whether is_active is pinned to true.
func (m Mapping) ForceActiveEnabled() bool {
	return m.ForceActive == nil || *m.ForceActive
}

// ForApply fills the storage kind of a defaulted job from its output
// dialect, so "apply --dsn ..." alone targets the database the statement was
// rendered for.
func ForApply(j Job) Job {
	if j.Storage.Kind == "" {
		j.Storage.Kind = j.Output.Dialect
	}
	return j
}

// ApplyDialect is the dialect the apply command renders in: mysql storage
// always gets INSERT IGNORE.
func (j Job) ApplyDialect() string {
	if j.Storage.Kind == "mysql" {
		return "mysql"
	}
	return j.Output.Dialect
}

// KindForPath infers the parser kind from a file extension.
func KindForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return "csv"
	}
}
