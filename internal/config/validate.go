package config

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalid is returned by Check when a job has error-severity issues.
var ErrInvalid = errors.New("invalid job configuration")

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Job.
//
// Path is a dotted path into the config (e.g. "output.dialect").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var (
	knownParsers  = map[string]struct{}{"csv": {}, "xlsx": {}}
	knownDialects = map[string]struct{}{"postgres": {}, "sqlite": {}, "mysql": {}}
	knownStorage  = map[string]struct{}{"postgres": {}, "sqlite": {}, "mysql": {}}
	knownEncoding = map[string]struct{}{
		"": {}, "utf-8": {}, "utf8": {}, "utf-16": {}, "utf16": {},
		"windows-1252": {}, "cp1252": {}, "latin1": {}, "iso-8859-1": {},
	}
)

// Validate performs static validation of a defaulted Job. It does not mutate
// the job. requireStorage adds the checks needed by the apply command.
func Validate(j Job, requireStorage bool) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, msg string) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: msg})
	}

	if strings.TrimSpace(j.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels metrics and log lines")
	}
	if strings.TrimSpace(j.Source.Path) == "" {
		add(SeverityError, "source.path", "source path must not be empty")
	}

	if _, ok := knownParsers[j.Parser.Kind]; !ok {
		add(SeverityError, "parser.kind", fmt.Sprintf("unknown parser kind %q (want csv or xlsx)", j.Parser.Kind))
	}
	if j.Parser.Kind == "csv" {
		enc := strings.ToLower(j.Parser.Options.String("encoding", ""))
		if _, ok := knownEncoding[enc]; !ok {
			add(SeverityError, "parser.options.encoding", fmt.Sprintf("unsupported encoding %q", enc))
		}
		if c := j.Parser.Options.String("comma", ","); len([]rune(c)) != 1 {
			add(SeverityError, "parser.options.comma", "comma must be exactly one character")
		}
	}
	if j.Parser.Kind == "xlsx" && j.Parser.Options.String("encoding", "") != "" {
		add(SeverityWarning, "parser.options.encoding", "encoding is ignored for xlsx sources")
	}

	if strings.TrimSpace(j.Output.Path) == "" {
		add(SeverityError, "output.path", "output path must not be empty")
	}
	if j.Output.Path != "" && j.Output.Path == j.Source.Path {
		add(SeverityError, "output.path", "output path must differ from source path")
	}
	if strings.TrimSpace(j.Output.Table) == "" {
		add(SeverityError, "output.table", "table must not be empty")
	}
	if strings.TrimSpace(j.Output.ConflictColumn) == "" {
		add(SeverityError, "output.conflict_column", "conflict column must not be empty")
	}
	if _, ok := knownDialects[j.Output.Dialect]; !ok {
		add(SeverityError, "output.dialect", fmt.Sprintf("unknown dialect %q (want postgres, sqlite or mysql)", j.Output.Dialect))
	}
	if strings.Contains(j.Output.Table, ".") &&
		(j.Output.Dialect == "sqlite" || (requireStorage && j.Storage.Kind == "sqlite")) {
		add(SeverityWarning, "output.table", fmt.Sprintf("sqlite reads the qualifier of %q as an attached database name", j.Output.Table))
	}
	if strings.Contains(j.Output.Comment, "\n") {
		add(SeverityError, "output.comment", "comment must be a single line")
	}

	if strings.Contains(j.Mapping.SKUPrefix, "'") || strings.Contains(j.Mapping.EANPlaceholder, "'") {
		add(SeverityWarning, "mapping", "prefixes containing quotes are escaped in the output")
	}
	if !j.Mapping.ForceActiveEnabled() {
		add(SeverityWarning, "mapping.force_active", "is_active will be read from the \"Activo\" column")
	}

	if j.Report.Path != "" && j.Report.Path == j.Output.Path {
		add(SeverityError, "report.path", "report path must differ from output path")
	}

	if requireStorage {
		if _, ok := knownStorage[j.Storage.Kind]; !ok {
			add(SeverityError, "storage.kind", fmt.Sprintf("unknown storage kind %q", j.Storage.Kind))
		}
		if strings.TrimSpace(j.Storage.DSN) == "" {
			add(SeverityError, "storage.dsn", "storage dsn must not be empty")
		}
		if j.Storage.Kind == "mysql" && j.Output.Dialect != "mysql" {
			add(SeverityWarning, "output.dialect", "mysql storage renders the statement in the mysql dialect")
		}
		if j.Storage.Kind != "mysql" && j.Output.Dialect == "mysql" {
			add(SeverityError, "output.dialect", fmt.Sprintf("INSERT IGNORE is not valid for %s storage", j.Storage.Kind))
		}
	}

	return issues
}

// Check returns ErrInvalid wrapped with the first error-severity issue, or
// nil when the job has none.
func Check(issues []Issue) error {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return errors.Wrap(ErrInvalid, iss.Error())
		}
	}
	return nil
}
