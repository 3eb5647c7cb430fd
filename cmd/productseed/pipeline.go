package main

import (
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"productseed/internal/config"
	"productseed/internal/datasource"
	"productseed/internal/datasource/file"
	"productseed/internal/metrics"
	"productseed/internal/parser"
	"productseed/internal/record"
	"productseed/internal/schema"
	"productseed/internal/skiplog"
	"productseed/internal/sqlgen"
	"productseed/internal/storage"
	"productseed/internal/transformer"
	"productseed/internal/transformer/builtin"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = storage.New

	openSourceFn = func(path string) datasource.Source {
		return file.NewLocal(path)
	}
)

// pipeline runs one job: read, transform, render, and optionally write and
// apply. It depends only on storage-agnostic interfaces and never imports
// database drivers directly.
type pipeline struct {
	job config.Job
	log *logrus.Entry

	// readOnly skips the report file; check sets it.
	readOnly bool
}

// rendered is a generated statement and what it was built from.
type rendered struct {
	sql      []byte
	checksum uint64
	result   transformer.Result
}

func newPipeline(j config.Job, log *logrus.Entry) *pipeline {
	return &pipeline{
		job: j,
		log: log.WithField("job", j.Job),
	}
}

// step times fn and records it under name.
func (p *pipeline) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	metrics.RecordStep(p.job.Job, name, err, d)
	p.log.WithFields(logrus.Fields{"step": name, "took": d.Truncate(time.Microsecond)}).Debug("step done")
	return err
}

// generate builds the statement in dialect without touching the output path.
// The validation report, when enabled and not readOnly, is written before
// rendering so an export with no accepted rows still gets one.
func (p *pipeline) generate(ctx context.Context, dialect string) (rendered, error) {
	d, err := sqlgen.ParseDialect(dialect)
	if err != nil {
		return rendered{}, err
	}

	var tbl *record.Table
	if err := p.step("read", func() error {
		tbl, err = p.read(ctx)
		return err
	}); err != nil {
		return rendered{}, err
	}

	b := transformer.NewProductBuilder(schema.Products, transformer.Options{
		SKUPrefix:      p.job.Mapping.SKUPrefix,
		EANPlaceholder: p.job.Mapping.EANPlaceholder,
		ForceActive:    p.job.Mapping.ForceActiveEnabled(),
	})
	var res transformer.Result
	if err := p.step("transform", func() error {
		res, err = b.Transform(ctx, tbl)
		return err
	}); err != nil {
		return rendered{}, errors.Wrapf(err, "transform %s", p.job.Source.Path)
	}

	metrics.RecordRows(p.job.Job, "read", res.Read)
	metrics.RecordRows(p.job.Job, "dropped", res.Dropped)
	metrics.RecordRows(p.job.Job, "emitted", len(res.Tuples))
	p.log.WithField("rows", res.Read).Info("rows read")
	p.log.WithField("rows", len(res.Tuples)).Info("rows emitted")

	if err := p.report(res.Issues); err != nil {
		return rendered{}, err
	}

	out := rendered{result: res}
	if err := p.step("render", func() error {
		out.sql, err = sqlgen.Statement{
			Comment:        p.job.Output.Comment,
			Table:          p.job.Output.Table,
			ColumnLines:    b.ColumnLines(),
			ConflictColumn: p.job.Output.ConflictColumn,
			Dialect:        d,
			Tuples:         res.Tuples,
		}.Render()
		return err
	}); err != nil {
		return rendered{}, errors.Wrap(err, "render statement")
	}
	out.checksum = sqlgen.Checksum(out.sql)
	return out, nil
}

func (p *pipeline) read(ctx context.Context) (*record.Table, error) {
	rc, err := openSourceFn(p.job.Source.Path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parser.ReadAll(ctx, p.job.Parser.Kind, rc, p.job.Parser.Options)
}

// report tallies issues per reason and, when report.path is set and the
// pipeline is not readOnly, writes them.
func (p *pipeline) report(issues []builtin.Issue) error {
	counts := make(map[builtin.Reason]int)
	for _, iss := range issues {
		counts[iss.Reason]++
	}
	reasons := make([]string, 0, len(counts))
	for r, n := range counts {
		metrics.RecordIssues(p.job.Job, string(r), n)
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)

	path := p.job.Report.Path
	if path == "" || p.readOnly {
		for _, r := range reasons {
			p.log.WithFields(logrus.Fields{"reason": r, "count": counts[builtin.Reason(r)]}).Debug("issues")
		}
		return nil
	}

	st, err := skiplog.Open(path)
	if err != nil {
		return err
	}
	for _, iss := range issues {
		if err := st.Add(iss); err != nil {
			st.Close()
			return errors.Wrapf(err, "write report %s", path)
		}
	}
	if err := st.Close(); err != nil {
		return err
	}
	for _, c := range st.Counts() {
		p.log.WithFields(logrus.Fields{"reason": c.Reason, "count": c.N}).Info("issues")
	}
	p.log.WithField("path", path).Info("report written")
	return nil
}

// write replaces the output file with out.
func (p *pipeline) write(ctx context.Context, out rendered) error {
	dst := file.NewLocal(p.job.Output.Path)
	if err := p.step("write", func() error {
		return dst.WriteAll(ctx, out.sql)
	}); err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{
		"path":     dst.Path(),
		"checksum": sqlgen.FormatChecksum(out.checksum),
	}).Info("seed written")
	return nil
}

// apply executes out against the configured storage.
func (p *pipeline) apply(ctx context.Context, out rendered) error {
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: p.job.Storage.Kind, DSN: p.job.Storage.DSN})
	if err != nil {
		return errors.Wrap(err, "open storage")
	}
	defer repo.Close()

	if err := p.step("apply", func() error {
		return repo.Exec(ctx, string(out.sql))
	}); err != nil {
		return errors.Wrapf(err, "apply to %s", p.job.Storage.Kind)
	}
	p.log.WithFields(logrus.Fields{
		"storage": p.job.Storage.Kind,
		"rows":    len(out.result.Tuples),
	}).Info("seed applied")
	return nil
}
