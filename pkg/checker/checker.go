// Package checker reports focused and disabled test calls in JavaScript
// sources. A Checker compiles its forbidden set once, checks texts or files
// against it, and collects diagnostics until the run is finished.
package checker

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/specvital/focusguard/pkg/domain"
	"github.com/specvital/focusguard/pkg/pattern"
	"github.com/specvital/focusguard/pkg/report"
	"github.com/specvital/focusguard/pkg/scan"
	"github.com/specvital/focusguard/pkg/source"
	"github.com/specvital/focusguard/pkg/style"
	"github.com/specvital/focusguard/pkg/text"
)

var (
	// ErrStreamingNotSupported is returned for files that carry a stream
	// instead of buffered contents.
	ErrStreamingNotSupported = errors.New("checker: streaming not supported")
	// ErrNotText is returned for contents that are not valid UTF-8.
	ErrNotText = errors.New("checker: contents are not text")
)

// Checker finds forbidden calls. CheckText is safe for concurrent use;
// Process and Finish share one collector per run.
type Checker struct {
	options   Options
	matcher   *pattern.Matcher
	palette   *style.Palette
	collector *report.Collector
	logger    *slog.Logger
}

// New creates a Checker with the given options. It fails when a forbidden
// path is malformed.
func New(opts ...Option) (*Checker, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	rules, err := pattern.RuleSet{
		AllowDisabledTests: options.AllowDisabledTests,
		Extended:           options.Extended,
		Extra:              options.Forbidden,
	}.Rules()
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}
	matcher, err := pattern.Compile(rules)
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}

	return &Checker{
		options:   options,
		matcher:   matcher,
		palette:   style.New(options.Color),
		collector: report.NewCollector(),
		logger:    options.Logger,
	}, nil
}

// Options returns the effective options.
func (c *Checker) Options() Options {
	return c.options
}

// Rules returns the compiled forbidden set in match priority order.
func (c *Checker) Rules() []pattern.Rule {
	return c.matcher.Rules()
}

// DisplayPath returns the file name diagnostics for path are reported under.
func (c *Checker) DisplayPath(path string) string {
	return displayPath(c.options.BasePath, path)
}

// CheckText returns the diagnostics for content, reported under path.
// Nothing is collected.
func (c *Checker) CheckText(path, content string) []domain.Diagnostic {
	t := text.New(content, c.options.TabWidth)
	file := c.DisplayPath(path)

	var diags []domain.Diagnostic
	for rec := range scan.All(c.matcher, t) {
		pos := scan.Locate(t, rec)
		diags = append(diags, domain.Diagnostic{
			File:    file,
			Str:     scan.Canonicalize(rec.Text),
			Line:    pos.Line,
			Column:  pos.Column,
			Context: scan.Context(t, rec, pos, c.palette),
			Status:  rec.Rule.Status,
		})
	}
	return diags
}

// checkFile validates f and checks its contents without collecting.
func (c *Checker) checkFile(f source.File) ([]domain.Diagnostic, error) {
	if f.IsNull() {
		c.logger.Debug("skipping null file", "path", f.Path)
		return nil, nil
	}
	if f.IsStream() {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrStreamingNotSupported)
	}
	if !utf8.Valid(f.Contents) {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNotText)
	}

	diags := c.CheckText(f.Path, string(f.Contents))
	c.logger.Debug("checked file", "path", f.Path, "findings", len(diags))
	return diags, nil
}

// Process checks f and collects its diagnostics. Null files are passed
// over. Streaming or non-text files are rejected without collecting
// anything.
func (c *Checker) Process(f source.File) error {
	diags, err := c.checkFile(f)
	if err != nil {
		return err
	}
	c.collector.Add(diags...)
	return nil
}

// Diagnostics returns what the current run has collected so far.
func (c *Checker) Diagnostics() []domain.Diagnostic {
	return c.collector.Diagnostics()
}

// Finish ends the current run. It returns a *report.FailureError carrying
// every collected diagnostic, or nil when there were none, and starts a new
// empty run.
func (c *Checker) Finish() error {
	diags := c.collector.Drain()
	if len(diags) == 0 {
		return nil
	}
	c.logger.Info("forbidden calls found", "count", len(diags))
	return &report.FailureError{Message: report.Message(diags), Raw: diags}
}
