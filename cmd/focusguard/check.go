package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/specvital/focusguard/pkg/checker"
	"github.com/specvital/focusguard/pkg/domain"
	"github.com/specvital/focusguard/pkg/report"
	"github.com/specvital/focusguard/pkg/source"
	"github.com/specvital/focusguard/pkg/text"
)

// settings is the merged view of flags, config file and defaults.
type settings struct {
	allowDisabledTests bool
	basePath           *string
	tabWidth           int
	color              colorMode
	format             string
	forbid             []string
	extended           bool
	include            []string
	exclude            []string
	workers            int
	timeout            time.Duration
	maxFileSize        int64
	verbose            bool
}

func runCheck(cmd *cobra.Command, args []string, stdout, stderr io.Writer, env map[string]string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// JSON consumers get plain context blocks.
	useColor := s.format == formatText && colorEnabled(s.color, env, stdout)

	opts := []checker.Option{
		checker.WithAllowDisabledTests(s.allowDisabledTests),
		checker.WithTabWidth(s.tabWidth),
		checker.WithColor(useColor),
		checker.WithForbidden(s.forbid...),
		checker.WithExtendedAliases(s.extended),
		checker.WithPatterns(s.include),
		checker.WithExcludePatterns(s.exclude),
		checker.WithWorkers(s.workers),
		checker.WithTimeout(s.timeout),
		checker.WithMaxFileSize(s.maxFileSize),
		checker.WithLogger(logger),
	}
	if s.basePath != nil {
		opts = append(opts, checker.WithBasePath(*s.basePath))
	}

	c, err := checker.New(opts...)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	collector := report.NewCollector()
	filesChecked := 0
	seen := make(map[string]bool)
	for _, arg := range args {
		n, diags, err := checkPath(cmd.Context(), c, arg, seen, logger)
		if err != nil {
			return err
		}
		filesChecked += n
		collector.Add(diags...)
	}

	r := domain.Report{
		Diagnostics:  collector.Diagnostics(),
		FilesChecked: filesChecked,
	}
	if err := writeReport(stdout, stderr, s.format, r); err != nil {
		return err
	}
	if !r.Clean() {
		return errFindings
	}
	return nil
}

// checkPath walks a directory with Run or checks a single named file.
// It returns the number of files checked and their diagnostics. Files whose
// absolute path is already in seen are left out of both.
func checkPath(ctx context.Context, c *checker.Checker, arg string, seen map[string]bool, logger *slog.Logger) (int, []domain.Diagnostic, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return 0, nil, err
	}
	if !info.IsDir() {
		return checkNamedFile(c, arg, seen)
	}

	src, err := source.NewLocalSource(arg)
	if err != nil {
		return 0, nil, err
	}
	defer src.Close()

	result, err := c.Run(ctx, src)
	var failure *report.FailureError
	if err != nil && !errors.As(err, &failure) {
		return 0, nil, err
	}
	for _, scanErr := range result.Errors {
		logger.Warn("file not checked", "error", scanErr)
	}

	n := 0
	dup := make(map[string]bool)
	for _, rel := range result.Files {
		path := filepath.Join(src.Root(), filepath.FromSlash(rel))
		if seen[path] {
			dup[c.DisplayPath(path)] = true
			continue
		}
		seen[path] = true
		n++
	}

	diags := result.Report.Diagnostics
	if len(dup) > 0 {
		diags = slices.DeleteFunc(slices.Clone(diags), func(d domain.Diagnostic) bool {
			return dup[d.File]
		})
	}
	return n, diags, nil
}

func checkNamedFile(c *checker.Checker, name string, seen map[string]bool) (int, []domain.Diagnostic, error) {
	path, err := filepath.Abs(name)
	if err != nil {
		return 0, nil, err
	}
	if seen[path] {
		return 0, nil, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	if err := c.Process(source.File{Path: path, Contents: contents}); err != nil {
		return 0, nil, err
	}
	seen[path] = true

	err = c.Finish()
	var failure *report.FailureError
	if errors.As(err, &failure) {
		return 1, failure.Raw, nil
	}
	return 1, nil, err
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	var s settings

	cfgPath, _, err := flagValue(cmd, "config", cmd.Flags().GetString)
	if err != nil {
		return s, err
	}
	if cfgPath == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			cfgPath = findConfig(wd)
		}
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return s, fmt.Errorf("load config: %w", err)
	}

	allow, changed, err := flagValue(cmd, "allow-disabled-tests", cmd.Flags().GetBool)
	if err != nil {
		return s, err
	}
	s.allowDisabledTests = pick(changed, allow, cfg.AllowDisabledTests)

	basePath, changed, err := flagValue(cmd, "base-path", cmd.Flags().GetString)
	if err != nil {
		return s, err
	}
	switch {
	case changed:
		s.basePath = &basePath
	case cfg.BasePath != nil:
		s.basePath = cfg.BasePath
	}

	tabWidth, changed, err := flagValue(cmd, "tab-width", cmd.Flags().GetString)
	if err != nil {
		return s, err
	}
	s.tabWidth = pick(changed, text.ParseTabWidth(tabWidth), cfg.TabWidth)

	colorFlag, changed, err := flagValue(cmd, "color", cmd.Flags().GetString)
	if err != nil {
		return s, err
	}
	if !changed && cfg.Color != "" {
		colorFlag = cfg.Color
	}
	if s.color, err = parseColorMode(colorFlag); err != nil {
		return s, err
	}
	noColor, _, err := flagValue(cmd, "no-color", cmd.Flags().GetBool)
	if err != nil {
		return s, err
	}
	if noColor {
		s.color = colorNever
	}

	format, changed, err := flagValue(cmd, "format", cmd.Flags().GetString)
	if err != nil {
		return s, err
	}
	if !changed && cfg.Format != "" {
		format = cfg.Format
	}
	if s.format, err = parseFormat(format); err != nil {
		return s, err
	}

	forbid, changed, err := flagValue(cmd, "forbid", cmd.Flags().GetStringArray)
	if err != nil {
		return s, err
	}
	s.forbid = pickSlice(changed, forbid, cfg.Forbid)

	extended, changed, err := flagValue(cmd, "extended", cmd.Flags().GetBool)
	if err != nil {
		return s, err
	}
	s.extended = pick(changed, extended, cfg.Extended)

	include, changed, err := flagValue(cmd, "include", cmd.Flags().GetStringSlice)
	if err != nil {
		return s, err
	}
	s.include = pickSlice(changed, include, cfg.Include)

	exclude, changed, err := flagValue(cmd, "exclude", cmd.Flags().GetStringSlice)
	if err != nil {
		return s, err
	}
	s.exclude = pickSlice(changed, exclude, cfg.Exclude)

	workers, changed, err := flagValue(cmd, "workers", cmd.Flags().GetInt)
	if err != nil {
		return s, err
	}
	s.workers = pick(changed, workers, cfg.Workers)

	timeout, changed, err := flagValue(cmd, "timeout", cmd.Flags().GetDuration)
	if err != nil {
		return s, err
	}
	s.timeout = pick(changed, timeout, cfg.Timeout)

	maxFileSize, changed, err := flagValue(cmd, "max-file-size", cmd.Flags().GetInt64)
	if err != nil {
		return s, err
	}
	s.maxFileSize = pick(changed, maxFileSize, cfg.MaxFileSize)

	if s.verbose, _, err = flagValue(cmd, "verbose", cmd.Flags().GetBool); err != nil {
		return s, err
	}

	return s, nil
}

// flagValue reads a flag and reports whether it was set on the command line.
func flagValue[T any](cmd *cobra.Command, name string, get func(string) (T, error)) (T, bool, error) {
	v, err := get(name)
	if err != nil {
		return v, false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, cmd.Flags().Changed(name), nil
}

// pick prefers an explicit flag, then the config value, then the flag default.
func pick[T any](changed bool, flagVal T, cfgVal *T) T {
	if changed || cfgVal == nil {
		return flagVal
	}
	return *cfgVal
}

func pickSlice(changed bool, flagVal, cfgVal []string) []string {
	if changed || len(cfgVal) == 0 {
		return flagVal
	}
	return cfgVal
}
