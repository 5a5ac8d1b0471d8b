package checker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/focusguard/pkg/domain"
	"github.com/specvital/focusguard/pkg/report"
	"github.com/specvital/focusguard/pkg/source"
)

const (
	// DefaultWorkers indicates that Run should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default run timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size for checking (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names that are skipped by default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	".next",
	"__pycache__",
	"coverage",
	".cache",
}

var (
	// ErrRunCancelled is returned when a run is cancelled via context.
	ErrRunCancelled = errors.New("checker: run cancelled")
	// ErrRunTimeout is returned when a run exceeds the timeout duration.
	ErrRunTimeout = errors.New("checker: run timeout")
)

// Error phases reported in ScanError.
const (
	PhaseDiscovery = "discovery"
	PhaseRead      = "read"
	PhaseCheck     = "check"
)

// Result contains the outcome of a Run.
type Result struct {
	// Report holds the diagnostics in discovery order.
	Report domain.Report

	// Files lists the checked files in discovery order, as slash-separated
	// paths relative to the source root.
	Files []string

	// Errors contains non-fatal errors encountered during the run.
	Errors []ScanError

	// Stats provides run statistics.
	Stats Stats
}

// ScanError represents an error that occurred during a specific phase of a run.
type ScanError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "read", "check"
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

func (e ScanError) Unwrap() error {
	return e.Err
}

// Stats provides statistics about a run.
type Stats struct {
	// FilesDiscovered is the number of candidate files found.
	FilesDiscovered int

	// FilesChecked is the number of files whose contents were checked.
	FilesChecked int

	// FilesFailed is the number of files that could not be read or checked.
	FilesFailed int

	// FilesWithFindings is the number of files with at least one diagnostic.
	FilesWithFindings int

	// Duration is the total run duration.
	Duration time.Duration
}

// fileResult is the outcome of one file, stored at its discovery index.
type fileResult struct {
	diags   []domain.Diagnostic
	err     *ScanError
	checked bool
}

// Run discovers candidate files in src, checks them in parallel and collects
// the diagnostics in discovery order. It returns a *report.FailureError when
// anything was found, ErrRunTimeout or ErrRunCancelled when the context
// ended first, and nil otherwise. The result is always non-nil.
//
// The caller is responsible for calling src.Close() when done.
func (c *Checker) Run(ctx context.Context, src source.Source) (*Result, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	result := &Result{
		Report: domain.Report{
			RootPath:    src.Root(),
			Diagnostics: []domain.Diagnostic{},
		},
		Errors: []ScanError{},
	}

	files, errs := c.discoverFiles(ctx, src)
	for _, err := range errs {
		result.Errors = append(result.Errors, ScanError{
			Err:   err,
			Phase: PhaseDiscovery,
		})
	}
	result.Stats.FilesDiscovered = len(files)
	c.logger.Debug("discovered files", "root", src.Root(), "count", len(files))

	results := c.checkFilesParallel(ctx, src, files)

	collector := report.NewCollector()
	for i, r := range results {
		if r.err != nil {
			result.Errors = append(result.Errors, *r.err)
			result.Stats.FilesFailed++
			continue
		}
		if !r.checked {
			continue
		}
		result.Stats.FilesChecked++
		result.Files = append(result.Files, files[i])
		if len(r.diags) > 0 {
			result.Stats.FilesWithFindings++
		}
		collector.Add(r.diags...)
	}

	result.Report.Diagnostics = append(result.Report.Diagnostics, collector.Diagnostics()...)
	result.Report.FilesChecked = result.Stats.FilesChecked
	result.Stats.Duration = time.Since(startTime)

	c.logger.Info("run finished",
		"root", src.Root(),
		"files", result.Stats.FilesChecked,
		"findings", len(result.Report.Diagnostics),
		"errors", len(result.Errors),
		"duration", result.Stats.Duration,
	)

	// Check for timeout or cancellation
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrRunTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrRunCancelled
		}
	}

	return result, collector.Err()
}

// Run checks src with a Checker built from opts.
func Run(ctx context.Context, src source.Source, opts ...Option) (*Result, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, src)
}

// discoverFiles walks the source to find candidate files.
// Returns slash-separated paths relative to the source root in lexical order.
func (c *Checker) discoverFiles(ctx context.Context, src source.Source) ([]string, []error) {
	skipSet := buildSkipSet(append(append([]string{}, DefaultSkipPatterns...), c.options.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := src.Walk(ctx, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == "." {
				return walkErr
			}
			errs = append(errs, fmt.Errorf("access error at %s: %w", p, walkErr))
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(p, skipSet) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !c.isCandidate(p) {
			return nil
		}

		if c.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", p, err))
				return nil
			}
			if info.Size() > c.options.MaxFileSize {
				c.logger.Debug("skipping large file", "path", p, "size", info.Size())
				return nil
			}
		}

		files = append(files, p)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

func (c *Checker) checkFilesParallel(ctx context.Context, src source.Source, files []string) []fileResult {
	workers := c.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	// Indexed by discovery order; each goroutine writes only its own slot.
	results := make([]fileResult, len(files))

	for i, file := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			results[i] = c.checkOne(gCtx, src, file)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (c *Checker) checkOne(ctx context.Context, src source.Source, rel string) fileResult {
	f, err := source.ReadFile(ctx, src, rel)
	if err != nil {
		return fileResult{err: &ScanError{Err: err, Path: rel, Phase: PhaseRead}}
	}

	diags, err := c.checkFile(f)
	if err != nil {
		return fileResult{err: &ScanError{Err: err, Path: rel, Phase: PhaseCheck}}
	}
	return fileResult{diags: diags, checked: true}
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(p string, skipSet map[string]bool) bool {
	if p == "." {
		return false
	}
	return skipSet[path.Base(p)]
}

// isCandidate selects files to check. With include patterns, any JavaScript
// or TypeScript file matching one of them; otherwise test files by naming
// convention.
func (c *Checker) isCandidate(p string) bool {
	if domain.LanguageOf(p) == domain.LanguageUnknown {
		return false
	}
	if len(c.options.Patterns) > 0 {
		return matchesAnyPattern(p, c.options.Patterns)
	}
	return isJSTestFile(p)
}

func isJSTestFile(p string) bool {
	lowerBase := strings.ToLower(path.Base(p))

	if strings.Contains(lowerBase, ".test.") || strings.Contains(lowerBase, ".spec.") {
		return true
	}

	// Playwright setup/teardown files: *.setup.{js,ts,jsx,tsx}
	ext := path.Ext(lowerBase)
	if ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx" {
		nameWithoutExt := strings.TrimSuffix(lowerBase, ext)
		if strings.HasSuffix(nameWithoutExt, ".setup") || strings.HasSuffix(nameWithoutExt, ".teardown") {
			return true
		}
	}

	// Cypress E2E test files: *.cy.{js,ts,jsx,tsx}
	if strings.Contains(lowerBase, ".cy.") {
		return true
	}

	// Exclude fixture and mock directories (not actual test files)
	if strings.Contains(p, "/__fixtures__/") || strings.HasPrefix(p, "__fixtures__/") ||
		strings.Contains(p, "/__mocks__/") || strings.HasPrefix(p, "__mocks__/") {
		return false
	}

	if strings.Contains(p, "/__tests__/") || strings.HasPrefix(p, "__tests__/") {
		return true
	}

	// Cypress e2e/ and component/ directories
	if strings.Contains(p, "/cypress/e2e/") || strings.Contains(p, "/cypress/component/") {
		return true
	}

	// Mocha's default spec directory
	if strings.HasPrefix(p, "test/") || strings.Contains(p, "/test/") {
		return true
	}

	return false
}

func matchesAnyPattern(p string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
