package checker

import (
	"log/slog"
	"os"
	"time"

	"github.com/specvital/focusguard/pkg/text"
)

// Options configures a Checker.
type Options struct {
	// AllowDisabledTests keeps xit/xdescribe out of the forbidden set.
	// Default: true.
	AllowDisabledTests bool

	// BasePath is the directory reported file paths are made relative to.
	// Default: the working directory at construction. Empty disables
	// rewriting.
	BasePath string

	// Color wraps the context gutter and carets in ANSI codes.
	Color bool

	// ExcludePatterns specifies directory names to skip during file discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// Extended adds the jest/mocha alias families to the forbidden set.
	Extended bool

	// Forbidden lists extra paths, such as "test.concurrent.only", that are
	// always forbidden.
	Forbidden []string

	// Logger receives debug events per file and a summary per run.
	// Default: discards everything.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to check.
	// Files larger than this are skipped.
	MaxFileSize int64

	// Patterns specifies doublestar globs selecting files to check. Empty
	// means JavaScript and TypeScript test files by naming convention.
	Patterns []string

	// TabWidth is the number of spaces a tab expands to in context blocks.
	// Clamped to [2, 8]. Default: 4.
	TabWidth int

	// Timeout is the maximum duration for a Run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of files checked concurrently by Run.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Checker.
type Option func(*Options)

// WithAllowDisabledTests sets whether disabled-test aliases are allowed.
func WithAllowDisabledTests(allow bool) Option {
	return func(o *Options) {
		o.AllowDisabledTests = allow
	}
}

// WithBasePath sets the directory reported paths are relative to.
// An empty path reports paths unmodified.
func WithBasePath(path string) Option {
	return func(o *Options) {
		o.BasePath = path
	}
}

// WithTabWidth sets the tab expansion width used in context blocks.
func WithTabWidth(n int) Option {
	return func(o *Options) {
		o.TabWidth = n
	}
}

// WithColor enables ANSI coloring of context blocks.
func WithColor(enabled bool) Option {
	return func(o *Options) {
		o.Color = enabled
	}
}

// WithForbidden adds paths to the forbidden set.
func WithForbidden(paths ...string) Option {
	return func(o *Options) {
		o.Forbidden = append(o.Forbidden, paths...)
	}
}

// WithExtendedAliases enables the jest/mocha alias families.
func WithExtendedAliases(enabled bool) Option {
	return func(o *Options) {
		o.Extended = enabled
	}
}

// WithWorkers sets the number of concurrent file checks.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithPatterns sets glob patterns to select files.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithExcludePatterns adds directory names to skip during file discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum file size to check.
// Negative values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// newDefaultOptions returns Options with the defaults that differ from the
// zero value.
func newDefaultOptions() Options {
	cwd, _ := os.Getwd()
	return Options{
		AllowDisabledTests: true,
		BasePath:           cwd,
		TabWidth:           text.DefaultTabWidth,
	}
}

func applyDefaults(opts *Options) {
	opts.TabWidth = text.ClampTabWidth(opts.TabWidth)
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
}
