package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/specvital/focusguard/pkg/checker"
	"github.com/specvital/focusguard/pkg/text"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	exitClean    = 0
	exitFindings = 1
	exitUsage    = 2
)

// errFindings ends a run that completed and reported forbidden calls.
var errFindings = errors.New("forbidden calls found")

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Environ()))
}

// execute runs the root command and maps its outcome to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, environ []string) int {
	cmd := newRootCmd(stdout, stderr, envMap(environ))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitClean
	case errors.Is(err, errFindings):
		return exitFindings
	default:
		fmt.Fprintf(stderr, "focusguard: %v\n", err)
		return exitUsage
	}
}

func newRootCmd(stdout, stderr io.Writer, env map[string]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focusguard [flags] [path...]",
		Short: "Report focused and skipped test calls",
		Long: `focusguard scans JavaScript and TypeScript test files for calls like
fit, iit, it.only and describe.only that narrow a test run, and exits
with status 1 when it finds any.

Directories are walked for test files; files given by name are always
checked. Settings are read from --config or, when present, from
.focusguard.{toml,yaml,yml,json} in the working directory. Flags take
precedence over the config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, stdout, stderr, env)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.Bool("allow-disabled-tests", true, "do not report xit and xdescribe")
	flags.String("base-path", "", "directory reported paths are relative to (default: working directory)")
	flags.String("tab-width", strconv.Itoa(text.DefaultTabWidth), "spaces per tab in context blocks (2-8)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("color", "auto", "colorize output (auto|always|never)")
	flags.String("format", formatText, "output format (text|json)")
	flags.StringArray("forbid", nil, "additional forbidden call path, e.g. test.concurrent.only (repeatable)")
	flags.Bool("extended", false, "also forbid test.only, context.only and their skip variants")
	flags.StringSlice("include", nil, "glob patterns selecting files to check (default: test files by name)")
	flags.StringSlice("exclude", nil, "directory names to skip in addition to the defaults")
	flags.Int("workers", checker.DefaultWorkers, "number of files checked concurrently (0: GOMAXPROCS)")
	flags.Duration("timeout", checker.DefaultTimeout, "maximum duration of a run")
	flags.Int64("max-file-size", checker.DefaultMaxFileSize, "skip files larger than this many bytes")
	flags.String("config", "", "path to a config file (.toml, .yaml, .yml or .json)")
	flags.BoolP("verbose", "v", false, "log progress to stderr")

	return cmd
}
