//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/specvital/focusguard/pkg/checker"
	"github.com/specvital/focusguard/pkg/report"
	"github.com/specvital/focusguard/pkg/source"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/check.go <path>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	src, err := source.NewLocalSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "source error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	result, err := checker.Run(ctx, src, checker.WithBasePath(src.Root()))
	var failure *report.FailureError
	if err != nil && !errors.As(err, &failure) {
		fmt.Fprintf(os.Stderr, "check error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesDiscovered": result.Stats.FilesDiscovered,
		"filesChecked":    result.Stats.FilesChecked,
		"findings":        len(result.Report.Diagnostics),
		"byStatus":        result.Report.CountByStatus(),
		"errors":          len(result.Errors),
		"duration":        result.Stats.Duration.String(),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}
