package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/specvital/focusguard/pkg/domain"
	"github.com/specvital/focusguard/pkg/report"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatText, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (want text or json)", s)
	}
}

// writeReport prints r in the given format. Text output puts the failure
// message on stdout and a one-line summary on stderr; JSON goes to stdout.
func writeReport(stdout, stderr io.Writer, format string, r domain.Report) error {
	if format == formatJSON {
		return report.WriteJSON(stdout, r)
	}

	if !r.Clean() {
		if _, err := fmt.Fprintln(stdout, report.Message(r.Diagnostics)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(stderr, report.Summary(r))
	return err
}
