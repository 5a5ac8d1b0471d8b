package report

import (
	"fmt"
	"strings"

	"github.com/specvital/focusguard/pkg/domain"
)

// FailureError is returned when a run found forbidden calls.
type FailureError struct {
	// Message is the combined human-readable report.
	Message string
	// Raw holds the diagnostics in the order they were found.
	Raw []domain.Diagnostic
}

func (e *FailureError) Error() string {
	return e.Message
}

// Entry renders one diagnostic: a "Found" header line followed by its context.
func Entry(d domain.Diagnostic) string {
	return fmt.Sprintf("Found `%s` in %s\n%s", d.Str, d.Location(), d.Context)
}

// Message joins the entries of diags with blank lines, after a leading
// newline. It returns "" for no diagnostics.
func Message(diags []domain.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	entries := make([]string, len(diags))
	for i, d := range diags {
		entries[i] = Entry(d)
	}
	return "\n" + strings.Join(entries, "\n\n")
}
