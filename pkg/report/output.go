package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/specvital/focusguard/pkg/domain"
)

// WriteJSON writes r as indented JSON. A nil diagnostic list is written as
// an empty array.
func WriteJSON(w io.Writer, r domain.Report) error {
	if r.Diagnostics == nil {
		r.Diagnostics = []domain.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// Summary returns a one-line count of r, e.g.
// "3 forbidden calls (2 focused, 1 skipped) in 2 of 10 files".
func Summary(r domain.Report) string {
	if r.Clean() {
		return fmt.Sprintf("no forbidden calls in %d %s", r.FilesChecked, plural(r.FilesChecked, "file"))
	}

	counts := r.CountByStatus()
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, string(s))
	}
	slices.Sort(statuses)

	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = fmt.Sprintf("%d %s", counts[domain.TestStatus(s)], s)
	}

	n := len(r.Diagnostics)
	return fmt.Sprintf("%d forbidden %s (%s) in %d of %d %s",
		n, plural(n, "call"),
		strings.Join(parts, ", "),
		len(r.Files()), r.FilesChecked, plural(r.FilesChecked, "file"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
