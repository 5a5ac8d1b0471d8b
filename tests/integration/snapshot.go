//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specvital/focusguard/pkg/checker"
)

// Snapshot represents a golden snapshot for a fixture run.
type Snapshot struct {
	Fixture      string            `json:"fixture"`
	FilesChecked int               `json:"filesChecked"`
	FindingCount int               `json:"findingCount"`
	StatusCounts map[string]int    `json:"statusCounts"`
	Findings     []SnapshotFinding `json:"findings"`
}

// SnapshotFinding is one reported call, without its context block.
type SnapshotFinding struct {
	Path   string `json:"path"`
	Str    string `json:"str"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Status string `json:"status"`
}

func (f SnapshotFinding) String() string {
	return fmt.Sprintf("%s:%d:%d %s (%s)", f.Path, f.Line, f.Column, f.Str, f.Status)
}

// SnapshotFromResult creates a Snapshot from a run result. Findings keep
// the order of the report.
func SnapshotFromResult(fixture Fixture, result *checker.Result) *Snapshot {
	statusCounts := make(map[string]int)
	findings := make([]SnapshotFinding, 0, len(result.Report.Diagnostics))
	for _, d := range result.Report.Diagnostics {
		statusCounts[string(d.Status)]++
		findings = append(findings, SnapshotFinding{
			Path:   filepath.ToSlash(d.File),
			Str:    d.Str,
			Line:   d.Line,
			Column: d.Column,
			Status: string(d.Status),
		})
	}

	return &Snapshot{
		Fixture:      fixture.Name,
		FilesChecked: result.Stats.FilesChecked,
		FindingCount: len(findings),
		StatusCounts: statusCounts,
		Findings:     findings,
	}
}

// SaveSnapshot saves a snapshot to the golden directory.
func SaveSnapshot(snapshot *Snapshot) error {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(goldenDir, 0755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}

	path := filepath.Join(goldenDir, snapshotFilename(snapshot.Fixture))
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot loads a snapshot from the golden directory.
func LoadSnapshot(fixtureName string) (*Snapshot, error) {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(goldenDir, snapshotFilename(fixtureName))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found: %s (run with -update to create)", path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// SnapshotDiff represents differences between expected and actual snapshots.
type SnapshotDiff struct {
	FilesCheckedDiff int
	FindingCountDiff int
	StatusCountDiffs map[string]StatusDiff
	MissingFindings  []string
	ExtraFindings    []string
	OrderChanged     bool
}

// StatusDiff represents the difference in finding count for a status.
type StatusDiff struct {
	Expected int
	Actual   int
}

// IsEmpty returns true if there are no differences.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.FilesCheckedDiff == 0 &&
		d.FindingCountDiff == 0 &&
		len(d.StatusCountDiffs) == 0 &&
		len(d.MissingFindings) == 0 &&
		len(d.ExtraFindings) == 0 &&
		!d.OrderChanged
}

// String returns a human-readable diff summary.
func (d *SnapshotDiff) String() string {
	if d.IsEmpty() {
		return "no differences"
	}

	var sb strings.Builder

	if d.FilesCheckedDiff != 0 {
		sb.WriteString(fmt.Sprintf("  files checked: %+d\n", d.FilesCheckedDiff))
	}
	if d.FindingCountDiff != 0 {
		sb.WriteString(fmt.Sprintf("  finding count: %+d\n", d.FindingCountDiff))
	}

	statuses := make([]string, 0, len(d.StatusCountDiffs))
	for s := range d.StatusCountDiffs {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		diff := d.StatusCountDiffs[s]
		sb.WriteString(fmt.Sprintf("  status %s: expected %d, got %d\n", s, diff.Expected, diff.Actual))
	}

	writeFindings(&sb, "missing", "-", d.MissingFindings)
	writeFindings(&sb, "extra", "+", d.ExtraFindings)

	if d.OrderChanged {
		sb.WriteString("  findings reordered\n")
	}

	return sb.String()
}

func writeFindings(sb *strings.Builder, label, marker string, findings []string) {
	if len(findings) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s findings (%d):\n", label, len(findings)))
	for i, f := range findings {
		if i < 10 {
			sb.WriteString(fmt.Sprintf("    %s %s\n", marker, f))
		}
	}
	if len(findings) > 10 {
		sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(findings)-10))
	}
}

// CompareSnapshots compares an expected snapshot with an actual run result.
func CompareSnapshots(expected *Snapshot, actual *Snapshot) *SnapshotDiff {
	diff := &SnapshotDiff{
		FilesCheckedDiff: actual.FilesChecked - expected.FilesChecked,
		FindingCountDiff: actual.FindingCount - expected.FindingCount,
		StatusCountDiffs: make(map[string]StatusDiff),
	}

	allStatuses := make(map[string]bool)
	for s := range expected.StatusCounts {
		allStatuses[s] = true
	}
	for s := range actual.StatusCounts {
		allStatuses[s] = true
	}

	for s := range allStatuses {
		expectedCount := expected.StatusCounts[s]
		actualCount := actual.StatusCounts[s]
		if expectedCount != actualCount {
			diff.StatusCountDiffs[s] = StatusDiff{
				Expected: expectedCount,
				Actual:   actualCount,
			}
		}
	}

	expectedKeys := make(map[string]bool)
	for _, f := range expected.Findings {
		expectedKeys[f.String()] = true
	}

	actualKeys := make(map[string]bool)
	for _, f := range actual.Findings {
		actualKeys[f.String()] = true
	}

	for key := range expectedKeys {
		if !actualKeys[key] {
			diff.MissingFindings = append(diff.MissingFindings, key)
		}
	}

	for key := range actualKeys {
		if !expectedKeys[key] {
			diff.ExtraFindings = append(diff.ExtraFindings, key)
		}
	}

	sort.Strings(diff.MissingFindings)
	sort.Strings(diff.ExtraFindings)

	if len(diff.MissingFindings) == 0 && len(diff.ExtraFindings) == 0 && len(expected.Findings) == len(actual.Findings) {
		for i := range expected.Findings {
			if expected.Findings[i] != actual.Findings[i] {
				diff.OrderChanged = true
				break
			}
		}
	}

	return diff
}

func getGoldenDir() (string, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(testDataDir, "golden"), nil
}

func snapshotFilename(fixtureName string) string {
	return unsafePathChars.ReplaceAllString(fixtureName, "_") + ".json"
}
