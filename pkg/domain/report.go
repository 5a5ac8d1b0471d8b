package domain

// Report is the structured outcome of checking a set of files.
type Report struct {
	// Diagnostics contains every finding in file discovery order, then
	// document order within a file.
	Diagnostics []Diagnostic `json:"diagnostics"`
	// FilesChecked is the number of files whose contents were scanned.
	FilesChecked int `json:"filesChecked"`
	// RootPath is the root directory of the checked source, if any.
	RootPath string `json:"rootPath,omitempty"`
}

// CountByStatus returns the number of diagnostics per status.
func (r Report) CountByStatus() map[TestStatus]int {
	counts := make(map[TestStatus]int)
	for _, d := range r.Diagnostics {
		counts[d.Status]++
	}
	return counts
}

// Files returns the distinct files with at least one diagnostic, in the
// order they first appear.
func (r Report) Files() []string {
	seen := make(map[string]bool)
	var files []string
	for _, d := range r.Diagnostics {
		if seen[d.File] {
			continue
		}
		seen[d.File] = true
		files = append(files, d.File)
	}
	return files
}

// Clean reports whether no forbidden call was found.
func (r Report) Clean() bool {
	return len(r.Diagnostics) == 0
}
