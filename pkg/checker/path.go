package checker

import "path/filepath"

// displayPath rewrites p relative to base. Relative paths are resolved
// against the working directory first. An empty base, or a path that
// cannot be made relative, is returned unchanged.
func displayPath(base, p string) string {
	if base == "" || p == "" {
		return p
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return p
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return p
	}
	return rel
}
