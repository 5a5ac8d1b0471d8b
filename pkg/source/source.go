// Package source provides the files a check runs over: a Source to discover
// and open them, and a File carrying one unit of work.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing/fstest"
)

// ErrNotDirectory is returned when a local source root is not a directory.
var ErrNotDirectory = errors.New("source: root is not a directory")

// Source is a tree of files addressed by slash-separated paths relative to
// Root. The caller must Close it when done.
type Source interface {
	// Root returns the directory the relative paths are anchored at.
	Root() string
	// Walk visits every entry in lexical order, like fs.WalkDir.
	Walk(ctx context.Context, fn fs.WalkDirFunc) error
	// Open opens the file at the relative path rel.
	Open(ctx context.Context, rel string) (io.ReadCloser, error)
	Close() error
}

// FSSource is a Source backed by an fs.FS.
type FSSource struct {
	root string
	fsys fs.FS
}

// NewLocalSource returns a Source over the directory root. root is made
// absolute.
func NewLocalSource(root string) (*FSSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return &FSSource{root: abs, fsys: os.DirFS(abs)}, nil
}

// NewMemorySource returns a Source holding files in memory, keyed by
// slash-separated relative path. root is only used to build File paths.
func NewMemorySource(root string, files map[string]string) *FSSource {
	m := make(fstest.MapFS, len(files))
	for name, contents := range files {
		m[path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))] = &fstest.MapFile{Data: []byte(contents), Mode: 0o644}
	}
	return &FSSource{root: root, fsys: m}
}

func (s *FSSource) Root() string { return s.root }

func (s *FSSource) Walk(ctx context.Context, fn fs.WalkDirFunc) error {
	return fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fn(p, d, err)
	})
}

func (s *FSSource) Open(ctx context.Context, rel string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(filepath.ToSlash(rel))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FSSource) Close() error { return nil }
