package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
)

// File is one unit of work: a path plus either buffered contents or a
// stream. A File with neither is null and is passed over.
type File struct {
	Path     string
	Contents []byte
	Stream   io.Reader
}

func (f File) IsNull() bool   { return f.Contents == nil && f.Stream == nil }
func (f File) IsStream() bool { return f.Stream != nil }

// ReadFile reads rel from src into a buffered File whose Path is rel joined
// to the source root.
func ReadFile(ctx context.Context, src Source, rel string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	reader, err := src.Open(ctx, rel)
	if err != nil {
		return File{}, err
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return File{}, fmt.Errorf("read file %s: %w", rel, err)
	}
	if content == nil {
		content = []byte{}
	}

	return File{
		Path:     filepath.Join(src.Root(), filepath.FromSlash(rel)),
		Contents: content,
	}, nil
}
