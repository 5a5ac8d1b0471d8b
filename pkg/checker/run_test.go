package checker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/specvital/focusguard/pkg/checker"
	"github.com/specvital/focusguard/pkg/report"
	"github.com/specvital/focusguard/pkg/source"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
}

func TestRun(t *testing.T) {
	t.Run("should succeed for empty directory", func(t *testing.T) {
		src, err := source.NewLocalSource(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create source: %v", err)
		}
		defer src.Close()

		result, err := checker.Run(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Report.Diagnostics) != 0 {
			t.Errorf("expected 0 diagnostics, got %d", len(result.Report.Diagnostics))
		}
		if !result.Report.Clean() {
			t.Error("report should be clean")
		}
	})

	t.Run("should report findings in path order", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{
			"b.spec.js":              "describe('b', () => {\n  fit('x', fn);\n});\n",
			"a.test.ts":              "iit('y');\n",
			"src/__tests__/c.js":     "it.only('z', fn);\nfdescribe('w', fn);\n",
			"src/util.js":            "fit();\n",
			"clean.spec.js":          "it('ok', fn);\n",
			"node_modules/m.spec.js": "fit();\n",
		})

		src, err := source.NewLocalSource(tmpDir)
		if err != nil {
			t.Fatalf("failed to create source: %v", err)
		}
		defer src.Close()

		result, err := checker.Run(context.Background(), src, checker.WithBasePath(tmpDir), checker.WithWorkers(2))

		var failure *report.FailureError
		if !errors.As(err, &failure) {
			t.Fatalf("expected *report.FailureError, got %v", err)
		}

		want := []struct {
			file string
			str  string
			line int
		}{
			{"a.test.ts", "iit", 1},
			{"b.spec.js", "fit", 2},
			{filepath.Join("src", "__tests__", "c.js"), "it.only", 1},
			{filepath.Join("src", "__tests__", "c.js"), "fdescribe", 2},
		}
		if len(failure.Raw) != len(want) {
			t.Fatalf("expected %d diagnostics, got %d: %v", len(want), len(failure.Raw), failure.Raw)
		}
		for i, w := range want {
			d := failure.Raw[i]
			if d.File != w.file || d.Str != w.str || d.Line != w.line {
				t.Errorf("diagnostic %d: got %s %q, want %s:%d %q", i, d.Location(), d.Str, w.file, w.line, w.str)
			}
		}

		if len(result.Report.Diagnostics) != len(want) {
			t.Errorf("report should carry %d diagnostics, got %d", len(want), len(result.Report.Diagnostics))
		}
		if result.Stats.FilesDiscovered != 4 {
			t.Errorf("expected 4 discovered files, got %d", result.Stats.FilesDiscovered)
		}
		if result.Stats.FilesChecked != 4 {
			t.Errorf("expected 4 checked files, got %d", result.Stats.FilesChecked)
		}
		wantFiles := []string{"a.test.ts", "b.spec.js", "clean.spec.js", "src/__tests__/c.js"}
		if !slices.Equal(result.Files, wantFiles) {
			t.Errorf("expected checked files %v, got %v", wantFiles, result.Files)
		}
		if result.Stats.FilesWithFindings != 3 {
			t.Errorf("expected 3 files with findings, got %d", result.Stats.FilesWithFindings)
		}
		if result.Report.RootPath != src.Root() {
			t.Errorf("expected root %s, got %s", src.Root(), result.Report.RootPath)
		}
	})

	t.Run("should be deterministic across worker counts", func(t *testing.T) {
		files := make(map[string]string)
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			files[name+".spec.js"] = "fit('" + name + "');\niit('" + name + "');\n"
		}
		src := source.NewMemorySource("", files)

		var first string
		for _, workers := range []int{1, 3, 16} {
			_, err := checker.Run(context.Background(), src, checker.WithWorkers(workers))

			var failure *report.FailureError
			if !errors.As(err, &failure) {
				t.Fatalf("expected *report.FailureError, got %v", err)
			}
			if len(failure.Raw) != 16 {
				t.Fatalf("expected 16 diagnostics, got %d", len(failure.Raw))
			}
			if first == "" {
				first = failure.Message
				continue
			}
			if failure.Message != first {
				t.Errorf("message differs with %d workers", workers)
			}
		}
	})
}

func TestRunOptions(t *testing.T) {
	files := map[string]string{
		"spec/a.spec.js":      "fit();\n",
		"spec/big.spec.js":    "fit();\n" + string(make([]byte, 2048)),
		"fixtures/b.js":       "iit();\n",
		"e2e/c.spec.js":       "xit();\n",
		"lib/d.js":            "fdescribe();\n",
		"lib/readme.md":       "fit();\n",
		"generated/e.spec.js": "fit();\n",
	}
	src := source.NewMemorySource("", files)

	tests := []struct {
		name string
		opts []checker.Option
		want []string
	}{
		{
			name: "should use naming convention by default",
			want: []string{"spec/a.spec.js", "spec/big.spec.js", "generated/e.spec.js"},
		},
		{
			name: "should select files by glob",
			opts: []checker.Option{checker.WithPatterns([]string{"lib/**", "fixtures/*.js"})},
			want: []string{"fixtures/b.js", "lib/d.js"},
		},
		{
			name: "should skip excluded directories",
			opts: []checker.Option{checker.WithExcludePatterns([]string{"generated"})},
			want: []string{"spec/a.spec.js", "spec/big.spec.js"},
		},
		{
			name: "should skip large files",
			opts: []checker.Option{checker.WithMaxFileSize(1024)},
			want: []string{"spec/a.spec.js", "generated/e.spec.js"},
		},
		{
			name: "should report disabled tests when not allowed",
			opts: []checker.Option{checker.WithAllowDisabledTests(false), checker.WithExcludePatterns([]string{"spec", "generated"})},
			want: []string{"e2e/c.spec.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]checker.Option{checker.WithBasePath("")}, tt.opts...)
			_, err := checker.Run(context.Background(), src, opts...)

			var got []string
			var failure *report.FailureError
			if errors.As(err, &failure) {
				for _, d := range failure.Raw {
					got = append(got, filepath.ToSlash(d.File))
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			want := make(map[string]bool)
			for _, w := range tt.want {
				want[w] = true
			}
			for _, g := range got {
				if !want[g] {
					t.Errorf("unexpected file %s in %v", g, got)
				}
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("should record non-text files as check errors", func(t *testing.T) {
		src := source.NewMemorySource("", map[string]string{
			"bin.spec.js": string([]byte{0xff, 0xfe, 0xfd}),
			"ok.spec.js":  "it('ok');\n",
		})

		result, err := checker.Run(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 error, got %d", len(result.Errors))
		}
		scanErr := result.Errors[0]
		if scanErr.Phase != checker.PhaseCheck || scanErr.Path != "bin.spec.js" {
			t.Errorf("unexpected error: %v", scanErr)
		}
		if !errors.Is(scanErr, checker.ErrNotText) {
			t.Errorf("expected ErrNotText, got %v", scanErr.Err)
		}
		if result.Stats.FilesFailed != 1 || result.Stats.FilesChecked != 1 {
			t.Errorf("unexpected stats: %+v", result.Stats)
		}
	})

	t.Run("should return cancelled error", func(t *testing.T) {
		src := source.NewMemorySource("", map[string]string{"a.spec.js": "fit();"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := checker.Run(ctx, src)
		if !errors.Is(err, checker.ErrRunCancelled) {
			t.Fatalf("expected ErrRunCancelled, got %v", err)
		}
		if result == nil {
			t.Fatal("result should not be nil")
		}
	})

	t.Run("should return timeout error", func(t *testing.T) {
		src := source.NewMemorySource("", map[string]string{"a.spec.js": "fit();"})

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := checker.Run(ctx, src)
		if !errors.Is(err, checker.ErrRunTimeout) {
			t.Fatalf("expected ErrRunTimeout, got %v", err)
		}
	})

	t.Run("should reject malformed options", func(t *testing.T) {
		src := source.NewMemorySource("", nil)

		_, err := checker.Run(context.Background(), src, checker.WithForbidden("it..only"))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestChecker_Concurrency(t *testing.T) {
	c, err := checker.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := len(c.CheckText("a.js", "fit();\niit();\n")); n != 2 {
				t.Errorf("expected 2 diagnostics, got %d", n)
			}
		}()
	}
	wg.Wait()
}

func TestScanError(t *testing.T) {
	base := errors.New("boom")

	withPath := checker.ScanError{Err: base, Path: "a.js", Phase: checker.PhaseRead}
	if got := withPath.Error(); got != "[read] a.js: boom" {
		t.Errorf("unexpected message %q", got)
	}

	noPath := checker.ScanError{Err: base, Phase: checker.PhaseDiscovery}
	if got := noPath.Error(); got != "[discovery] boom" {
		t.Errorf("unexpected message %q", got)
	}

	if !errors.Is(withPath, base) {
		t.Error("ScanError should unwrap to its cause")
	}
}
