package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/focusguard/pkg/domain"
)

func diag(file, str string, line int) domain.Diagnostic {
	return domain.Diagnostic{
		File:    file,
		Str:     str,
		Line:    line,
		Column:  1,
		Context: fmt.Sprintf(" %d| %s();\n  | ^^^\n", line, str),
		Status:  domain.TestStatusFocused,
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	t.Run("should be empty without diagnostics", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", Message(nil))
	})

	t.Run("should join entries with a blank line", func(t *testing.T) {
		t.Parallel()

		got := Message([]domain.Diagnostic{diag("a.js", "fit", 1), diag("b.js", "iit", 2)})

		want := "\n" +
			"Found `fit` in a.js:1:1\n" +
			" 1| fit();\n" +
			"  | ^^^\n" +
			"\n\n" +
			"Found `iit` in b.js:2:1\n" +
			" 2| iit();\n" +
			"  | ^^^\n"
		assert.Equal(t, want, got)
	})
}

func TestCollector(t *testing.T) {
	t.Parallel()

	t.Run("should succeed when empty", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		assert.NoError(t, c.Err())
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Diagnostics())
		assert.Equal(t, "", c.Message())
	})

	t.Run("should fail with message and raw list", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		c.Add(diag("a.js", "fit", 1))
		c.Add()
		c.Add(diag("a.js", "iit", 3), diag("b.js", "ddescribe", 1))

		err := c.Err()
		require.Error(t, err)

		var failure *FailureError
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, c.Message(), failure.Message)
		assert.Equal(t, failure.Message, err.Error())
		require.Len(t, failure.Raw, 3)
		assert.Equal(t, []string{"fit", "iit", "ddescribe"}, []string{failure.Raw[0].Str, failure.Raw[1].Str, failure.Raw[2].Str})
	})

	t.Run("should return copies", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		c.Add(diag("a.js", "fit", 1))
		got := c.Diagnostics()
		got[0].Str = "changed"
		assert.Equal(t, "fit", c.Diagnostics()[0].Str)
	})

	t.Run("should drain", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		c.Add(diag("a.js", "fit", 1), diag("a.js", "iit", 2))
		assert.Len(t, c.Drain(), 2)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Drain())
	})

	t.Run("should reset", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		c.Add(diag("a.js", "fit", 1))
		c.Reset()
		assert.NoError(t, c.Err())
	})

	t.Run("should accept concurrent adds", func(t *testing.T) {
		t.Parallel()

		c := NewCollector()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Add(diag("a.js", "fit", i+1))
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, c.Len())
	})
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("should write empty list for clean report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, domain.Report{FilesChecked: 2}))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, []any{}, decoded["diagnostics"])
		assert.Equal(t, float64(2), decoded["filesChecked"])
		assert.NotContains(t, decoded, "rootPath")
	})

	t.Run("should write diagnostics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := domain.Report{Diagnostics: []domain.Diagnostic{diag("a.js", "fit", 4)}, FilesChecked: 1, RootPath: "/repo"}
		require.NoError(t, WriteJSON(&buf, r))

		var decoded domain.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, r, decoded)
		assert.Contains(t, buf.String(), `"status": "focused"`)
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report domain.Report
		want   string
	}{
		{
			name:   "clean",
			report: domain.Report{FilesChecked: 10},
			want:   "no forbidden calls in 10 files",
		},
		{
			name:   "clean single file",
			report: domain.Report{FilesChecked: 1},
			want:   "no forbidden calls in 1 file",
		},
		{
			name: "mixed",
			report: domain.Report{
				FilesChecked: 10,
				Diagnostics: []domain.Diagnostic{
					diag("a.js", "fit", 1),
					diag("a.js", "iit", 2),
					{File: "b.js", Str: "xit", Line: 1, Column: 1, Status: domain.TestStatusSkipped},
				},
			},
			want: "3 forbidden calls (2 focused, 1 skipped) in 2 of 10 files",
		},
		{
			name:   "single",
			report: domain.Report{FilesChecked: 1, Diagnostics: []domain.Diagnostic{diag("a.js", "fit", 1)}},
			want:   "1 forbidden call (1 focused) in 1 of 1 file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Summary(tt.report))
		})
	}
}
