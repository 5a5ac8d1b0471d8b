package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want Spec
	}{
		{name: "bare identifier", path: "fit", want: Spec{"fit"}},
		{name: "trims surrounding whitespace", path: "  iit \n", want: Spec{"iit"}},
		{name: "dotted path", path: "describe.only", want: Spec{"describe", "only"}},
		{name: "three segments", path: "test.concurrent.only", want: Spec{"test", "concurrent", "only"}},
		{name: "single-quoted key", path: "it['only']", want: Spec{"it", "only"}},
		{name: "double-quoted key", path: `it["only"]`, want: Spec{"it", "only"}},
		{name: "spaced bracket key", path: "it[ 'only' ]", want: Spec{"it", "only"}},
		{name: "escaped key", path: `it['\157nly']`, want: Spec{"it", "only"}},
		{name: "braced unicode key", path: `it['\u{6F}nly']`, want: Spec{"it", "only"}},
		{name: "fixed unicode key", path: `it["\u006Fnly"]`, want: Spec{"it", "only"}},
		{name: "hex key", path: `it['\x6Fnly']`, want: Spec{"it", "only"}},
		{name: "short octal key", path: `it['\40only']`, want: Spec{"it", " only"}},
		{name: "key with dot", path: "suite['a.b']", want: Spec{"suite", "a.b"}},
		{name: "mixed access", path: "a['b'].c", want: Spec{"a", "b", "c"}},
		{name: "dollar identifier", path: "$it.only", want: Spec{"$it", "only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	paths := []string{
		"",
		"   ",
		".only",
		"it.",
		"it..only",
		"it['only'",
		"it['only",
		"it[only]",
		"it['']",
		"it(x)",
		"['only']",
		`it['\u{zz}']`,
		`it['\x6']`,
		`it['\u{110000}']`,
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPath), "error should wrap ErrInvalidPath: %v", err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("it..only") })
	assert.Equal(t, Spec{"it", "only"}, MustParse("it.only"))
}

func TestSpec_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec Spec
		want string
	}{
		{spec: nil, want: ""},
		{spec: Spec{"fit"}, want: "fit"},
		{spec: Spec{"it", "only"}, want: "it.only"},
		{spec: Spec{"suite", "a.b"}, want: "suite['a.b']"},
		{spec: Spec{"suite", "it's"}, want: `suite['it\'s']`},
		{spec: Spec{"x", "1st"}, want: "x['1st']"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.spec.String())
		})
	}
}
