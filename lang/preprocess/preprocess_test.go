package preprocess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memReader map[string]string

func (m memReader) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return []byte(s), nil
}

func TestRunNoIncludes(t *testing.T) {
	r := memReader{"main.tpl": "int x;\nint y;\n"}
	out, lt, err := Run("main.tpl", r)
	require.NoError(t, err)
	require.Contains(t, out, "int x;")
	require.Contains(t, out, "int y;")

	file, line := lt.Resolve(2) // the "#file" marker consumes output line 1
	require.Equal(t, "main.tpl", file)
	require.Equal(t, 1, line)
}

func TestRunWithInclude(t *testing.T) {
	r := memReader{
		"main.tpl":    "struct Header header;\n#include \"common.tpl\"\nint after;\n",
		"common.tpl": "int shared;\n",
	}
	out, lt, err := Run("main.tpl", r)
	require.NoError(t, err)
	require.Contains(t, out, "struct Header header;")
	require.Contains(t, out, "int shared;")
	require.Contains(t, out, "int after;")

	lines := splitLines(out)
	var sawCommon, sawResume bool
	for _, l := range lines {
		if l == "#file common.tpl 1" {
			sawCommon = true
		}
		if l == "#file main.tpl 3" {
			sawResume = true
		}
	}
	require.True(t, sawCommon, "expected marker entering common.tpl:\n%s", out)
	require.True(t, sawResume, "expected marker resuming main.tpl at line 3:\n%s", out)

	// find the output line holding "int shared;" and confirm it resolves back
	// to common.tpl line 1.
	for i, l := range lines {
		if l == "int shared;" {
			file, line := lt.Resolve(i + 1)
			require.Equal(t, "common.tpl", file)
			require.Equal(t, 1, line)
		}
	}
}

func TestRunCircularInclude(t *testing.T) {
	r := memReader{
		"a.tpl": "#include \"b.tpl\"\n",
		"b.tpl": "#include \"a.tpl\"\n",
	}
	_, _, err := Run("a.tpl", r)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, MissingInclude, perr.Kind)
}

func TestRunMissingFile(t *testing.T) {
	r := memReader{"main.tpl": "#include \"nope.tpl\"\n"}
	_, _, err := Run("main.tpl", r)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, IOError, perr.Kind)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
