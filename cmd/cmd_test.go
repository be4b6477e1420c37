package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTrack(t *testing.T) {
	out, err := run(t, "track",
		"--offset", "hero=0", "--offset", "about=800", "--offset", "skills=1600",
		"750", "760", "650")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "*"))
	assert.True(t, strings.HasSuffix(lines[0], "about"))
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.True(t, strings.HasSuffix(lines[1], "about"))
	assert.True(t, strings.HasPrefix(lines[2], "*"))
	assert.True(t, strings.HasSuffix(lines[2], "hero"))
}

func TestParseOffsets(t *testing.T) {
	got, err := parseOffsets([]string{"hero=0", "about=812.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"hero": 0, "about": 812.5}, got)

	_, err = parseOffsets([]string{"hero"})
	assert.Error(t, err)
	_, err = parseOffsets([]string{"hero=top"})
	assert.Error(t, err)
}

func TestContentInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yml")

	out, err := run(t, "content", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	out, err = run(t, "content", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, ": ok (2 experience, 2 projects, 4 achievements, 2 education)")

	_, err = run(t, "content", "init", path)
	assert.Error(t, err, "init does not overwrite")

	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - id: 1\n"), 0o644))
	_, err = run(t, "content", "validate", path)
	assert.Error(t, err)
}

func TestContentPrint(t *testing.T) {
	out, err := run(t, "content", "print")
	require.NoError(t, err)
	assert.Contains(t, out, "personalInfo:")
	assert.Contains(t, out, "skillOrder:")
}
