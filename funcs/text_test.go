package funcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshprobe/freshprobe/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileLine(t *testing.T) {
	path := writeFile(t, "data.txt", "A\nB\nC\nD\nE\n")

	tests := []struct {
		line string
		want string
	}{
		{"1", "A"},
		{"3", "C"},
		{"5", "E"},
	}

	for _, tt := range tests {
		got, err := fileLine([]string{tt.line, path})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFileLineOutOfRange(t *testing.T) {
	path := writeFile(t, "data.txt", "A\nB\n")

	_, err := fileLine([]string{"999", path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "999")
}

func TestFileLineArgumentErrors(t *testing.T) {
	path := writeFile(t, "data.txt", "A\n")

	tests := []struct {
		name string
		args []string
	}{
		{"non-integer line", []string{"not_a_number", path}},
		{"zero line", []string{"0", path}},
		{"negative line", []string{"-1", path}},
		{"too few args", []string{"1"}},
		{"too many args", []string{"1", path, "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fileLine(tt.args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrArgument), "got %v", err)
		})
	}
}

func TestFileLineMissingFile(t *testing.T) {
	_, err := fileLine([]string{"1", filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
	assert.False(t, errors.Is(err, errors.ErrArgument), "missing file is not an argument error")
}

func TestFileWord(t *testing.T) {
	path := writeFile(t, "data.txt", "the quick brown\nfox jumps\n")

	got, err := fileWord([]string{"4", path})
	require.NoError(t, err)
	assert.Equal(t, "fox", got)

	_, err = fileWord([]string{"6", path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFileLineCount(t *testing.T) {
	path := writeFile(t, "data.txt", "A\nB\nC\n")

	got, err := fileLineCount([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	// Missing trailing newline does not add a phantom line
	path2 := writeFile(t, "data2.txt", "A\nB\nC")
	got, err = fileLineCount([]string{path2})
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	empty := writeFile(t, "empty.txt", "")
	got, err = fileLineCount([]string{empty})
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestFileWordCount(t *testing.T) {
	path := writeFile(t, "data.txt", "one two\nthree  four five\n")

	got, err := fileWordCount([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "5", got)
}
