package funcs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshprobe/freshprobe/errors"
)

const peopleCSV = "name,age,city\nJohn,25,Lisbon\nAlice,30,Osaka\nBob,41,Cusco\n"

func TestCSVValue(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	tests := []struct {
		row    string
		header string
		want   string
	}{
		{"0", "name", "John"},
		{"1", "age", "30"},
		{"2", "city", "Cusco"},
	}

	for _, tt := range tests {
		got, err := csvValue([]string{tt.row, tt.header, path})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCSVValueMissingColumn(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	_, err := csvValue([]string{"0", "salary", path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), `"salary"`)
}

func TestCSVValueRowOutOfRange(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	// The header row does not count as a data row
	_, err := csvValue([]string{"3", "name", path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCSVCell(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	got, err := csvCell([]string{"1", "2", path})
	require.NoError(t, err)
	assert.Equal(t, "Osaka", got)

	_, err = csvCell([]string{"0", "9", path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCSVRow(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	got, err := csvRow([]string{"0", path})
	require.NoError(t, err)
	assert.Equal(t, "John,25,Lisbon", got)
}

func TestCSVColumn(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	got, err := csvColumn([]string{"name", path})
	require.NoError(t, err)
	assert.Equal(t, "John,Alice,Bob", got)
}

func TestCSVArgumentErrors(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)

	tests := []struct {
		name string
		call func() (string, error)
	}{
		{"cell bad row", func() (string, error) { return csvCell([]string{"x", "0", path}) }},
		{"cell negative col", func() (string, error) { return csvCell([]string{"0", "-1", path}) }},
		{"value bad row", func() (string, error) { return csvValue([]string{"minus", "name", path}) }},
		{"row arg count", func() (string, error) { return csvRow([]string{path}) }},
		{"column arg count", func() (string, error) { return csvColumn([]string{"a", "b", path}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrArgument), "got %v", err)
		})
	}
}

func TestCSVMissingFile(t *testing.T) {
	_, err := csvValue([]string{"0", "name", filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
}
