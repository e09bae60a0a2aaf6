package funcs

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// csvTable is a parsed CSV file: header row plus data rows. Row 0 of the
// data rows is the first row after the header.
type csvTable struct {
	header []string
	rows   [][]string
}

func readCSVFile(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceNotFound("CSV file does not exist: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NewNotFound("CSV %s is empty", path)
	}

	return &csvTable{header: records[0], rows: records[1:]}, nil
}

// parseRowIndex parses a 0-based data-row index argument.
func parseRowIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errors.NewArgument("row index %q is not an integer", arg)
	}
	if n < 0 {
		return 0, errors.NewArgument("row index must be >= 0, got %d", n)
	}
	return n, nil
}

func (t *csvTable) row(n int, path string) ([]string, error) {
	if n >= len(t.rows) {
		return nil, errors.NewNotFound("row %d beyond end of CSV %s (%d data rows)", n, path, len(t.rows))
	}
	return t.rows[n], nil
}

func (t *csvTable) columnIndex(name, path string) (int, error) {
	for i, h := range t.header {
		if h == name {
			return i, nil
		}
	}
	return 0, errors.NewNotFound("column %q not in CSV %s (headers: %s)", name, path, strings.Join(t.header, ", "))
}

// csvCell returns the cell at (row, col), both 0-indexed; the header row is
// excluded from row counting.
// Args: row, col, path.
func csvCell(args []string) (string, error) {
	if len(args) != 3 {
		return "", errors.NewArgument("csv_cell expects 3 arguments (row, col, path), got %d", len(args))
	}
	rowN, err := parseRowIndex(args[0])
	if err != nil {
		return "", err
	}
	colN, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return "", errors.NewArgument("column index %q is not an integer", args[1])
	}
	if colN < 0 {
		return "", errors.NewArgument("column index must be >= 0, got %d", colN)
	}

	table, err := readCSVFile(args[2])
	if err != nil {
		return "", err
	}
	row, err := table.row(rowN, args[2])
	if err != nil {
		return "", err
	}
	if colN >= len(row) {
		return "", errors.NewNotFound("column %d beyond end of row %d in CSV %s (%d columns)", colN, rowN, args[2], len(row))
	}
	return row[colN], nil
}

// csvRow returns the Nth data row joined with commas.
// Args: row, path.
func csvRow(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.NewArgument("csv_row expects 2 arguments (row, path), got %d", len(args))
	}
	rowN, err := parseRowIndex(args[0])
	if err != nil {
		return "", err
	}
	table, err := readCSVFile(args[1])
	if err != nil {
		return "", err
	}
	row, err := table.row(rowN, args[1])
	if err != nil {
		return "", err
	}
	return strings.Join(row, ","), nil
}

// csvColumn returns all values of the named column joined with commas.
// Args: header, path.
func csvColumn(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.NewArgument("csv_column expects 2 arguments (header, path), got %d", len(args))
	}
	table, err := readCSVFile(args[1])
	if err != nil {
		return "", err
	}
	col, err := table.columnIndex(args[0], args[1])
	if err != nil {
		return "", err
	}

	values := make([]string, 0, len(table.rows))
	for _, row := range table.rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return strings.Join(values, ","), nil
}

// csvValue returns the value at (row, header), looking the column up by name.
// Args: row, header, path.
func csvValue(args []string) (string, error) {
	if len(args) != 3 {
		return "", errors.NewArgument("csv_value expects 3 arguments (row, header, path), got %d", len(args))
	}
	rowN, err := parseRowIndex(args[0])
	if err != nil {
		return "", err
	}
	table, err := readCSVFile(args[2])
	if err != nil {
		return "", err
	}
	col, err := table.columnIndex(args[1], args[2])
	if err != nil {
		return "", err
	}
	row, err := table.row(rowN, args[2])
	if err != nil {
		return "", err
	}
	if col >= len(row) {
		return "", errors.NewNotFound("row %d in CSV %s has no value for column %q", rowN, args[2], args[1])
	}
	return row[col], nil
}
