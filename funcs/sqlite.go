package funcs

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/freshprobe/freshprobe/db"
	"github.com/freshprobe/freshprobe/errors"
)

// identPattern restricts table/column arguments to plain identifiers so
// they can be quoted into SQL without injection.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteQuery runs an arbitrary query expected to produce exactly one
// scalar. Multi-row or multi-column results are an error. Because argument
// splitting knows no escaping, any ':' in the query text splits it; all
// arguments except the last are rejoined, the last is the database path.
// Args: query, dbpath.
func sqliteQuery(args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.NewArgument("sqlite_query expects 2 arguments (query, dbpath), got %d", len(args))
	}
	query := strings.Join(args[:len(args)-1], ":")
	path := args[len(args)-1]

	database, err := db.OpenReadOnly(path)
	if err != nil {
		return "", err
	}
	defer database.Close()

	rows, err := database.Query(query)
	if err != nil {
		return "", classifySQLiteError(err, path)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", errors.Wrap(err, "failed to read result columns")
	}
	if len(cols) != 1 {
		return "", errors.NewArgument("query must return a single column, got %d (%s)", len(cols), strings.Join(cols, ", "))
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", errors.Wrap(err, "query failed")
		}
		return "", errors.NewNotFound("query returned no rows: %s", query)
	}

	var value interface{}
	if err := rows.Scan(&value); err != nil {
		return "", errors.Wrap(err, "failed to scan result")
	}

	if rows.Next() {
		return "", errors.NewArgument("query must return a single row: %s", query)
	}

	return formatSQLValue(value), nil
}

// sqliteValue returns the value of a column at the Nth row of a table,
// ordered by rowid. Row is 0-indexed.
// Args: row, column, table, dbpath.
func sqliteValue(args []string) (string, error) {
	if len(args) != 4 {
		return "", errors.NewArgument("sqlite_value expects 4 arguments (row, column, table, dbpath), got %d", len(args))
	}
	rowN, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return "", errors.NewArgument("row index %q is not an integer", args[0])
	}
	if rowN < 0 {
		return "", errors.NewArgument("row index must be >= 0, got %d", rowN)
	}
	column, table := args[1], args[2]
	if !identPattern.MatchString(column) {
		return "", errors.NewArgument("invalid column name %q", column)
	}
	if !identPattern.MatchString(table) {
		return "", errors.NewArgument("invalid table name %q", table)
	}

	database, err := db.OpenReadOnly(args[3])
	if err != nil {
		return "", err
	}
	defer database.Close()

	query := `SELECT "` + column + `" FROM "` + table + `" ORDER BY rowid LIMIT 1 OFFSET ` + strconv.Itoa(rowN)

	var value interface{}
	if err := database.QueryRow(query).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", errors.NewNotFound("row %d beyond end of table %q in %s", rowN, table, args[3])
		}
		return "", classifySQLiteError(err, args[3])
	}

	return formatSQLValue(value), nil
}

// classifySQLiteError maps SQLite's missing-object errors onto the
// engine's error kinds: a missing table is a missing source, a missing
// column is a lookup miss inside an existing source.
func classifySQLiteError(err error, path string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return errors.Mark(errors.Wrapf(err, "in database %s", path), errors.ErrSourceNotFound)
	case strings.Contains(msg, "no such column"):
		return errors.Mark(errors.Wrapf(err, "in database %s", path), errors.ErrNotFound)
	default:
		return errors.Mark(errors.Wrapf(err, "query against %s failed", path), errors.ErrArgument)
	}
}

func formatSQLValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
