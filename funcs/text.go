package funcs

import (
	"os"
	"strconv"
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// readTextFile loads a text file, distinguishing a missing file from other
// read failures.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewSourceNotFound("file does not exist: %s", path)
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

// parseIndex parses a 1-based index argument.
func parseIndex(arg, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errors.NewArgument("%s %q is not an integer", what, arg)
	}
	if n < 1 {
		return 0, errors.NewArgument("%s must be >= 1, got %d", what, n)
	}
	return n, nil
}

func textLines(content string) []string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// fileLine returns the Nth line of a text file, 1-indexed.
// Args: line number, path.
func fileLine(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.NewArgument("file_line expects 2 arguments (line, path), got %d", len(args))
	}
	n, err := parseIndex(args[0], "line number")
	if err != nil {
		return "", err
	}
	content, err := readTextFile(args[1])
	if err != nil {
		return "", err
	}

	lines := textLines(content)
	if n > len(lines) {
		return "", errors.NewNotFound("line %d beyond end of file %s (%d lines)", n, args[1], len(lines))
	}
	return lines[n-1], nil
}

// fileWord returns the Nth whitespace-separated word of a text file, 1-indexed.
// Args: word number, path.
func fileWord(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.NewArgument("file_word expects 2 arguments (word, path), got %d", len(args))
	}
	n, err := parseIndex(args[0], "word number")
	if err != nil {
		return "", err
	}
	content, err := readTextFile(args[1])
	if err != nil {
		return "", err
	}

	words := strings.Fields(content)
	if n > len(words) {
		return "", errors.NewNotFound("word %d beyond end of file %s (%d words)", n, args[1], len(words))
	}
	return words[n-1], nil
}

// fileLineCount returns the number of lines in a text file.
// Args: path.
func fileLineCount(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.NewArgument("file_line_count expects 1 argument (path), got %d", len(args))
	}
	content, err := readTextFile(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(textLines(content))), nil
}

// fileWordCount returns the number of whitespace-separated words in a text file.
// Args: path.
func fileWordCount(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.NewArgument("file_word_count expects 1 argument (path), got %d", len(args))
	}
	content, err := readTextFile(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(strings.Fields(content))), nil
}
