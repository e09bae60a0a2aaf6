package funcs

import (
	"strconv"
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// Path expressions address values inside a YAML/JSON document:
//
//	config.db.host           nested keys
//	users[0].name            array index
//	users[*].age             array wildcard
//	users[?age>25].name      comparison predicate
//
// A path is a sequence of segments separated by '.', each an optional key
// followed by zero or more bracket selectors.

type selectorKind int

const (
	selIndex selectorKind = iota
	selWildcard
	selPredicate
)

type selector struct {
	kind  selectorKind
	index int
	pred  predicate
}

type predicate struct {
	field string
	op    string
	value string
}

type pathSegment struct {
	key       string
	selectors []selector
}

// predicate operators, longest first so ">=" wins over ">"
var predicateOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// parsePath parses a path expression into segments. Splitting is character
// driven rather than strings.Split on '.' because predicate values may
// contain dots (e.g. [?price>10.5]).
func parsePath(expr string) ([]pathSegment, error) {
	if expr == "" {
		return nil, errors.NewArgument("empty path expression")
	}

	var segments []pathSegment
	i := 0
	for i < len(expr) {
		var seg pathSegment

		// Key part: up to '.', '[' or end
		start := i
		for i < len(expr) && expr[i] != '.' && expr[i] != '[' {
			i++
		}
		seg.key = expr[start:i]

		// Bracket selectors
		for i < len(expr) && expr[i] == '[' {
			close := strings.IndexByte(expr[i:], ']')
			if close < 0 {
				return nil, errors.NewArgument("unterminated '[' in path %q", expr)
			}
			inner := expr[i+1 : i+close]
			sel, err := parseSelector(inner, expr)
			if err != nil {
				return nil, err
			}
			seg.selectors = append(seg.selectors, sel)
			i += close + 1
		}

		if seg.key == "" && len(seg.selectors) == 0 {
			return nil, errors.NewArgument("empty segment in path %q", expr)
		}
		segments = append(segments, seg)

		if i < len(expr) {
			if expr[i] != '.' {
				return nil, errors.NewArgument("unexpected %q in path %q", string(expr[i]), expr)
			}
			i++
			if i == len(expr) {
				return nil, errors.NewArgument("trailing '.' in path %q", expr)
			}
		}
	}

	return segments, nil
}

func parseSelector(inner, expr string) (selector, error) {
	if inner == "*" {
		return selector{kind: selWildcard}, nil
	}
	if strings.HasPrefix(inner, "?") {
		pred, err := parsePredicate(inner[1:])
		if err != nil {
			return selector{}, errors.Wrapf(err, "in path %q", expr)
		}
		return selector{kind: selPredicate, pred: pred}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return selector{}, errors.NewArgument("selector [%s] in path %q is not an index, '*' or predicate", inner, expr)
	}
	if n < 0 {
		return selector{}, errors.NewArgument("negative index [%d] in path %q", n, expr)
	}
	return selector{kind: selIndex, index: n}, nil
}

func parsePredicate(s string) (predicate, error) {
	for _, op := range predicateOps {
		if idx := strings.Index(s, op); idx > 0 {
			return predicate{
				field: s[:idx],
				op:    op,
				value: s[idx+len(op):],
			}, nil
		}
	}
	return predicate{}, errors.NewArgument("predicate %q has no comparison operator", s)
}

// evalPath evaluates parsed segments against a decoded document, returning
// the matched nodes. A missing key or out-of-range index is a NotFound
// error naming the missing segment; a wildcard or predicate may legally
// match nothing.
func evalPath(root interface{}, segments []pathSegment, expr string) ([]interface{}, error) {
	nodes := []interface{}{root}

	for _, seg := range segments {
		if seg.key != "" {
			var next []interface{}
			for _, node := range nodes {
				m, ok := node.(map[string]interface{})
				if !ok {
					return nil, errors.NewNotFound("segment %q in path %q does not address a mapping", seg.key, expr)
				}
				child, ok := m[seg.key]
				if !ok {
					return nil, errors.NewNotFound("key %q not found (path %q)", seg.key, expr)
				}
				next = append(next, child)
			}
			nodes = next
		}

		for _, sel := range seg.selectors {
			var next []interface{}
			for _, node := range nodes {
				list, ok := node.([]interface{})
				if !ok {
					return nil, errors.NewNotFound("selector on segment %q in path %q does not address a sequence", seg.key, expr)
				}
				switch sel.kind {
				case selIndex:
					if sel.index >= len(list) {
						return nil, errors.NewNotFound("index [%d] beyond end of %q (%d elements, path %q)", sel.index, seg.key, len(list), expr)
					}
					next = append(next, list[sel.index])
				case selWildcard:
					next = append(next, list...)
				case selPredicate:
					for _, el := range list {
						match, err := sel.pred.matches(el)
						if err != nil {
							return nil, errors.Wrapf(err, "path %q", expr)
						}
						if match {
							next = append(next, el)
						}
					}
				}
			}
			nodes = next
		}
	}

	return nodes, nil
}

// matches applies the predicate to one sequence element, comparing the
// named field against the literal. Elements missing the field simply do
// not match; a non-mapping element is an error.
func (p predicate) matches(el interface{}) (bool, error) {
	m, ok := el.(map[string]interface{})
	if !ok {
		return false, errors.NewArgument("predicate [?%s%s%s] applied to non-mapping element", p.field, p.op, p.value)
	}
	fieldVal, ok := m[p.field]
	if !ok {
		return false, nil
	}
	return compareValues(fieldVal, p.op, p.value)
}

// compareValues compares numerically when both sides parse as numbers,
// falling back to string comparison.
func compareValues(fieldVal interface{}, op, literal string) (bool, error) {
	if fn, ok := toFloat(fieldVal); ok {
		if ln, err := strconv.ParseFloat(literal, 64); err == nil {
			return compareFloats(fn, op, ln), nil
		}
	}

	fs := formatValue(fieldVal)
	switch op {
	case "==":
		return fs == literal, nil
	case "!=":
		return fs != literal, nil
	case ">":
		return fs > literal, nil
	case "<":
		return fs < literal, nil
	case ">=":
		return fs >= literal, nil
	case "<=":
		return fs <= literal, nil
	default:
		return false, errors.NewArgument("unknown comparison operator %q", op)
	}
}

func compareFloats(a float64, op string, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
