package funcs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/freshprobe/freshprobe/errors"
)

// loadDocument decodes a YAML or JSON file into a generic tree. yaml.v3
// accepts JSON as a subset, so one decoder serves both families.
func loadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceNotFound("document does not exist: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse document %s", path)
	}
	return doc, nil
}

// queryDocument parses expr and evaluates it against the document at path.
func queryDocument(expr, path string) ([]interface{}, error) {
	segments, err := parsePath(expr)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return evalPath(doc, segments, expr)
}

// formatValue renders a document node as a substitution string. Scalars
// render plainly; mappings and sequences render as compact JSON.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func formatValues(nodes []interface{}) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = formatValue(node)
	}
	return strings.Join(parts, ",")
}

func twoArgs(name string, args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", errors.NewArgument("%s expects 2 arguments (expr, path), got %d", name, len(args))
	}
	return args[0], args[1], nil
}

// structuredPath evaluates a path expression and returns the matched
// value(s), comma-joined when a wildcard or predicate matched several.
// Args: expr, path.
func structuredPath(args []string) (string, error) {
	expr, path, err := twoArgs("path query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", errors.NewNotFound("path %q matched nothing in %s", expr, path)
	}
	return formatValues(nodes), nil
}

// structuredValue evaluates a path expression that must address exactly
// one value.
// Args: expr, path.
func structuredValue(args []string) (string, error) {
	expr, path, err := twoArgs("value query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", errors.NewNotFound("path %q matched nothing in %s", expr, path)
	}
	if len(nodes) != 1 {
		return "", errors.NewArgument("path %q addresses %d values, expected exactly 1", expr, len(nodes))
	}
	return formatValue(nodes[0]), nil
}

// structuredCount counts matches: a single sequence result counts its
// elements, otherwise the number of matched nodes.
// Args: expr, path.
func structuredCount(args []string) (string, error) {
	expr, path, err := twoArgs("count query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	if len(nodes) == 1 {
		if list, ok := nodes[0].([]interface{}); ok {
			return strconv.Itoa(len(list)), nil
		}
	}
	return strconv.Itoa(len(nodes)), nil
}

// structuredKeys returns the sorted keys of the mapping the expression
// addresses, comma-joined.
// Args: expr, path.
func structuredKeys(args []string) (string, error) {
	expr, path, err := twoArgs("keys query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	if len(nodes) != 1 {
		return "", errors.NewArgument("path %q addresses %d values, keys needs exactly 1 mapping", expr, len(nodes))
	}
	m, ok := nodes[0].(map[string]interface{})
	if !ok {
		return "", errors.NewArgument("path %q does not address a mapping", expr)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ","), nil
}

// structuredCollect returns all matched values comma-joined; matching
// nothing yields an empty string (wildcards over empty sequences are legal).
// Args: expr, path.
func structuredCollect(args []string) (string, error) {
	expr, path, err := twoArgs("collect query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	return formatValues(nodes), nil
}

// numericNodes coerces every matched node to a number for aggregation.
func numericNodes(expr, path string) ([]float64, error) {
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		// Aggregating a single sequence aggregates its elements
		if list, ok := nodes[0].([]interface{}); ok {
			nodes = list
		}
	}
	if len(nodes) == 0 {
		return nil, errors.NewNotFound("path %q matched no values to aggregate in %s", expr, path)
	}

	out := make([]float64, len(nodes))
	for i, node := range nodes {
		f, ok := toFloat(node)
		if !ok {
			return nil, errors.NewArgument("value %s at path %q is not numeric", formatValue(node), expr)
		}
		out[i] = f
	}
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// structuredSum sums all matched numeric values.
// Args: expr, path.
func structuredSum(args []string) (string, error) {
	expr, path, err := twoArgs("sum query", args)
	if err != nil {
		return "", err
	}
	values, err := numericNodes(expr, path)
	if err != nil {
		return "", err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return formatFloat(sum), nil
}

// structuredAvg averages all matched numeric values.
// Args: expr, path.
func structuredAvg(args []string) (string, error) {
	expr, path, err := twoArgs("avg query", args)
	if err != nil {
		return "", err
	}
	values, err := numericNodes(expr, path)
	if err != nil {
		return "", err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return formatFloat(sum / float64(len(values))), nil
}

// structuredMax returns the largest matched numeric value.
// Args: expr, path.
func structuredMax(args []string) (string, error) {
	expr, path, err := twoArgs("max query", args)
	if err != nil {
		return "", err
	}
	values, err := numericNodes(expr, path)
	if err != nil {
		return "", err
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return formatFloat(max), nil
}

// structuredMin returns the smallest matched numeric value.
// Args: expr, path.
func structuredMin(args []string) (string, error) {
	expr, path, err := twoArgs("min query", args)
	if err != nil {
		return "", err
	}
	values, err := numericNodes(expr, path)
	if err != nil {
		return "", err
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return formatFloat(min), nil
}

// structuredFilter returns the elements matching a predicate expression,
// comma-joined (mappings render as compact JSON).
// Args: predexpr, path.
func structuredFilter(args []string) (string, error) {
	expr, path, err := twoArgs("filter query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	return formatValues(nodes), nil
}

// structuredCountWhere counts the elements matching a predicate expression.
// Args: predexpr, path.
func structuredCountWhere(args []string) (string, error) {
	expr, path, err := twoArgs("count_where query", args)
	if err != nil {
		return "", err
	}
	nodes, err := queryDocument(expr, path)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(nodes)), nil
}
