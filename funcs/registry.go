// Package funcs implements the template function library: deterministic
// read-only queries over text, CSV, SQLite and YAML/JSON sandbox
// artifacts, dispatched by name from {{function_name:args...}} calls.
//
// Functions are pure: the same arguments against unchanged sources yield
// the same result on every evaluation, so re-evaluating a call (e.g. for
// diagnostics) is always safe.
package funcs

import (
	"sort"

	"github.com/freshprobe/freshprobe/errors"
)

// Func evaluates one template function call. Arguments arrive fully
// resolved (no {{...}} remains) and the result is substituted verbatim.
type Func func(args []string) (string, error)

// Registry is the fixed, enumerable capability map from function name to
// handler, built once at initialization. Unknown names fail the call
// instead of passing the expression through unresolved.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds or replaces a handler.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the handler for name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Call dispatches name with args, failing with an unknown-function error
// for unregistered names.
func (r *Registry) Call(name string, args []string) (string, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return "", errors.NewUnknownFunction(name)
	}
	return fn(args)
}

// Names returns all registered function names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default builds the registry with the full built-in function library.
func Default() *Registry {
	r := NewRegistry()

	// Text files
	r.Register("file_line", fileLine)
	r.Register("file_word", fileWord)
	r.Register("file_line_count", fileLineCount)
	r.Register("file_word_count", fileWordCount)

	// CSV files
	r.Register("csv_cell", csvCell)
	r.Register("csv_row", csvRow)
	r.Register("csv_column", csvColumn)
	r.Register("csv_value", csvValue)

	// SQLite databases
	r.Register("sqlite_query", sqliteQuery)
	r.Register("sqlite_value", sqliteValue)

	// YAML/JSON documents (yaml_* and json_* share one path engine)
	for _, prefix := range []string{"yaml", "json"} {
		r.Register(prefix+"_path", structuredPath)
		r.Register(prefix+"_value", structuredValue)
		r.Register(prefix+"_count", structuredCount)
		r.Register(prefix+"_keys", structuredKeys)
		r.Register(prefix+"_collect", structuredCollect)
		r.Register(prefix+"_sum", structuredSum)
		r.Register(prefix+"_avg", structuredAvg)
		r.Register(prefix+"_max", structuredMax)
		r.Register(prefix+"_min", structuredMin)
		r.Register(prefix+"_filter", structuredFilter)
		r.Register(prefix+"_count_where", structuredCountWhere)
	}

	return r
}
