package template

import (
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// span is one {{...}} expression located in a template. start/end index the
// full expression including braces; body is the text between them.
type span struct {
	start int
	end   int
	body  string
}

// scanSpans locates every balanced {{...}} expression by brace-depth
// counting. A naive non-greedy regex mis-parses arguments that themselves
// contain {{...}} pairs, so matching close braces are found by depth.
// Unbalanced braces are a parse error.
func scanSpans(s string) ([]span, error) {
	var spans []span
	var stack []int

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			stack = append(stack, i)
			i += 2
		case strings.HasPrefix(s[i:], "}}"):
			if len(stack) == 0 {
				return nil, errors.NewParse("unbalanced }} at offset %d", i)
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			spans = append(spans, span{
				start: start,
				end:   i + 2,
				body:  s[start+2 : i],
			})
			i += 2
		default:
			i++
		}
	}

	if len(stack) > 0 {
		return nil, errors.NewParse("unbalanced {{ at offset %d", stack[len(stack)-1])
	}

	return spans, nil
}

// innermostSpans returns the expressions whose body contains no nested
// {{...}}. These are safe to evaluate immediately; outer expressions wait
// for a later pass.
func innermostSpans(s string) ([]span, error) {
	spans, err := scanSpans(s)
	if err != nil {
		return nil, err
	}

	var inner []span
	for _, sp := range spans {
		if !strings.Contains(sp.body, "{{") {
			inner = append(inner, sp)
		}
	}
	return inner, nil
}

// splitArgs splits a call body on ':' at brace depth zero, so colons inside
// nested {{...}} expressions stay with their argument. No escaping of ':'
// exists; arguments whose natural text contains a colon reach functions via
// TARGET_FILE indirection instead.
func splitArgs(body string) []string {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(body); {
		switch {
		case strings.HasPrefix(body[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(body[i:], "}}"):
			depth--
			i += 2
		case body[i] == ':' && depth == 0:
			parts = append(parts, body[start:i])
			start = i + 1
			i++
		default:
			i++
		}
	}

	return append(parts, body[start:])
}

// splitCall separates a call body into function name and arguments.
func splitCall(body string) (string, []string, error) {
	parts := splitArgs(body)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", nil, errors.NewParse("call has empty function name: {{%s}}", body)
	}
	return name, parts[1:], nil
}
