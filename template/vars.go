package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// Variable grammars. The suffix after entity/semantic/number only
// distinguishes independent variables; it carries no count semantics.
var (
	entityPattern   = regexp.MustCompile(`\{\{(entity[A-Za-z0-9_]*)(:[A-Za-z_][A-Za-z0-9_]*)?\}\}`)
	semanticPattern = regexp.MustCompile(`\{\{(semantic[A-Za-z0-9_]*):([A-Za-z_][A-Za-z0-9_]*)\}\}`)
	numberPattern   = regexp.MustCompile(`\{\{(number[A-Za-z0-9_]*):([^:{}]+):([^:{}]+)(?::([A-Za-z_]+))?\}\}`)
)

// Numeric format tags for {{numberN:min:max:format}}.
const (
	FormatInteger    = "integer"
	FormatDecimal    = "decimal"
	FormatCurrency   = "currency"
	FormatPercentage = "percentage"
)

// VarResolver substitutes entity, semantic and numeric variables through a
// binding session, so every occurrence of one key gets the same value.
type VarResolver struct {
	session *Session
	pools   *PoolSet
}

// NewVarResolver creates a resolver drawing entities from pools and caching
// bindings in session.
func NewVarResolver(session *Session, pools *PoolSet) *VarResolver {
	return &VarResolver{session: session, pools: pools}
}

// Resolve substitutes all variable placeholders in tpl, failing on the
// first unresolvable key. Each distinct key is resolved exactly once per
// session; all occurrences are replaced with the cached value.
func (r *VarResolver) Resolve(tpl string) (string, error) {
	out, errs := r.resolve(tpl, true)
	if len(errs) > 0 {
		return "", errs[0]
	}
	return out, nil
}

// ResolveCollect substitutes what it can and returns all per-key errors.
// Failed keys are removed from the output so downstream passes do not
// misread them as function calls.
func (r *VarResolver) ResolveCollect(tpl string) (string, []error) {
	return r.resolve(tpl, false)
}

type varMatch struct {
	key       string
	generator func() (string, error)
}

func (r *VarResolver) resolve(tpl string, failFast bool) (string, []error) {
	var errs []error

	for _, m := range r.matches(tpl) {
		var genErr error
		value := r.session.GetOrCreate(m.key, func() string {
			v, err := m.generator()
			if err != nil {
				genErr = err
				return ""
			}
			return v
		})
		if genErr != nil {
			r.session.forget(m.key)
			err := errors.Wrapf(genErr, "resolving {{%s}}", m.key)
			if failFast {
				return "", []error{err}
			}
			errs = append(errs, err)
		}

		tpl = strings.ReplaceAll(tpl, "{{"+m.key+"}}", value)
	}

	return tpl, errs
}

// matches finds every distinct variable placeholder in template order,
// paired with the generator that produces its value on first reference.
func (r *VarResolver) matches(tpl string) []varMatch {
	var out []varMatch
	seen := make(map[string]bool)

	add := func(key string, gen func() (string, error)) {
		if !seen[key] {
			seen[key] = true
			out = append(out, varMatch{key: key, generator: gen})
		}
	}

	for _, m := range entityPattern.FindAllStringSubmatch(tpl, -1) {
		key := m[1] + m[2] // "entity1" or "entity1:colors"
		pool := DefaultPoolName
		if m[2] != "" {
			pool = m[2][1:]
		}
		add(key, func() (string, error) {
			return r.pools.Pick(pool, r.session.Rand())
		})
	}

	for _, m := range semanticPattern.FindAllStringSubmatch(tpl, -1) {
		key := m[1] + ":" + m[2]
		kind := m[2]
		add(key, func() (string, error) {
			return pickSemantic(kind, r.session.Rand())
		})
	}

	for _, m := range numberPattern.FindAllStringSubmatch(tpl, -1) {
		key := m[1] + ":" + m[2] + ":" + m[3]
		format := FormatInteger
		if m[4] != "" {
			key += ":" + m[4]
			format = m[4]
		}
		minArg, maxArg := m[2], m[3]
		add(key, func() (string, error) {
			return r.sampleNumber(minArg, maxArg, format)
		})
	}

	return out
}

// sampleNumber draws uniformly in [min,max] and renders per format.
func (r *VarResolver) sampleNumber(minArg, maxArg, format string) (string, error) {
	switch format {
	case FormatInteger:
		min, err := strconv.Atoi(strings.TrimSpace(minArg))
		if err != nil {
			return "", errors.NewArgument("number min %q is not an integer", minArg)
		}
		max, err := strconv.Atoi(strings.TrimSpace(maxArg))
		if err != nil {
			return "", errors.NewArgument("number max %q is not an integer", maxArg)
		}
		if min > max {
			return "", errors.NewArgument("number range inverted: min %d > max %d", min, max)
		}
		return strconv.Itoa(min + r.session.Rand().Intn(max-min+1)), nil

	case FormatDecimal, FormatCurrency, FormatPercentage:
		min, err := strconv.ParseFloat(strings.TrimSpace(minArg), 64)
		if err != nil {
			return "", errors.NewArgument("number min %q is not numeric", minArg)
		}
		max, err := strconv.ParseFloat(strings.TrimSpace(maxArg), 64)
		if err != nil {
			return "", errors.NewArgument("number max %q is not numeric", maxArg)
		}
		if min > max {
			return "", errors.NewArgument("number range inverted: min %v > max %v", min, max)
		}
		v := min + r.session.Rand().Float64()*(max-min)
		switch format {
		case FormatDecimal:
			return fmt.Sprintf("%.2f", v), nil
		case FormatCurrency:
			return fmt.Sprintf("$%.2f", v), nil
		default:
			return fmt.Sprintf("%.1f%%", v), nil
		}

	default:
		return "", errors.NewArgument("unknown number format %q", format)
	}
}
