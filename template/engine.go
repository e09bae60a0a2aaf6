package template

import (
	"strings"

	"go.uber.org/zap"

	"github.com/freshprobe/freshprobe/errors"
	"github.com/freshprobe/freshprobe/funcs"
	"github.com/freshprobe/freshprobe/logger"
)

// DefaultMaxPasses bounds evaluation rounds over nested calls. Legitimate
// templates nest two or three levels deep; anything needing more passes is
// pathological or cyclic input.
const DefaultMaxPasses = 10

// Request is one template to resolve for one generation unit.
type Request struct {
	Template     string
	QuestionID   int
	SampleNumber int

	// TargetFile is the sandbox-generated file path for this entry, bound
	// to the TARGET_FILE keyword. Empty when no file was generated.
	TargetFile string

	// Session carries variable bindings. nil means a fresh unseeded
	// session; pass the same session again to reuse bindings across the
	// question text and expected-answer fields of one entry.
	Session *Session
}

// ResolvedTemplate is the full record of one resolution pass.
type ResolvedTemplate struct {
	Original    string
	Substituted string
	SessionID   string

	// Variables maps every distinct variable key to its resolved value.
	Variables map[string]string

	// FunctionResults maps each evaluated call text (braces included) to
	// its result, or to an error description in diagnostic mode.
	FunctionResults map[string]string

	// Errors collects non-fatal failures from a diagnostic pass; empty
	// after a successful Resolve.
	Errors []string
}

// Engine turns templates into resolved question text. It owns no mutable
// state of its own; all per-entry state lives in the Session, so one
// Engine may serve many sequential resolutions.
type Engine struct {
	registry     *funcs.Registry
	pools        *PoolSet
	artifactsDir string
	maxPasses    int
	log          *zap.SugaredLogger
}

// NewEngine creates an engine dispatching calls against registry and
// drawing entities from pools. artifactsDir may be empty to use the
// default.
func NewEngine(registry *funcs.Registry, pools *PoolSet, artifactsDir string) *Engine {
	return &Engine{
		registry:     registry,
		pools:        pools,
		artifactsDir: artifactsDir,
		maxPasses:    DefaultMaxPasses,
		log:          logger.Logger.Named("template.engine"),
	}
}

// SetMaxPasses overrides the evaluation pass limit.
func (e *Engine) SetMaxPasses(n int) {
	if n > 0 {
		e.maxPasses = n
	}
}

// Resolve runs the full pipeline fail-fast: path variables, then
// entity/semantic/numeric variables, then function evaluation. The first
// error aborts resolution of this template; the error names the variable
// or call that failed.
func (e *Engine) Resolve(req Request) (*ResolvedTemplate, error) {
	sess := req.Session
	if sess == nil {
		sess = NewSession()
	}

	res := &ResolvedTemplate{
		Original:        req.Template,
		SessionID:       sess.ID(),
		FunctionResults: make(map[string]string),
	}

	paths := NewPathResolver(req.QuestionID, req.SampleNumber, e.artifactsDir, req.TargetFile)
	s, err := paths.Resolve(req.Template)
	if err != nil {
		return nil, err
	}

	vars := NewVarResolver(sess, e.pools)
	s, err = vars.Resolve(s)
	if err != nil {
		return nil, err
	}

	s, err = e.evalFunctions(s, res, true)
	if err != nil {
		return nil, err
	}

	res.Variables = sess.Bindings()
	res.Substituted = s

	e.log.Debugw("Template resolved",
		"session", sess.ID(),
		"qs_id", paths.QSID(),
		"variables", len(res.Variables),
		"calls", len(res.FunctionResults),
	)
	return res, nil
}

// Inspect runs the same pipeline without aborting: every per-variable and
// per-call failure is recorded instead of raised, so fixtures can assert
// on which specific call failed. Failed calls are replaced with an
// "[error: ...]" marker in the substituted text.
func (e *Engine) Inspect(req Request) *ResolvedTemplate {
	sess := req.Session
	if sess == nil {
		sess = NewSession()
	}

	res := &ResolvedTemplate{
		Original:        req.Template,
		SessionID:       sess.ID(),
		FunctionResults: make(map[string]string),
	}

	paths := NewPathResolver(req.QuestionID, req.SampleNumber, e.artifactsDir, req.TargetFile)
	s, err := paths.Resolve(req.Template)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		// Strip the unresolvable keyword so the remaining passes can proceed
		stripped := targetFilePattern.ReplaceAllLiteralString(req.Template, "")
		s, _ = NewPathResolver(req.QuestionID, req.SampleNumber, e.artifactsDir, "").Resolve(stripped)
	}

	vars := NewVarResolver(sess, e.pools)
	s, varErrs := vars.ResolveCollect(s)
	for _, verr := range varErrs {
		res.Errors = append(res.Errors, verr.Error())
	}

	s, err = e.evalFunctions(s, res, false)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
	}

	res.Variables = sess.Bindings()
	res.Substituted = s
	return res
}

// evalFunctions evaluates all remaining {{...}} call expressions,
// innermost first, in repeated passes until none remain or the pass limit
// trips. Results are substituted for every occurrence of the identical
// call text; functions are pure, so one evaluation stands for all.
func (e *Engine) evalFunctions(s string, res *ResolvedTemplate, failFast bool) (string, error) {
	for pass := 0; pass < e.maxPasses; pass++ {
		spans, err := innermostSpans(s)
		if err != nil {
			return "", err
		}
		if len(spans) == 0 {
			if strings.Contains(s, "{{") {
				// Balanced scan found no innermost span yet braces remain;
				// cannot happen with balanced input, but guard anyway.
				return "", errors.NewParse("no evaluable expression in %q", s)
			}
			return s, nil
		}

		evaluated := make(map[string]string, len(spans))
		for _, sp := range spans {
			callText := "{{" + sp.body + "}}"
			if _, done := evaluated[callText]; done {
				continue
			}

			result, callErr := e.evalCall(sp.body)
			if callErr != nil {
				if failFast {
					return "", errors.Wrapf(callErr, "evaluating %s", callText)
				}
				res.FunctionResults[callText] = "error: " + callErr.Error()
				res.Errors = append(res.Errors, callText+": "+callErr.Error())
				result = "[error: " + callErr.Error() + "]"
			} else {
				res.FunctionResults[callText] = result
			}
			evaluated[callText] = result
		}

		for callText, result := range evaluated {
			s = strings.ReplaceAll(s, callText, result)
		}
	}

	if strings.Contains(s, "{{") {
		return "", errors.NewParse("unresolved expressions after %d passes: %q", e.maxPasses, s)
	}
	return s, nil
}

// evalCall dispatches one brace-free call body against the registry.
func (e *Engine) evalCall(body string) (string, error) {
	name, args, err := splitCall(body)
	if err != nil {
		return "", err
	}
	return e.registry.Call(name, args)
}
