package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/freshprobe/freshprobe/errors"
)

// DefaultArtifactsDir is used when no artifacts directory is configured.
const DefaultArtifactsDir = "sandbox_artifacts"

// targetFilePattern matches the bare TARGET_FILE keyword (not bracketed).
var targetFilePattern = regexp.MustCompile(`\bTARGET_FILE\b`)

// PathResolver substitutes path variables: {{qs_id}}, {{artifacts}} and the
// TARGET_FILE keyword. It runs before function evaluation, so functions
// always receive concrete paths.
type PathResolver struct {
	questionID   int
	sampleNumber int
	artifactsDir string
	targetFile   string
}

// NewPathResolver creates a resolver for one generation unit. artifactsDir
// may be empty, in which case DefaultArtifactsDir is substituted.
// targetFile may be empty when the entry has no sandbox-generated file;
// referencing TARGET_FILE is then a resolution error.
func NewPathResolver(questionID, sampleNumber int, artifactsDir, targetFile string) *PathResolver {
	return &PathResolver{
		questionID:   questionID,
		sampleNumber: sampleNumber,
		artifactsDir: artifactsDir,
		targetFile:   targetFile,
	}
}

// QSID returns the canonical q{question_id}_s{sample_number} identifier.
func (r *PathResolver) QSID() string {
	return fmt.Sprintf("q%d_s%d", r.questionID, r.sampleNumber)
}

// Resolve substitutes all path variables in tpl.
func (r *PathResolver) Resolve(tpl string) (string, error) {
	tpl = strings.ReplaceAll(tpl, "{{qs_id}}", r.QSID())

	dir := r.artifactsDir
	if dir == "" {
		dir = DefaultArtifactsDir
	}
	tpl = strings.ReplaceAll(tpl, "{{artifacts}}", dir)

	if targetFilePattern.MatchString(tpl) {
		if r.targetFile == "" {
			return "", errors.NewPathResolution(
				"TARGET_FILE referenced but no sandbox-generated file is bound for %s", r.QSID())
		}
		tpl = targetFilePattern.ReplaceAllLiteralString(tpl, r.targetFile)
	}

	return tpl, nil
}
