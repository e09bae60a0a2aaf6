package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freshprobe/freshprobe/config"
	"github.com/freshprobe/freshprobe/errors"
	"github.com/freshprobe/freshprobe/funcs"
	"github.com/freshprobe/freshprobe/template"
)

var (
	questionIDFlag   int
	sampleNumberFlag int
	templateFileFlag string
	targetFileFlag   string
	artifactsDirFlag string
	seedFlag         int64
)

// ResolveCmd resolves a template into final question text
var ResolveCmd = &cobra.Command{
	Use:   "resolve [template]",
	Short: "Resolve a template into question text",
	Long: `Resolve a template's {{...}} expressions into final question text.

The template is taken from the argument, or from --file. Path variables
{{qs_id}} and {{artifacts}} are bound from --question-id/--sample and the
configured artifacts directory; TARGET_FILE is bound from --target-file.

Examples:
  freshprobe resolve '{{entity1:colors}} owns {{number1:2:9}} items' -q 1 -s 1
  freshprobe resolve --file question.tmpl -q 5 -s 2 --target-file sandbox/q5_s2/data.txt
  freshprobe resolve '{{file_line:3:TARGET_FILE}}' -q 5 -s 2 --target-file data.txt --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	for _, cmd := range []*cobra.Command{ResolveCmd, InspectCmd} {
		cmd.Flags().IntVarP(&questionIDFlag, "question-id", "q", 0, "Question ID for {{qs_id}}")
		cmd.Flags().IntVarP(&sampleNumberFlag, "sample", "s", 0, "Sample number for {{qs_id}}")
		cmd.Flags().StringVarP(&templateFileFlag, "file", "f", "", "Read the template from a file")
		cmd.Flags().StringVar(&targetFileFlag, "target-file", "", "Path bound to the TARGET_FILE keyword")
		cmd.Flags().StringVar(&artifactsDirFlag, "artifacts-dir", "", "Override the configured artifacts directory")
		cmd.Flags().Int64Var(&seedFlag, "seed", 0, "Seed the variable binding session for reproducible output")
	}
}

// loadTemplate returns the template text from the positional arg or --file.
func loadTemplate(args []string) (string, error) {
	if templateFileFlag != "" {
		data, err := os.ReadFile(templateFileFlag)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read template file %s", templateFileFlag)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", errors.New("provide a template argument or --file")
}

// buildEngine assembles the engine from configuration plus flag overrides.
func buildEngine() (*template.Engine, *template.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	pools := template.NewPoolSet()
	if cfg.Pools.File != "" {
		pools, err = template.LoadPoolFile(cfg.Pools.File)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load pool file")
		}
	}

	artifactsDir := cfg.Artifacts.Dir
	if artifactsDirFlag != "" {
		artifactsDir = artifactsDirFlag
	}

	engine := template.NewEngine(funcs.Default(), pools, artifactsDir)
	engine.SetMaxPasses(cfg.Engine.MaxPasses)

	seed := cfg.Random.Seed
	if seedFlag != 0 {
		seed = seedFlag
	}
	var sess *template.Session
	if seed != 0 {
		sess = template.NewSeededSession(seed)
	} else {
		sess = template.NewSession()
	}

	return engine, sess, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	tpl, err := loadTemplate(args)
	if err != nil {
		return err
	}

	engine, sess, err := buildEngine()
	if err != nil {
		return err
	}

	res, err := engine.Resolve(template.Request{
		Template:     tpl,
		QuestionID:   questionIDFlag,
		SampleNumber: sampleNumberFlag,
		TargetFile:   targetFileFlag,
		Session:      sess,
	})
	if err != nil {
		return err
	}

	fmt.Println(res.Substituted)
	return nil
}
