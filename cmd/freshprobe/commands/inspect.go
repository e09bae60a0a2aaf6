package commands

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/freshprobe/freshprobe/template"
)

// InspectCmd runs a diagnostic resolution that records every outcome
var InspectCmd = &cobra.Command{
	Use:   "inspect [template]",
	Short: "Diagnostic resolution: record every variable and call outcome",
	Long: `Resolve a template in diagnostic mode: instead of aborting on the first
failure, every variable binding and function call outcome (including
errors) is recorded and displayed.

Examples:
  freshprobe inspect '{{file_line:99:missing.txt}} {{entity1}}' -q 1 -s 1
  freshprobe inspect --file question.tmpl -q 5 -s 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	tpl, err := loadTemplate(args)
	if err != nil {
		return err
	}

	engine, sess, err := buildEngine()
	if err != nil {
		return err
	}

	res := engine.Inspect(template.Request{
		Template:     tpl,
		QuestionID:   questionIDFlag,
		SampleNumber: sampleNumberFlag,
		TargetFile:   targetFileFlag,
		Session:      sess,
	})

	pterm.DefaultSection.Println("Substituted template")
	pterm.Println(res.Substituted)

	if len(res.Variables) > 0 {
		pterm.DefaultSection.Println("Variable bindings")
		rows := pterm.TableData{{"Key", "Value"}}
		keys := make([]string, 0, len(res.Variables))
		for k := range res.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []string{k, res.Variables[k]})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
	}

	if len(res.FunctionResults) > 0 {
		pterm.DefaultSection.Println("Function calls")
		rows := pterm.TableData{{"Call", "Result"}}
		calls := make([]string, 0, len(res.FunctionResults))
		for c := range res.FunctionResults {
			calls = append(calls, c)
		}
		sort.Strings(calls)
		for _, c := range calls {
			rows = append(rows, []string{c, res.FunctionResults[c]})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
	}

	if len(res.Errors) > 0 {
		pterm.Println()
		for _, e := range res.Errors {
			pterm.Error.Println(e)
		}
	} else {
		pterm.Println()
		pterm.Success.Println("Template resolved without errors")
	}

	return nil
}
