package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/freshprobe/freshprobe/funcs"
)

// FunctionsCmd lists the template function registry
var FunctionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the template function registry",
	Long: `Display every registered template function, grouped by source family.

Template functions are called as {{name:arg1:arg2:...}} inside templates
and query sandbox artifacts to derive expected answers.`,
	RunE: runFunctions,
}

func runFunctions(cmd *cobra.Command, args []string) error {
	registry := funcs.Default()

	rows := pterm.TableData{{"Function", "Family"}}
	for _, name := range registry.Names() {
		rows = append(rows, []string{name, familyOf(name)})
	}

	pterm.DefaultHeader.Printf("Template functions (%d registered)", len(registry.Names()))
	pterm.Println()
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func familyOf(name string) string {
	switch {
	case strings.HasPrefix(name, "file_"):
		return "text"
	case strings.HasPrefix(name, "csv_"):
		return "csv"
	case strings.HasPrefix(name, "sqlite_"):
		return "sqlite"
	case strings.HasPrefix(name, "yaml_"):
		return "yaml"
	case strings.HasPrefix(name, "json_"):
		return "json"
	default:
		return "custom"
	}
}
