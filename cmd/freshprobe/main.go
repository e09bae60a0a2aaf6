package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freshprobe/freshprobe/cmd/freshprobe/commands"
	"github.com/freshprobe/freshprobe/config"
	"github.com/freshprobe/freshprobe/logger"
)

var rootCmd = &cobra.Command{
	Use:   "freshprobe",
	Short: "freshprobe - Anti-memorization test prompt generation",
	Long: `freshprobe - Randomized test prompt generation for language model evaluation.

freshprobe turns prompt templates into randomized questions whose expected
answers are derived from sandbox artifacts (text, CSV, SQLite, YAML/JSON),
so a model cannot answer from memorized training data.

Available commands:
  resolve   - Resolve a template into question text
  inspect   - Diagnostic resolution: record every call outcome without aborting
  functions - List the template function registry
  config    - Manage freshprobe configuration
  version   - Show version information

Examples:
  freshprobe resolve 'Line 3 of {{qs_id}}/data.txt is {{file_line:3:{{artifacts}}/{{qs_id}}/data.txt}}' -q 5 -s 2
  freshprobe inspect --file question.tmpl -q 1 -s 1
  freshprobe functions
  freshprobe config show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// resolve prints the substituted template on stdout; keep logs off it
		if cmd.Name() == "resolve" {
			return logger.InitializeQuiet()
		}
		jsonOutput := false
		if cfg, err := config.Load(); err == nil {
			jsonOutput = cfg.Log.JSON
		}
		return logger.Initialize(jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.FunctionsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
