package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freshprobe/freshprobe/config"
	"github.com/freshprobe/freshprobe/errors"
)

// ConfigCmd manages freshprobe configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage freshprobe configuration",
	Long: `Manage freshprobe configuration.

Configuration is read from freshprobe.toml in the working directory or
~/.freshprobe/, overridable via FRESHPROBE_* environment variables.

Examples:
  freshprobe config show                       # Show effective configuration
  freshprobe config set artifacts.dir /srv/a   # Persist a value to the user config`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		fmt.Printf("artifacts.dir     = %s\n", cfg.Artifacts.Dir)
		fmt.Printf("pools.file        = %s\n", orUnset(cfg.Pools.File))
		fmt.Printf("engine.max_passes = %d\n", cfg.Engine.MaxPasses)
		fmt.Printf("random.seed       = %d\n", cfg.Random.Seed)
		fmt.Printf("database.path     = %s\n", cfg.Database.Path)
		fmt.Printf("log.json          = %t\n", cfg.Log.JSON)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value to the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetValue(args[0], args[1]); err != nil {
			return errors.Wrapf(err, "failed to set %s", args[0])
		}
		fmt.Printf("set %s = %s in %s\n", args[0], args[1], config.UserConfigPath())
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
