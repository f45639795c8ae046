package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wts",
	Short: "Who takes showers? Spin to pick a candidate",
	Long:  "wts is a terminal client for the picker backend. It spins through a project's candidates and lands on the one the server picked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides WTS_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite outcome log (overrides WTS_DB env var)")

	rootCmd.AddCommand(spinCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath returns the config path using --config flag (highest
// priority), then WTS_CONFIG env var, then the default XDG path.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from the config (which WTS_DB overrides), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
