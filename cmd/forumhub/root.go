package main

import (
	"github.com/spf13/cobra"

	"github.com/forumhub/forumhub/internal/config"
	"github.com/forumhub/forumhub/internal/xdg"
)

// Global flags available to all subcommands.
var (
	configFile string
	envFile    string
)

// NewRootCmd creates the root command for the ForumHub CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forumhub",
		Short: "ForumHub - forum user accounts and authentication",
		Long: `ForumHub serves user registration, login, token refresh and logout
over HTTP, backed by PostgreSQL and an optional Redis token store.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/forumhub/config.yaml if present)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file with FORUMHUB_ variables")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}

// configOptions collects the configuration sources for cmd.
func configOptions(cmd *cobra.Command) config.Options {
	file := configFile
	if file == "" {
		file = xdg.DefaultConfigFile()
	}
	return config.Options{
		File:    file,
		EnvFile: envFile,
		Flags:   cmd.Flags(),
	}
}
