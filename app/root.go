// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/logger"
)

var (
	configPath string // Path to the configuration directory

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "inkpost",
		Short: "Inkpost is a blogging platform",
		Long: `Inkpost is a blogging platform with a permission checked
settings API, theme management and a public blog index.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
