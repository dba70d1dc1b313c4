// Package cmd implements the monoserve command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/monoserve/monoserve/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "monoserve",
	Short: "Launch a server once per configuration and share it",
	Long: `Monoserve coordinates instances of a long-running server process.
Invocations with an identical launch configuration share a single running
instance; anything else launches a new instance without colliding with
others on the same host. Running instances are discovered through a
lock-free descriptor registry under the system temp directory.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/monoserve/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/monoserve")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MONOSERVE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., MONOSERVE_LAUNCH_TIMEOUT_SECONDS for launch.timeout_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
