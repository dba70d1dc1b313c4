package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/config"
)

var retractCmd = &cobra.Command{
	Use:   "retract",
	Short: "Remove this process's instance descriptor",
	Long: `Retract removes the calling process's descriptor from the registry.

Invoked by the server process on clean shutdown. Retracting when no
descriptor exists is not an error: the registry is already in the desired
state, for instance after a temp-directory wipe.`,
	RunE: runRetract,
}

func init() {
	rootCmd.AddCommand(retractCmd)
}

func runRetract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	store := newStore(cfg, logger)
	if err := store.Remove(); err != nil {
		return err
	}
	fmt.Println("Descriptor retracted")
	return nil
}
