package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/registry"
)

var keyCwd string

var keyCmd = &cobra.Command{
	Use:   "key [flags] -- [server args...]",
	Short: "Print the cache key for a launch configuration",
	Long: `Compute the fingerprint that decides instance equivalence.

Two invocations with the same working directory and the same server
arguments, in the same order, produce the same key and therefore share an
instance. Useful for scripting and for diagnosing why a start did or did
not reuse.`,
	RunE: runKey,
}

func init() {
	keyCmd.Flags().StringVar(&keyCwd, "cwd", "", "working directory to fingerprint (default: current directory)")
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	cwd := keyCwd
	if cwd == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	fmt.Println(registry.CacheKey(cwd, args))
	return nil
}
