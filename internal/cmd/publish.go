package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/config"
	"github.com/monoserve/monoserve/internal/registry"
	"github.com/monoserve/monoserve/internal/version"
)

var (
	publishPort       int
	publishVersion    string
	publishPathPrefix string
	publishLogDir     string
	publishDB         string
	publishCwd        string
)

var publishCmd = &cobra.Command{
	Use:   "publish [flags] -- [server args...]",
	Short: "Publish this process's instance descriptor",
	Long: `Publish writes the calling process's descriptor to the registry.

This is invoked by the server process itself, once it has finished
initializing and is ready to serve, with the same argument list it was
launched with. Pair it with 'monoserve retract' on clean shutdown.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().IntVar(&publishPort, "port", 0, "port the instance is serving on (required)")
	publishCmd.Flags().StringVar(&publishVersion, "version", version.Version, "software version to record")
	publishCmd.Flags().StringVar(&publishPathPrefix, "path-prefix", "", "URL path prefix the instance serves under")
	publishCmd.Flags().StringVar(&publishLogDir, "logdir", "", "log/data directory the instance was pointed at")
	publishCmd.Flags().StringVar(&publishDB, "db", "", "database path the instance was pointed at")
	publishCmd.Flags().StringVar(&publishCwd, "cwd", "", "working directory the instance was launched from (default: current directory)")
	_ = publishCmd.MarkFlagRequired("port")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	cwd := publishCwd
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	desc := &registry.Descriptor{
		CacheKey:   registry.CacheKey(cwd, args),
		DB:         publishDB,
		LogDir:     publishLogDir,
		PathPrefix: publishPathPrefix,
		PID:        os.Getpid(),
		Port:       publishPort,
		StartTime:  time.Now().UTC().Unix(),
		Version:    publishVersion,
	}

	store := newStore(cfg, logger)
	if err := store.Write(desc); err != nil {
		return err
	}
	fmt.Printf("Published descriptor for pid %d (port %d)\n", desc.PID, desc.Port)
	return nil
}
