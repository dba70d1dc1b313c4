package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/config"
	"github.com/monoserve/monoserve/internal/launch"
)

var (
	startTimeout int
	startServer  string
)

var startCmd = &cobra.Command{
	Use:   "start [flags] -- [server args...]",
	Short: "Start a server instance, or reuse a matching one",
	Long: `Start resolves to exactly one of four outcomes:

- reused:    an already-running instance has the same launch configuration;
             nothing is spawned
- launched:  a new server process was spawned and registered itself
- failed:    the spawned process exited before registering (its exit code
             and captured output are reported)
- timed out: the spawned process neither registered nor exited in time;
             it is left running

Arguments after -- are passed to the server executable verbatim, as
separate argv entries. They are also what the launch configuration is
fingerprinted from, so argument order matters.`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().IntVar(&startTimeout, "timeout", 0, "seconds to wait for the server to register (default from config)")
	startCmd.Flags().StringVar(&startServer, "server", "", "server executable to launch (default from config)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	exe := cfg.Server.Command
	if startServer != "" {
		exe = startServer
	}
	timeout := cfg.Launch.Timeout()
	if startTimeout > 0 {
		timeout = time.Duration(startTimeout) * time.Second
	}

	store := newStore(cfg, logger)
	coordinator := launch.New(store, exe, logger.WithComponent("launch"),
		launch.WithPollInterval(cfg.Launch.PollInterval()))

	result, err := coordinator.Start(context.Background(), args, timeout)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case launch.OutcomeReused:
		fmt.Printf("Reusing instance on port %d (pid %d, started %s)\n",
			result.Info.Port, result.Info.PID, formatStartTime(result.Info.StartTime))
		return nil

	case launch.OutcomeLaunched:
		fmt.Printf("Launched instance on port %d (pid %d)\n",
			result.Info.Port, result.Info.PID)
		return nil

	case launch.OutcomeFailed:
		fmt.Printf("Server exited with code %d before registering.\n", result.ExitCode)
		printCapture("stdout", result.Stdout)
		printCapture("stderr", result.Stderr)
		return fmt.Errorf("server failed to start (exit code %d)", result.ExitCode)

	case launch.OutcomeTimedOut:
		fmt.Printf("Server (pid %d) did not register within %s; it was left running.\n",
			result.PID, timeout)
		fmt.Printf("Captured output: %s, %s\n", result.StdoutPath, result.StderrPath)
		return fmt.Errorf("timed out waiting for server to register")
	}
	return nil
}

func printCapture(name, content string) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return
	}
	fmt.Printf("--- captured %s ---\n%s\n", name, content)
}

func formatStartTime(epoch int64) string {
	return time.Unix(epoch, 0).Format("2006-01-02 15:04:05")
}
