package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/config"
	"github.com/monoserve/monoserve/internal/registry"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered server instances",
	Long: `List every instance descriptor in the registry.

Instances whose owning process is no longer alive are marked stale: their
descriptor outlived an unclean shutdown. Stale descriptors are reported
but never removed; only the owning process deletes its own descriptor.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().StringVar(&listMatch, "match", "", "only show instances whose logdir matches this glob")
	rootCmd.AddCommand(listCmd)
}

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true)
	listStaleStyle  = lipgloss.NewStyle().Faint(true)
)

// listedInstance is a descriptor annotated with pid liveness for display.
type listedInstance struct {
	*registry.Descriptor
	Alive bool `json:"alive"`
}

func runList(cmd *cobra.Command, args []string) error {
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
	infos, err := store.ReadAll()
	if err != nil {
		return err
	}

	var matcher glob.Glob
	if listMatch != "" {
		matcher, err = glob.Compile(listMatch)
		if err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
	}

	var listed []listedInstance
	for _, d := range infos {
		if matcher != nil && !matcher.Match(d.LogDir) {
			continue
		}
		listed = append(listed, listedInstance{
			Descriptor: d,
			Alive:      registry.IsProcessAlive(d.PID),
		})
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listed)
	}

	if len(listed) == 0 {
		fmt.Println("No registered instances")
		return nil
	}

	fmt.Println(listHeaderStyle.Render(fmt.Sprintf(
		"%-8s %-6s %-10s %-20s %-7s %s", "PID", "PORT", "VERSION", "STARTED", "STATUS", "LOGDIR")))
	for _, inst := range listed {
		status := "alive"
		if !inst.Alive {
			status = "stale"
		}
		line := fmt.Sprintf("%-8d %-6d %-10s %-20s %-7s %s",
			inst.PID, inst.Port, inst.Version,
			formatStartTime(inst.StartTime), status, describeTarget(inst.Descriptor))
		if !inst.Alive {
			line = listStaleStyle.Render(line)
		}
		fmt.Println(line)
	}
	return nil
}

// describeTarget summarizes what the instance is serving.
func describeTarget(d *registry.Descriptor) string {
	var parts []string
	if d.LogDir != "" {
		parts = append(parts, d.LogDir)
	}
	if d.DB != "" {
		parts = append(parts, "db:"+d.DB)
	}
	if d.PathPrefix != "" {
		parts = append(parts, "prefix:"+d.PathPrefix)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
