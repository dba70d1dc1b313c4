package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/monoserve/monoserve/internal/config"
	"github.com/monoserve/monoserve/internal/registry"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of registered server instances",
	Long: `Watch renders the registry as a live-updating table.

The view is read-only: it rescans the registry on an interval and marks
instances whose process has died as stale. Quit with q.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "refresh interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := watchModel{
		store:    store,
		interval: watchInterval,
		spinner:  sp,
	}
	_, err = tea.NewProgram(model).Run()
	return err
}

// watchTickMsg triggers a registry rescan.
type watchTickMsg time.Time

// watchScanMsg carries the result of a rescan.
type watchScanMsg struct {
	instances []listedInstance
	err       error
}

type watchModel struct {
	store    *registry.Store
	interval time.Duration
	spinner  spinner.Model

	loaded    bool
	instances []listedInstance
	scanErr   error
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan)
}

// scan reads the registry and annotates each descriptor with liveness.
func (m watchModel) scan() tea.Msg {
	infos, err := m.store.ReadAll()
	if err != nil {
		return watchScanMsg{err: err}
	}
	listed := make([]listedInstance, 0, len(infos))
	for _, d := range infos {
		listed = append(listed, listedInstance{
			Descriptor: d,
			Alive:      registry.IsProcessAlive(d.PID),
		})
	}
	return watchScanMsg{instances: listed}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case watchTickMsg:
		return m, m.scan

	case watchScanMsg:
		m.loaded = true
		m.instances = msg.instances
		m.scanErr = msg.err
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

var watchFooterStyle = lipgloss.NewStyle().Faint(true)

func (m watchModel) View() string {
	var b strings.Builder

	if !m.loaded {
		b.WriteString(m.spinner.View())
		b.WriteString(" scanning registry...\n")
		return b.String()
	}

	if m.scanErr != nil {
		b.WriteString(fmt.Sprintf("registry scan failed: %v\n", m.scanErr))
	} else if len(m.instances) == 0 {
		b.WriteString("No registered instances\n")
	} else {
		b.WriteString(listHeaderStyle.Render(fmt.Sprintf(
			"%-8s %-6s %-10s %-20s %-7s %s", "PID", "PORT", "VERSION", "STARTED", "STATUS", "LOGDIR")))
		b.WriteString("\n")
		for _, inst := range m.instances {
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
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(watchFooterStyle.Render(fmt.Sprintf("refreshing every %s - q to quit", m.interval)))
	b.WriteString("\n")
	return b.String()
}
