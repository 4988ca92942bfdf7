package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/logger"
	"github.com/MikeBiancalana/splitpane/internal/tui"
	"github.com/MikeBiancalana/splitpane/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the command tree. Running the root command launches the
// terminal host.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "splitpane",
		Short: "Splitpane - resizable split layouts in the terminal",
		Long: `A split-pane layout engine with a terminal host.

Panels are described in a YAML layout file (default ~/.splitpane/layout.yaml).
Drag the dividers with the mouse, or select one with tab and move it with
the arrow keys. The layout file is reloaded when it changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "layout file (default ~/.splitpane/layout.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newAllocateCmd(flags))
	cmd.AddCommand(newDragCmd(flags))
	cmd.AddCommand(newRescaleCmd(flags))
	cmd.AddCommand(newInitCmd(flags))

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// runTUI starts the terminal host. Logs go to a file because stderr would
// corrupt the alternate screen.
func runTUI(flags *globalFlags) error {
	cfg := flags.loggerConfig()
	cfg.TUIMode = true
	if err := logger.InitializeWithConfig(cfg); err != nil {
		return err
	}
	defer logger.Close()

	layout, path, err := loadLayout(flags.configPath)
	if err != nil {
		return err
	}

	model := tui.NewModel(layout)
	defer model.Close()

	watcher, err := watch.NewWatcher(path, logger.GetLogger())
	if err != nil {
		logger.Warn("cli: layout watcher unavailable", "error", err)
	} else {
		model.SetWatcher(watcher)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

// loadLayout reads the layout file at path, or the default location when
// path is empty. A missing file yields the built-in default layout. The
// resolved path is returned either way so it can be watched.
func loadLayout(path string) (config.Layout, string, error) {
	if path == "" {
		p, err := config.LayoutPath()
		if err != nil {
			return config.Layout{}, "", err
		}
		path = p
	}

	layout, err := config.LoadLayout(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("cli: no layout file, using default", "path", path)
		return config.DefaultLayout(), path, nil
	}
	if err != nil {
		return config.Layout{}, path, fmt.Errorf("failed to load layout %s: %w", path, err)
	}
	return layout, path, nil
}

// applyLogFlags reconfigures the stderr logger for non-TUI commands.
func applyLogFlags(flags *globalFlags) error {
	if flags.logLevel == "" && flags.logFormat == "" {
		return nil
	}
	return logger.InitializeWithConfig(flags.loggerConfig())
}

// loggerConfig keeps the environment's level and format for flags left
// unset.
func (f *globalFlags) loggerConfig() logger.Config {
	cfg := logger.Config{Level: f.logLevel, Format: f.logFormat}
	if cfg.Level == "" {
		cfg.Level = logger.GetLevel().String()
	}
	if cfg.Format == "" {
		cfg.Format = logger.GetFormat()
	}
	return cfg
}
