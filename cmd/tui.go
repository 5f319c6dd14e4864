package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/logging"
	"github.com/ramanasai/pomo/internal/store"
	"github.com/ramanasai/pomo/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	// the alt screen owns stderr while the TUI runs
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logging.SetOutput(f)
		defer logging.SetOutput(os.Stderr)
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer closeSession(s)

	return ui.Run(s, cfg)
}

func openLogFile() (*os.File, error) {
	dir := cfg.DataDir
	if dir == "" {
		d, err := store.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "pomo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
