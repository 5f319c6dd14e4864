package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/backup"
)

// importCmd replaces settings, theme and history with the contents of a file.
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace settings, theme and history from an export",
	Long: `Reads a JSON or YAML snapshot written by "pomo export". Settings, theme
and history are replaced as a whole; nothing is merged. A file that cannot be
parsed changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}

		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		if err := s.Import(raw, backup.FormatFor(args[0])); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		snap := s.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Imported: work %dm, break %dm, theme %s, %d days of history.\n",
			snap.Settings.WorkMinutes, snap.Settings.BreakMinutes, snap.Theme, len(snap.History))
		return nil
	},
}
