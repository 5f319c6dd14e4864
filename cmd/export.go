package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/backup"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd writes a {settings, theme, history} snapshot, or the history as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export settings, theme and history",
	Long: `Examples:
	pomo export > backup.json                  # JSON snapshot to stdout
	pomo export --format yaml -o backup.yaml   # YAML snapshot to a file
	pomo export --format csv -o history.csv    # history only, one row per day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		var data []byte
		switch f := strings.ToLower(exportFormat); f {
		case "csv":
			text, err := s.ExportCSV()
			if err != nil {
				return err
			}
			data = []byte(text)
		case string(backup.FormatJSON), string(backup.FormatYAML):
			if data, err = s.Export(backup.Format(f)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want json, yaml or csv)", exportFormat)
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, yaml or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}
