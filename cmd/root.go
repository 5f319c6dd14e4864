package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/config"
	"github.com/ramanasai/pomo/internal/logging"
	"github.com/ramanasai/pomo/internal/notify"
	"github.com/ramanasai/pomo/internal/session"
)

var (
	configPath string
	verbosity  int
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "Pomodoro timer with daily history",
	Long: `pomo runs work / break cycles (25/5 by default, a 15 minute long break
after every fourth work block) and keeps a per-day history of completed phases.

Run without arguments to open the interactive timer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("verbose") {
			logging.SetVerbosity(verbosity)
			return nil
		}
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			logging.Warnf("config: %v", err)
		}
		logging.SetLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/pomo/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	rootCmd.AddCommand(tuiCmd, startCmd, statusCmd, resetCmd, settingsCmd, themeCmd,
		historyCmd, exportCmd, importCmd, versionCmd)
}

// openSession opens the session on the configured data dir with desktop alerts.
// Only the commands that drive the countdown pass resume.
func openSession(resume bool) (*session.Session, error) {
	return session.OpenDefault(cfg, notify.NewDesktop(cfg.Notifications), resume)
}

func closeSession(s *session.Session) {
	if err := s.Close(); err != nil {
		logging.Warnf("close: %v", err)
	}
}
