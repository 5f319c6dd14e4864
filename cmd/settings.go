package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/settings"
	"github.com/ramanasai/pomo/internal/timer"
)

var (
	settingsWork  string
	settingsBreak string
)

// settingsCmd shows or changes the work and break durations.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change work/break minutes",
	Long: `Examples:
	pomo settings                       # show current durations
	pomo settings --work 50 --break 10  # change both
	pomo settings --break 3             # change one, keep the other`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		out := cmd.OutOrStdout()
		current := s.Settings()
		if !cmd.Flags().Changed("work") && !cmd.Flags().Changed("break") {
			fmt.Fprintf(out, "work: %d min\nbreak: %d min\nlong break: %d min (fixed)\n",
				current.WorkMinutes, current.BreakMinutes, int(timer.LongBreak.Minutes()))
			return nil
		}

		work, brk := strconv.Itoa(current.WorkMinutes), strconv.Itoa(current.BreakMinutes)
		if cmd.Flags().Changed("work") {
			work = settingsWork
		}
		if cmd.Flags().Changed("break") {
			brk = settingsBreak
		}
		next, err := settings.Parse(work, brk)
		if err != nil {
			return err
		}
		if err := s.ApplySettings(next); err != nil {
			return err
		}

		fmt.Fprintf(out, "Saved: work %d min, break %d min.\n", next.WorkMinutes, next.BreakMinutes)
		if s.State().Running {
			fmt.Fprintln(out, "The running countdown keeps its length; new durations apply from the next phase.")
		}
		return nil
	},
}

func init() {
	settingsCmd.Flags().StringVarP(&settingsWork, "work", "w", "", "Work minutes (positive whole number)")
	settingsCmd.Flags().StringVarP(&settingsBreak, "break", "b", "", "Short break minutes (positive whole number)")
}
