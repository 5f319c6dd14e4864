package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/theme"
	"github.com/ramanasai/pomo/internal/timer"
)

// statusCmd prints the timer state and today's totals.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current phase and today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		st := s.State()
		p := theme.Get(s.Theme())
		out := cmd.OutOrStdout()

		state := "paused"
		if s.Interrupted() {
			state = "running elsewhere or interrupted"
		}
		fmt.Fprintf(out, "%s  %s  %s\n",
			p.Label.Render(st.Phase.Label()),
			p.Clock(st.Phase, false).Render(timer.FormatClock(st.Remaining)),
			p.Hint.Render(state))
		fmt.Fprintf(out, "Cycle %d of %d, %d work blocks completed\n", st.Cycle, timer.CyclesBeforeLong, st.TotalCycles)

		set := s.Settings()
		fmt.Fprintf(out, "Work %dm, break %dm, long break %dm\n",
			set.WorkMinutes, set.BreakMinutes, int(timer.LongBreak.Minutes()))

		if today, ok := s.Today(); ok {
			fmt.Fprintf(out, "Today (%s): work %dm, break %dm, %d cycles\n",
				today.Date, today.WorkMinutes(), today.BreakMinutes(), today.Cycles)
		} else {
			fmt.Fprintln(out, "Today: nothing completed yet")
		}
		return nil
	},
}
