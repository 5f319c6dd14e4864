package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/timer"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return to a fresh work phase and clear the cycle counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		s.Reset()
		st := s.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Reset. %s %s\n", st.Phase.Label(), timer.FormatClock(st.Remaining))
		return nil
	},
}
