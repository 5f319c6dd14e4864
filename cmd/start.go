package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/session"
	"github.com/ramanasai/pomo/internal/theme"
	"github.com/ramanasai/pomo/internal/timer"
)

// startCmd runs the current phase in the foreground. Ctrl-C pauses it so a
// later start (or the TUI) picks up where it stopped.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the current phase in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(true)
		if err != nil {
			return err
		}
		defer closeSession(s)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		runForeground(ctx, s, cmd.OutOrStdout())
		return nil
	},
}

// runForeground counts down the current phase until it completes or ctx is
// done. The phase that follows is left paused, even with auto-advance on.
func runForeground(ctx context.Context, s *session.Session, out io.Writer) {
	palette := theme.Get(s.Theme())
	ran := s.State().Phase
	finished := make(chan timer.State, 1)
	var once sync.Once

	s.SetRender(func(st timer.State) {
		fmt.Fprintf(out, "\r%s  %s ", palette.Label.Render(st.Phase.Label()), palette.Clock(st.Phase, false).Render(timer.FormatClock(st.Remaining)))
		if st.Phase != ran {
			once.Do(func() { finished <- st })
		}
	})

	s.Start()

	select {
	case st := <-finished:
		s.SetRender(nil)
		s.Pause()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s done. Next: %s (%s). Run `pomo start` to begin.\n",
			ran.Label(), st.Phase.Label(), timer.FormatClock(st.Remaining))
	case <-ctx.Done():
		s.SetRender(nil)
		s.Pause()
		st := s.State()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Paused %s at %s.\n", st.Phase.Label(), timer.FormatClock(st.Remaining))
	}
}
