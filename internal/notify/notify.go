package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/ramanasai/pomo/internal/config"
	"github.com/ramanasai/pomo/internal/logging"
	"github.com/ramanasai/pomo/internal/timer"
)

// Desktop is the alert sink: a desktop notification plus an audible beep.
type Desktop struct {
	cfg config.NotificationConfig
}

func NewDesktop(cfg config.NotificationConfig) *Desktop {
	return &Desktop{cfg: cfg}
}

// PhaseComplete announces that finished ended and next is ready to start.
func (d *Desktop) PhaseComplete(finished, next timer.Phase) {
	if d.cfg.Sound {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			logging.Debugf("beep: %v", err)
		}
	}
	if !d.cfg.Enabled {
		return
	}
	title, msg := FormatPhaseComplete(finished, next)
	if err := beeep.Alert(title, msg, ""); err != nil {
		logging.Debugf("notify: %v", err)
	}
}

func FormatPhaseComplete(finished, next timer.Phase) (string, string) {
	title := "Pomodoro"
	var msg string
	if finished == timer.PhaseWork {
		msg = fmt.Sprintf("Work block done. Time for a %s.", strings.ToLower(next.Label()))
	} else {
		msg = "Break is over. Ready for the next work session?"
	}
	return title, msg
}
