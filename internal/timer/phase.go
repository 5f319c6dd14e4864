package timer

import (
	"fmt"
	"time"
)

// Phase is the timer's current activity mode.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
)

const (
	// CyclesBeforeLong is the number of completed work blocks that earn a long break.
	CyclesBeforeLong = 4
	// LongBreak is fixed and not user-configurable.
	LongBreak = 15 * time.Minute
)

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether p is a short or long break.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Label returns a human readable name for p.
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Work session"
	case PhaseShortBreak:
		return "Short break"
	case PhaseLongBreak:
		return "Long break"
	default:
		return "Unknown"
	}
}

// Durations is the phase-duration table the machine consults on every transition.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns 25/5/15 minutes.
func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  LongBreak,
	}
}

// Of returns the duration configured for p. Unknown phases fall back to Work.
func (d Durations) Of(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return d.ShortBreak
	case PhaseLongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Seconds returns Of(p) in whole seconds.
func (d Durations) Seconds(p Phase) int {
	return int(d.Of(p) / time.Second)
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
