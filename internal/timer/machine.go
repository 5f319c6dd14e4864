package timer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// State is the persisted snapshot of the timer.
type State struct {
	Remaining   int   `json:"remaining"`
	Phase       Phase `json:"phase"`
	Running     bool  `json:"running"`
	Cycle       int   `json:"cycle"`
	TotalCycles int   `json:"totalCycles"`
}

// Completion describes a phase that just ran to zero.
type Completion struct {
	Phase   Phase
	Seconds int
	Next    Phase
}

// Machine is the phase state machine. It does no I/O and is not safe for
// concurrent use; the scheduler owns the lock.
type Machine struct {
	durations Durations
	state     State
}

// NewMachine returns a machine in the initial state for durations.
func NewMachine(durations Durations) *Machine {
	m := &Machine{durations: durations}
	m.Reset()
	return m
}

// Initial returns the initial state for durations.
func Initial(durations Durations) State {
	return State{
		Remaining: durations.Seconds(PhaseWork),
		Phase:     PhaseWork,
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Durations returns the active duration table.
func (m *Machine) Durations() Durations { return m.durations }

// Reset forces the initial state, clearing totalCycles as well.
func (m *Machine) Reset() {
	m.state = Initial(m.durations)
}

// SetRunning flips the running flag.
func (m *Machine) SetRunning(running bool) {
	m.state.Running = running
}

// SetDurations swaps the duration table. While idle the current phase restarts
// with its new duration; a running countdown is left alone.
func (m *Machine) SetDurations(durations Durations) {
	m.durations = durations
	if !m.state.Running {
		m.state.Remaining = durations.Seconds(m.state.Phase)
	}
}

// Restore adopts a previously persisted state, clamping it into range.
func (m *Machine) Restore(s State) {
	if !s.Phase.Valid() {
		s.Phase = PhaseWork
	}
	if s.Cycle < 0 || s.Cycle >= CyclesBeforeLong {
		s.Cycle = 0
	}
	if s.TotalCycles < 0 {
		s.TotalCycles = 0
	}
	full := m.durations.Seconds(s.Phase)
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	if s.Remaining > full {
		s.Remaining = full
	}
	m.state = s
}

// Tick consumes one second. It reports true once the phase has run out.
func (m *Machine) Tick() bool {
	if m.state.Remaining > 0 {
		m.state.Remaining--
	}
	return m.state.Remaining == 0
}

// Next transitions out of the current phase and returns what was completed.
// The completed phase is credited with its full configured duration.
func (m *Machine) Next() Completion {
	done := Completion{
		Phase:   m.state.Phase,
		Seconds: m.durations.Seconds(m.state.Phase),
	}

	if m.state.Phase == PhaseWork {
		m.state.Cycle++
		m.state.TotalCycles++
		if m.state.Cycle >= CyclesBeforeLong {
			m.state.Phase = PhaseLongBreak
			m.state.Cycle = 0
		} else {
			m.state.Phase = PhaseShortBreak
		}
	} else {
		m.state.Phase = PhaseWork
	}
	m.state.Remaining = m.durations.Seconds(m.state.Phase)

	done.Next = m.state.Phase
	return done
}

// ErrInvalidState is wrapped by DecodeState when a record cannot be used.
var ErrInvalidState = errors.New("invalid timer state")

// DecodeState validates a persisted state record. remaining and phase are
// required; the other fields fall back to zero values when absent or mistyped.
func DecodeState(raw []byte) (State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var s State
	rem, ok := fields["remaining"]
	if !ok || isNull(rem) || json.Unmarshal(rem, &s.Remaining) != nil || s.Remaining < 0 {
		return State{}, fmt.Errorf("%w: remaining", ErrInvalidState)
	}
	ph, ok := fields["phase"]
	if !ok || isNull(ph) || json.Unmarshal(ph, &s.Phase) != nil || !s.Phase.Valid() {
		return State{}, fmt.Errorf("%w: phase", ErrInvalidState)
	}

	if v, ok := fields["running"]; ok {
		_ = json.Unmarshal(v, &s.Running)
	}
	if v, ok := fields["cycle"]; ok {
		if json.Unmarshal(v, &s.Cycle) != nil {
			s.Cycle = 0
		}
	}
	if v, ok := fields["totalCycles"]; ok {
		if json.Unmarshal(v, &s.TotalCycles) != nil {
			s.TotalCycles = 0
		}
	}
	return s, nil
}

// isNull reports a JSON null, which Unmarshal accepts silently.
func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
