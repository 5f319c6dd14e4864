package schedule

import (
	"sync"
	"time"

	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/logging"
	"github.com/ramanasai/pomo/internal/timer"
)

// Alerter is told when a phase runs out.
type Alerter interface {
	PhaseComplete(finished, next timer.Phase)
}

// Persister makes progress durable. Failures are logged and tolerated.
type Persister interface {
	SaveState(timer.State) error
	SaveHistory([]history.Entry) error
}

// Options configures a Scheduler. Zero values get working defaults.
type Options struct {
	Ticker      Ticker
	Interval    time.Duration
	Persister   Persister
	Alerter     Alerter
	Render      func(timer.State)
	Now         func() time.Time
	AutoAdvance bool
}

// Scheduler drives the phase machine once per second while running and owns
// start/pause/reset. User calls and tick callbacks are serialized by mu;
// render and alert sinks run after mu is released.
type Scheduler struct {
	mu      sync.Mutex
	machine *timer.Machine
	ledger  *history.Ledger
	opts    Options

	stop    func()
	gen     uint64
	failing bool
	owned   bool
}

// New wires a scheduler around machine and ledger.
func New(machine *timer.Machine, ledger *history.Ledger, opts Options) *Scheduler {
	if opts.Ticker == nil {
		opts.Ticker = RealTicker{}
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{machine: machine, ledger: ledger, opts: opts}
}

// SetRender replaces the render sink.
func (s *Scheduler) SetRender(fn func(timer.State)) {
	s.mu.Lock()
	s.opts.Render = fn
	s.mu.Unlock()
}

// State returns the current timer state.
func (s *Scheduler) State() timer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Durations returns the active duration table.
func (s *Scheduler) Durations() timer.Durations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Durations()
}

// Start begins counting down. Calling it while running does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.machine.State().Running {
		s.mu.Unlock()
		return
	}
	s.startLocked()
	s.saveStateLocked()
	st, render := s.machine.State(), s.opts.Render
	s.mu.Unlock()

	emit(render, st)
}

// Pause stops counting down without touching remaining or phase.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	if !s.machine.State().Running {
		s.mu.Unlock()
		return
	}
	s.cancelLocked()
	s.machine.SetRunning(false)
	s.saveStateLocked()
	st, render := s.machine.State(), s.opts.Render
	s.mu.Unlock()

	emit(render, st)
}

// Reset cancels any countdown and returns to the initial state.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	s.cancelLocked()
	s.machine.Reset()
	s.saveStateLocked()
	st, render := s.machine.State(), s.opts.Render
	s.mu.Unlock()

	emit(render, st)
}

// Shutdown cancels the periodic tick but keeps the running flag, so the next
// launch can tell the countdown was interrupted. A scheduler that never ticked
// leaves the stored state alone; another process may own the countdown.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.cancelLocked()
	if s.owned {
		s.saveStateLocked()
	}
	s.mu.Unlock()
}

// ApplyDurations installs a new duration table. See timer.Machine.SetDurations.
func (s *Scheduler) ApplyDurations(d timer.Durations) {
	s.mu.Lock()
	s.machine.SetDurations(d)
	s.saveStateLocked()
	st, render := s.machine.State(), s.opts.Render
	s.mu.Unlock()

	emit(render, st)
}

// History returns ledger entries most recent first.
func (s *Scheduler) History() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Sorted()
}

// Entries returns ledger entries in insertion order.
func (s *Scheduler) Entries() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Entries()
}

// Today returns today's ledger entry.
func (s *Scheduler) Today() (history.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Today(s.opts.Now())
}

// ReplaceHistory swaps the ledger wholesale and persists it.
func (s *Scheduler) ReplaceHistory(entries []history.Entry) {
	s.mu.Lock()
	s.ledger.Replace(entries)
	s.saveHistoryLocked()
	s.mu.Unlock()
}

// ClearHistory drops every ledger entry and persists the empty ledger.
func (s *Scheduler) ClearHistory() {
	s.mu.Lock()
	s.ledger.Clear()
	s.saveHistoryLocked()
	s.mu.Unlock()
}

func (s *Scheduler) startLocked() {
	s.owned = true
	s.machine.SetRunning(true)
	s.gen++
	gen := s.gen
	s.stop = s.opts.Ticker.Every(s.opts.Interval, func() { s.tick(gen) })
}

func (s *Scheduler) cancelLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.gen++
}

func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.machine.State().Running {
		s.mu.Unlock()
		return
	}

	if !s.machine.Tick() {
		s.saveStateLocked()
		st, render := s.machine.State(), s.opts.Render
		s.mu.Unlock()
		emit(render, st)
		return
	}

	s.cancelLocked()
	s.machine.SetRunning(false)

	finished := s.machine.State().Phase
	s.ledger.RecordCompletion(s.opts.Now(), finished, s.machine.Durations().Seconds(finished))
	done := s.machine.Next()
	s.saveHistoryLocked()

	if s.opts.AutoAdvance {
		s.startLocked()
	}
	s.saveStateLocked()
	st, render, alerter := s.machine.State(), s.opts.Render, s.opts.Alerter
	s.mu.Unlock()

	logging.Infof("%s complete, next %s", done.Phase, done.Next)
	if alerter != nil {
		alerter.PhaseComplete(done.Phase, done.Next)
	}
	emit(render, st)
}

func (s *Scheduler) saveStateLocked() {
	if s.opts.Persister == nil {
		return
	}
	s.track(s.opts.Persister.SaveState(s.machine.State()))
}

func (s *Scheduler) saveHistoryLocked() {
	if s.opts.Persister == nil {
		return
	}
	s.track(s.opts.Persister.SaveHistory(s.ledger.Entries()))
}

// track logs the first failure of a streak and the recovery.
func (s *Scheduler) track(err error) {
	switch {
	case err != nil && !s.failing:
		s.failing = true
		logging.Warnf("persist: %v (continuing in memory)", err)
	case err == nil && s.failing:
		s.failing = false
		logging.Infof("persist: storage recovered")
	}
}

func emit(render func(timer.State), st timer.State) {
	if render != nil {
		render(st)
	}
}
