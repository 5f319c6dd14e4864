// Package session owns the single timer, settings and history instance of a
// process and routes every mutation through the scheduler.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/ramanasai/pomo/internal/backup"
	"github.com/ramanasai/pomo/internal/config"
	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/logging"
	"github.com/ramanasai/pomo/internal/schedule"
	"github.com/ramanasai/pomo/internal/settings"
	"github.com/ramanasai/pomo/internal/store"
	"github.com/ramanasai/pomo/internal/theme"
	"github.com/ramanasai/pomo/internal/timer"
)

// Options wires a Session. KV is required; the rest default sensibly.
// Resume marks an interactive launch that may restart an interrupted
// countdown when the config asks for it.
type Options struct {
	Config  config.Config
	KV      store.KV
	Ticker  schedule.Ticker
	Alerter schedule.Alerter
	Now     func() time.Time
	Resume  bool
}

type Session struct {
	cfg      config.Config
	kv       store.KV
	settings *settings.Store
	sched    *schedule.Scheduler

	mu          sync.Mutex
	current     settings.Settings
	theme       theme.Name
	interrupted bool
}

// OpenDefault opens the SQLite store under cfg.DataDir. When the database
// cannot be opened the session runs in memory only.
func OpenDefault(cfg config.Config, alerter schedule.Alerter, resume bool) (*Session, error) {
	var kv store.KV
	db, err := store.OpenSQLite(cfg.DataDir)
	if err != nil {
		logging.Warnf("storage unavailable, progress will not be saved: %v", err)
		kv = store.NewMemory()
	} else {
		kv = db
	}
	return Open(Options{Config: cfg, KV: kv, Alerter: alerter, Resume: resume})
}

// Open restores settings, theme, history and timer state from opts.KV.
// Malformed records are logged and replaced by defaults.
func Open(opts Options) (*Session, error) {
	if opts.KV == nil {
		return nil, fmt.Errorf("session: kv is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		cfg:      opts.Config,
		kv:       opts.KV,
		settings: settings.NewStore(opts.KV),
	}

	current, err := s.settings.Load()
	logDiscarded(err)
	s.current = current

	fallbackTheme, err := theme.Parse(opts.Config.Theme)
	if err != nil {
		fallbackTheme = theme.Default
	}
	s.theme, err = store.LoadJSON(opts.KV, store.KeyTheme, theme.Decode, fallbackTheme)
	logDiscarded(err)

	entries, err := store.LoadJSON(opts.KV, store.KeyHistory, history.Decode, nil)
	logDiscarded(err)

	durations := current.Durations()
	st, err := store.LoadJSON(opts.KV, store.KeyState, timer.DecodeState, timer.Initial(durations))
	logDiscarded(err)
	s.interrupted = st.Running
	st.Running = false

	machine := timer.NewMachine(durations)
	machine.Restore(st)

	s.sched = schedule.New(machine, history.New(entries, opts.Config.Location()), schedule.Options{
		Ticker:      opts.Ticker,
		Persister:   gateway{kv: opts.KV},
		Alerter:     opts.Alerter,
		Now:         opts.Now,
		AutoAdvance: opts.Config.Timer.AutoAdvance,
	})

	if s.interrupted && opts.Resume {
		if opts.Config.Timer.ResumeOnLaunch {
			logging.Infof("resuming interrupted %s with %s left", st.Phase, timer.FormatClock(machine.State().Remaining))
			s.sched.Start()
		} else {
			logging.Infof("interrupted %s restored paused", st.Phase)
		}
	}
	return s, nil
}

func logDiscarded(err error) {
	if err != nil {
		logging.Debugf("load: %v", err)
	}
}

// Interrupted reports whether the stored state was still running when this
// session opened: a countdown in another process, or one that was cut off.
func (s *Session) Interrupted() bool { return s.interrupted }

// SetRender installs the render sink.
func (s *Session) SetRender(fn func(timer.State)) { s.sched.SetRender(fn) }

func (s *Session) Start() { s.sched.Start() }

func (s *Session) Pause() { s.sched.Pause() }

func (s *Session) Reset() { s.sched.Reset() }

func (s *Session) State() timer.State { return s.sched.State() }

func (s *Session) Durations() timer.Durations { return s.sched.Durations() }

// Settings returns the active settings.
func (s *Session) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ApplySettings validates, persists and activates next.
func (s *Session) ApplySettings(next settings.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.settings.Save(next); err != nil {
		logging.Warnf("save settings: %v", err)
	}
	s.sched.ApplyDurations(next.Durations())
	return nil
}

// Theme returns the active theme.
func (s *Session) Theme() theme.Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme persists and activates name.
func (s *Session) SetTheme(name theme.Name) error {
	if _, err := theme.Parse(string(name)); err != nil {
		return err
	}
	s.mu.Lock()
	s.theme = name
	s.mu.Unlock()

	if err := store.SaveJSON(s.kv, store.KeyTheme, name); err != nil {
		logging.Warnf("save theme: %v", err)
	}
	return nil
}

// History returns entries most recent first.
func (s *Session) History() []history.Entry { return s.sched.History() }

// Today returns today's aggregate.
func (s *Session) Today() (history.Entry, bool) { return s.sched.Today() }

// ClearHistory drops every history entry.
func (s *Session) ClearHistory() { s.sched.ClearHistory() }

// ExportCSV renders the history in storage order with the configured header.
func (s *Session) ExportCSV() (string, error) {
	return history.ExportCSV(s.sched.Entries(), history.HeaderFor(s.cfg.Locale))
}

// Snapshot returns the combined settings, theme and history.
func (s *Session) Snapshot() backup.Snapshot {
	return backup.Snapshot{
		Settings: s.Settings(),
		Theme:    s.Theme(),
		History:  s.sched.Entries(),
	}
}

// Export encodes Snapshot in format f.
func (s *Session) Export(f backup.Format) ([]byte, error) {
	return backup.Encode(s.Snapshot(), f)
}

// Import replaces settings, theme and history wholesale. Nothing changes
// unless the whole file decodes.
func (s *Session) Import(raw []byte, f backup.Format) error {
	snap, err := backup.Decode(raw, f)
	if err != nil {
		return err
	}
	if err := s.SetTheme(snap.Theme); err != nil {
		return err
	}
	s.sched.ReplaceHistory(snap.History)
	return s.ApplySettings(snap.Settings)
}

// Close stops ticking, keeping the running flag for the next launch, and
// releases storage.
func (s *Session) Close() error {
	s.sched.Shutdown()
	return s.kv.Close()
}

// gateway adapts the KV port to the scheduler's Persister.
type gateway struct {
	kv store.KV
}

func (g gateway) SaveState(st timer.State) error {
	return store.SaveJSON(g.kv, store.KeyState, st)
}

func (g gateway) SaveHistory(entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	return store.SaveJSON(g.kv, store.KeyHistory, entries)
}
