package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/pomo/internal/store"
	"github.com/ramanasai/pomo/internal/timer"
)

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// ErrInvalidMinutes is returned for non-numeric or non-positive minute input.
var ErrInvalidMinutes = errors.New("minutes must be a whole number greater than zero")

// Settings are the user-configurable phase durations.
type Settings struct {
	WorkMinutes  int `json:"workMinutes" yaml:"workMinutes"`
	BreakMinutes int `json:"breakMinutes" yaml:"breakMinutes"`
}

// Default returns 25/5.
func Default() Settings {
	return Settings{WorkMinutes: DefaultWorkMinutes, BreakMinutes: DefaultBreakMinutes}
}

// Validate rejects non-positive minutes.
func (s Settings) Validate() error {
	if s.WorkMinutes <= 0 {
		return fmt.Errorf("work: %w", ErrInvalidMinutes)
	}
	if s.BreakMinutes <= 0 {
		return fmt.Errorf("break: %w", ErrInvalidMinutes)
	}
	return nil
}

// Durations returns the phase-duration table for these settings.
func (s Settings) Durations() timer.Durations {
	return timer.Durations{
		Work:       time.Duration(s.WorkMinutes) * time.Minute,
		ShortBreak: time.Duration(s.BreakMinutes) * time.Minute,
		LongBreak:  timer.LongBreak,
	}
}

// Parse validates raw user input.
func Parse(work, brk string) (Settings, error) {
	w, err := parseMinutes(work)
	if err != nil {
		return Settings{}, fmt.Errorf("work: %w", err)
	}
	b, err := parseMinutes(brk)
	if err != nil {
		return Settings{}, fmt.Errorf("break: %w", err)
	}
	return Settings{WorkMinutes: w, BreakMinutes: b}, nil
}

func parseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrInvalidMinutes
	}
	return n, nil
}

// Decode reads a stored settings record field by field. Each missing,
// mistyped or non-positive field takes its default; the others are kept.
// The returned slice names the defaulted fields.
func Decode(raw []byte) (Settings, []string) {
	s := Default()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, []string{"workMinutes", "breakMinutes"}
	}

	var defaulted []string
	if n, ok := positive(fields["workMinutes"]); ok {
		s.WorkMinutes = n
	} else {
		defaulted = append(defaulted, "workMinutes")
	}
	if n, ok := positive(fields["breakMinutes"]); ok {
		s.BreakMinutes = n
	} else {
		defaulted = append(defaulted, "breakMinutes")
	}
	return s, defaulted
}

func positive(raw json.RawMessage) (int, bool) {
	if raw == nil {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Store loads and saves settings through the persistence gateway.
type Store struct {
	kv store.KV
}

// NewStore wraps kv.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load never fails: problems are reported through the returned error for
// logging while a fully populated Settings is still returned.
func (st *Store) Load() (Settings, error) {
	var defaulted []string
	s, err := store.LoadJSON(st.kv, store.KeySettings, func(raw []byte) (Settings, error) {
		var s Settings
		s, defaulted = Decode(raw)
		return s, nil
	}, Default())
	if err != nil {
		return s, err
	}
	if len(defaulted) > 0 {
		return s, &store.ParseError{
			Key: store.KeySettings,
			Err: fmt.Errorf("defaulted %s", strings.Join(defaulted, ", ")),
		}
	}
	return s, nil
}

// Save persists s verbatim; callers validate first.
func (st *Store) Save(s Settings) error {
	return store.SaveJSON(st.kv, store.KeySettings, s)
}
