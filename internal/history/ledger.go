package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ramanasai/pomo/internal/timer"
)

// DateLayout is the calendar key of an entry.
const DateLayout = "2006-01-02"

// Entry aggregates one calendar day of completed phases. Work and Break are seconds.
type Entry struct {
	Date   string `json:"date"`
	Work   int    `json:"work"`
	Break  int    `json:"break"`
	Cycles int    `json:"cycles"`
}

// WorkMinutes rounds Work to the nearest minute.
func (e Entry) WorkMinutes() int { return roundMinutes(e.Work) }

// BreakMinutes rounds Break to the nearest minute.
func (e Entry) BreakMinutes() int { return roundMinutes(e.Break) }

func roundMinutes(seconds int) int {
	return int((float64(seconds) / 60) + 0.5)
}

// Ledger is the per-day log of completed phases. It is the only writer of its
// entries and performs no I/O; callers persist Entries after each change.
type Ledger struct {
	entries []Entry
	loc     *time.Location
}

// New builds a ledger over entries in insertion order. Days are cut in loc.
func New(entries []Entry, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	return &Ledger{entries: append([]Entry(nil), entries...), loc: loc}
}

// DayKey returns the entry key for t.
func (l *Ledger) DayKey(t time.Time) string {
	return t.In(l.loc).Format(DateLayout)
}

// RecordCompletion credits a finished phase to the entry for now. Work phases
// also count one cycle.
func (l *Ledger) RecordCompletion(now time.Time, phase timer.Phase, seconds int) Entry {
	key := l.DayKey(now)
	idx := l.indexOf(key)
	if idx < 0 {
		l.entries = append(l.entries, Entry{Date: key})
		idx = len(l.entries) - 1
	}

	e := &l.entries[idx]
	if phase == timer.PhaseWork {
		e.Work += seconds
		e.Cycles++
	} else {
		e.Break += seconds
	}
	return *e
}

// Today returns today's entry, if any phase completed today.
func (l *Ledger) Today(now time.Time) (Entry, bool) {
	if idx := l.indexOf(l.DayKey(now)); idx >= 0 {
		return l.entries[idx], true
	}
	return Entry{}, false
}

// Entries returns a copy in insertion order.
func (l *Ledger) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Sorted returns a copy ordered most recent day first.
func (l *Ledger) Sorted() []Entry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Replace swaps the whole ledger; there is no merge.
func (l *Ledger) Replace(entries []Entry) {
	l.entries = append([]Entry(nil), entries...)
}

// Clear drops every entry.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Totals sums every entry.
func (l *Ledger) Totals() Entry { return Sum(l.entries) }

// Sum adds up entries; the result has no Date.
func Sum(entries []Entry) Entry {
	var t Entry
	for _, e := range entries {
		t.Work += e.Work
		t.Break += e.Break
		t.Cycles += e.Cycles
	}
	return t
}

// Since keeps the entries dated on or after the calendar day of from.
func Since(entries []Entry, from time.Time) []Entry {
	key := from.Format(DateLayout)
	var out []Entry
	for _, e := range entries {
		if e.Date >= key {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) indexOf(key string) int {
	for i, e := range l.entries {
		if e.Date == key {
			return i
		}
	}
	return -1
}

// ErrInvalidHistory is wrapped by Decode.
var ErrInvalidHistory = errors.New("invalid history record")

// Decode validates a persisted history list. Entries without a parsable date
// or with negative totals are dropped; duplicate dates are folded together.
func Decode(raw []byte) ([]Entry, error) {
	var list []Entry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHistory, err)
	}

	out := make([]Entry, 0, len(list))
	seen := map[string]int{}
	for _, e := range list {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			continue
		}
		if e.Work < 0 || e.Break < 0 || e.Cycles < 0 {
			continue
		}
		if i, ok := seen[e.Date]; ok {
			out[i].Work += e.Work
			out[i].Break += e.Break
			out[i].Cycles += e.Cycles
			continue
		}
		seen[e.Date] = len(out)
		out = append(out, e)
	}
	return out, nil
}
