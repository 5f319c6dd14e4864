package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/pomo/internal/timer"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestRecordCompletionAggregatesSameDay(t *testing.T) {
	l := New(nil, time.UTC)

	l.RecordCompletion(day(3, 9), timer.PhaseWork, 1500)
	l.RecordCompletion(day(3, 10), timer.PhaseShortBreak, 300)
	l.RecordCompletion(day(3, 11), timer.PhaseWork, 1200)

	require.Len(t, l.Entries(), 1)
	assert.Equal(t, Entry{Date: "2026-03-03", Work: 2700, Break: 300, Cycles: 2}, l.Entries()[0])
}

func TestRecordCompletionNewDay(t *testing.T) {
	l := New(nil, time.UTC)
	l.RecordCompletion(day(3, 23), timer.PhaseWork, 1500)
	l.RecordCompletion(day(4, 1), timer.PhaseLongBreak, 900)

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Date: "2026-03-03", Work: 1500, Cycles: 1}, entries[0])
	assert.Equal(t, Entry{Date: "2026-03-04", Break: 900}, entries[1])
}

func TestDayKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	l := New(nil, loc)
	assert.Equal(t, "2026-03-04", l.DayKey(day(3, 21)))
}

func TestSortedMostRecentFirst(t *testing.T) {
	l := New([]Entry{{Date: "2026-03-02"}, {Date: "2026-03-05"}, {Date: "2026-03-01"}}, time.UTC)

	sorted := l.Sorted()
	assert.Equal(t, []string{"2026-03-05", "2026-03-02", "2026-03-01"},
		[]string{sorted[0].Date, sorted[1].Date, sorted[2].Date})
	assert.Equal(t, "2026-03-02", l.Entries()[0].Date)
}

func TestReplaceAndClear(t *testing.T) {
	l := New([]Entry{{Date: "2026-03-02", Work: 60, Cycles: 1}}, time.UTC)

	l.Replace([]Entry{{Date: "2026-01-01", Break: 30}})
	assert.Equal(t, []Entry{{Date: "2026-01-01", Break: 30}}, l.Entries())

	l.Clear()
	assert.Empty(t, l.Entries())
}

func TestTodayAndTotals(t *testing.T) {
	l := New(nil, time.UTC)
	_, ok := l.Today(day(3, 8))
	assert.False(t, ok)

	l.RecordCompletion(day(2, 8), timer.PhaseWork, 1500)
	l.RecordCompletion(day(3, 8), timer.PhaseWork, 1500)
	e, ok := l.Today(day(3, 20))
	require.True(t, ok)
	assert.Equal(t, 1, e.Cycles)
	assert.Equal(t, Entry{Work: 3000, Cycles: 2}, l.Totals())
}

func TestDecode(t *testing.T) {
	entries, err := Decode([]byte(`[
		{"date":"2026-03-01","work":1500,"break":300,"cycles":1},
		{"date":"not a date","work":10},
		{"date":"2026-03-02","work":-5},
		{"date":"2026-03-01","work":1500,"cycles":1}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Date: "2026-03-01", Work: 3000, Break: 300, Cycles: 2}}, entries)

	_, err = Decode([]byte(`{"date":"2026-03-01"}`))
	assert.ErrorIs(t, err, ErrInvalidHistory)
}

func TestExportCSV(t *testing.T) {
	entries := []Entry{
		{Date: "2026-03-02", Work: 3000, Break: 90, Cycles: 2},
		{Date: "2026-03-01", Work: 29, Break: 0, Cycles: 0},
	}

	out, err := ExportCSV(entries, HeaderEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Date,Work(min),Break(min),Cycles\n2026-03-02,50,2,2\n2026-03-01,0,0,0\n", out)

	out, err = ExportCSV(nil, HeaderFor("es"))
	require.NoError(t, err)
	assert.Equal(t, "Fecha,Trabajo (min),Descanso (min),Ciclos\n", out)
}

func TestSince(t *testing.T) {
	entries := []Entry{
		{Date: "2026-03-01", Work: 60},
		{Date: "2026-03-03", Work: 120},
		{Date: "2026-03-02", Break: 60},
	}
	got := Since(entries, day(2, 23))
	assert.Equal(t, []Entry{{Date: "2026-03-03", Work: 120}, {Date: "2026-03-02", Break: 60}}, got)
	assert.Equal(t, Entry{Work: 120, Break: 60}, Sum(got))
}
