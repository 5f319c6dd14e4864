package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachineStartsInWork(t *testing.T) {
	m := NewMachine(DefaultDurations())
	assert.Equal(t, State{Remaining: 1500, Phase: PhaseWork}, m.State())
}

func TestNextLongBreakAfterFourWorkBlocks(t *testing.T) {
	m := NewMachine(DefaultDurations())

	for i := 1; i < CyclesBeforeLong; i++ {
		done := m.Next()
		require.Equal(t, PhaseWork, done.Phase)
		require.Equal(t, PhaseShortBreak, m.State().Phase)
		require.Equal(t, i, m.State().Cycle)
		require.Equal(t, 300, m.State().Remaining)

		done = m.Next()
		require.Equal(t, PhaseShortBreak, done.Phase)
		require.Equal(t, PhaseWork, m.State().Phase)
	}

	done := m.Next()
	assert.Equal(t, PhaseLongBreak, done.Next)
	assert.Equal(t, PhaseLongBreak, m.State().Phase)
	assert.Equal(t, 0, m.State().Cycle)
	assert.Equal(t, CyclesBeforeLong, m.State().TotalCycles)
	assert.Equal(t, 900, m.State().Remaining)

	m.Next()
	assert.Equal(t, PhaseWork, m.State().Phase)
	assert.Equal(t, 1500, m.State().Remaining)
}

func TestNextCreditsFinishedPhase(t *testing.T) {
	m := NewMachine(Durations{Work: 10 * time.Minute, ShortBreak: 2 * time.Minute, LongBreak: LongBreak})

	done := m.Next()
	assert.Equal(t, Completion{Phase: PhaseWork, Seconds: 600, Next: PhaseShortBreak}, done)

	done = m.Next()
	assert.Equal(t, Completion{Phase: PhaseShortBreak, Seconds: 120, Next: PhaseWork}, done)
}

func TestResetFromAnyCombination(t *testing.T) {
	cases := []State{
		{Remaining: 10, Phase: PhaseWork, Running: true, Cycle: 3, TotalCycles: 11},
		{Remaining: 0, Phase: PhaseShortBreak, Running: false, Cycle: 1, TotalCycles: 1},
		{Remaining: 899, Phase: PhaseLongBreak, Running: true, Cycle: 0, TotalCycles: 8},
	}
	for _, tc := range cases {
		m := NewMachine(DefaultDurations())
		m.Restore(tc)
		m.Reset()
		assert.Equal(t, State{Remaining: 1500, Phase: PhaseWork}, m.State())
	}
}

func TestSetDurationsWhileIdleRestartsPhase(t *testing.T) {
	m := NewMachine(DefaultDurations())
	m.Tick()
	m.Tick()

	m.SetDurations(Durations{Work: 50 * time.Minute, ShortBreak: 10 * time.Minute, LongBreak: LongBreak})
	assert.Equal(t, 3000, m.State().Remaining)
}

func TestSetDurationsWhileRunningKeepsCountdown(t *testing.T) {
	m := NewMachine(DefaultDurations())
	m.SetRunning(true)
	m.Tick()

	m.SetDurations(Durations{Work: 50 * time.Minute, ShortBreak: 10 * time.Minute, LongBreak: LongBreak})
	assert.Equal(t, 1499, m.State().Remaining)

	m.Next()
	assert.Equal(t, 600, m.State().Remaining)
}

func TestTickReportsExhaustion(t *testing.T) {
	m := NewMachine(Durations{Work: 2 * time.Second, ShortBreak: time.Second, LongBreak: LongBreak})
	assert.False(t, m.Tick())
	assert.True(t, m.Tick())
	assert.True(t, m.Tick())
	assert.Equal(t, 0, m.State().Remaining)
}

func TestRestoreClamps(t *testing.T) {
	m := NewMachine(DefaultDurations())
	m.Restore(State{Remaining: 99999, Phase: PhaseShortBreak, Cycle: 7, TotalCycles: -2})
	assert.Equal(t, State{Remaining: 300, Phase: PhaseShortBreak}, m.State())
}

func TestDecodeState(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := DecodeState([]byte(`{"remaining":42,"phase":"longBreak","running":true,"cycle":2,"totalCycles":6}`))
		require.NoError(t, err)
		assert.Equal(t, State{Remaining: 42, Phase: PhaseLongBreak, Running: true, Cycle: 2, TotalCycles: 6}, s)
	})

	t.Run("optional fields mistyped", func(t *testing.T) {
		s, err := DecodeState([]byte(`{"remaining":42,"phase":"work","cycle":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, State{Remaining: 42, Phase: PhaseWork}, s)
	})

	rejected := map[string]string{
		"corrupt":           `{"remaining":`,
		"missing remaining": `{"phase":"work"}`,
		"string remaining":  `{"remaining":"10","phase":"work"}`,
		"missing phase":     `{"remaining":10}`,
		"unknown phase":     `{"remaining":10,"phase":"nap"}`,
		"numeric phase":     `{"remaining":10,"phase":3}`,
		"null remaining":    `{"remaining":null,"phase":"work","cycle":2}`,
		"null phase":        `{"remaining":10,"phase":null}`,
	}
	for name, raw := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeState([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:09", FormatClock(9))
	assert.Equal(t, "00:00", FormatClock(-3))
}
