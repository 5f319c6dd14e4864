package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/pomo/internal/store"
)

func TestDecodePerField(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      Settings
		defaulted []string
	}{
		{"valid", `{"workMinutes":50,"breakMinutes":10}`, Settings{50, 10}, nil},
		{"bad work only", `{"workMinutes":"abc","breakMinutes":10}`, Settings{25, 10}, []string{"workMinutes"}},
		{"zero break", `{"workMinutes":30,"breakMinutes":0}`, Settings{30, 5}, []string{"breakMinutes"}},
		{"fractional", `{"workMinutes":25.5,"breakMinutes":-1}`, Settings{25, 5}, []string{"workMinutes", "breakMinutes"}},
		{"corrupt", `{"workMinutes":`, Settings{25, 5}, []string{"workMinutes", "breakMinutes"}},
		{"missing", `{}`, Settings{25, 5}, []string{"workMinutes", "breakMinutes"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, defaulted := Decode([]byte(tc.raw))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.defaulted, defaulted)
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(" 45 ", "15")
	require.NoError(t, err)
	assert.Equal(t, Settings{WorkMinutes: 45, BreakMinutes: 15}, s)

	for _, in := range [][2]string{{"abc", "5"}, {"25", "0"}, {"-3", "5"}, {"", "5"}, {"2.5", "5"}} {
		_, err := Parse(in[0], in[1])
		assert.ErrorIs(t, err, ErrInvalidMinutes, "input %v", in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.ErrorIs(t, Settings{WorkMinutes: 0, BreakMinutes: 5}.Validate(), ErrInvalidMinutes)
	assert.ErrorIs(t, Settings{WorkMinutes: 5, BreakMinutes: -1}.Validate(), ErrInvalidMinutes)
}

func TestDurations(t *testing.T) {
	d := Settings{WorkMinutes: 50, BreakMinutes: 10}.Durations()
	assert.Equal(t, 50*time.Minute, d.Work)
	assert.Equal(t, 10*time.Minute, d.ShortBreak)
	assert.Equal(t, 15*time.Minute, d.LongBreak)
}

func TestStoreLoadSave(t *testing.T) {
	kv := store.NewMemory()
	st := NewStore(kv)

	s, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	require.NoError(t, kv.Set(store.KeySettings, `{"workMinutes":"abc","breakMinutes":10}`))
	s, err = st.Load()
	assert.Equal(t, Settings{WorkMinutes: 25, BreakMinutes: 10}, s)
	var perr *store.ParseError
	assert.True(t, errors.As(err, &perr))

	require.NoError(t, st.Save(Settings{WorkMinutes: 40, BreakMinutes: 8}))
	s, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{WorkMinutes: 40, BreakMinutes: 8}, s)
}
