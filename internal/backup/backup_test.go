package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/settings"
	"github.com/ramanasai/pomo/internal/theme"
)

func sample() Snapshot {
	return Snapshot{
		Settings: settings.Settings{WorkMinutes: 50, BreakMinutes: 10},
		Theme:    theme.Forest,
		History: []history.Entry{
			{Date: "2026-10-13", Work: 3000, Break: 600, Cycles: 2},
			{Date: "2026-10-14", Work: 1500, Cycles: 1},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			raw, err := Encode(sample(), f)
			require.NoError(t, err)

			got, err := Decode(raw, f)
			require.NoError(t, err)
			assert.Equal(t, sample(), got)
		})
	}
}

func TestEncodeEmptyHistoryIsList(t *testing.T) {
	raw, err := Encode(Snapshot{Settings: settings.Default(), Theme: theme.Default}, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"history": []`)

	got, err := Decode(raw, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, got.History)
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want error
	}{
		"not json":         {`{settings:`, ErrParse},
		"missing theme":    {`{"settings":{},"history":[]}`, ErrMissingField},
		"null history":     {`{"settings":{},"theme":"dusk","history":null}`, ErrMissingField},
		"unknown theme":    {`{"settings":{},"theme":"neon","history":[]}`, ErrParse},
		"history not list": {`{"settings":{},"theme":"dusk","history":"x"}`, ErrParse},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tc.raw), FormatJSON)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodeSettingsFallBackPerField(t *testing.T) {
	got, err := Decode([]byte(`{"settings":{"workMinutes":"abc","breakMinutes":10},"theme":"mono","history":[]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{WorkMinutes: 25, BreakMinutes: 10}, got.Settings)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("backup.YML"))
	assert.Equal(t, FormatYAML, FormatFor("/tmp/a.yaml"))
	assert.Equal(t, FormatJSON, FormatFor("pomo.json"))
	assert.Equal(t, FormatJSON, FormatFor("noext"))
}
