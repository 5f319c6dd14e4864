package store

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeInt(raw []byte) (int, error) {
	return strconv.Atoi(string(raw))
}

func TestLoadJSONFallbacks(t *testing.T) {
	kv := NewMemory()

	v, err := LoadJSON(kv, "n", decodeInt, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	require.NoError(t, kv.Set("n", "not a number"))
	v, err = LoadJSON(kv, "n", decodeInt, 7)
	assert.Equal(t, 7, v)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "n", perr.Key)

	require.NoError(t, kv.Set("n", "42"))
	v, err = LoadJSON(kv, "n", decodeInt, 7)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSaveJSONSurfacesWriteFailure(t *testing.T) {
	kv := NewMemory()
	kv.FailWrites = true
	assert.Error(t, SaveJSON(kv, KeyTheme, "dusk"))

	kv.FailWrites = false
	require.NoError(t, SaveJSON(kv, KeyTheme, "dusk"))
	raw, ok, err := kv.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"dusk"`, raw)
}

func TestSQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenSQLite(dir)
	require.NoError(t, err)

	_, ok, err := kv.Get(KeyState)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(KeyState, `{"remaining":1}`))
	require.NoError(t, kv.Set(KeyState, `{"remaining":2}`))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(dir)
	require.NoError(t, err)
	defer kv.Close()

	raw, ok, err := kv.Get(KeyState)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"remaining":2}`, raw)

	require.NoError(t, kv.Delete(KeyState))
	_, ok, err = kv.Get(KeyState)
	require.NoError(t, err)
	assert.False(t, ok)
}
