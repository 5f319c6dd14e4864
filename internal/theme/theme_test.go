package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	n, err := Parse("dusk")
	require.NoError(t, err)
	assert.Equal(t, Dusk, n)

	_, err = Parse("neon")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestDecode(t *testing.T) {
	n, err := Decode([]byte(`"forest"`))
	require.NoError(t, err)
	assert.Equal(t, Forest, n)

	_, err = Decode([]byte(`forest`))
	assert.Error(t, err)
	_, err = Decode([]byte(`"sepia"`))
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestNextWraps(t *testing.T) {
	assert.Equal(t, Forest, Default.Next())
	assert.Equal(t, Default, Mono.Next())
	assert.Equal(t, Default, Name("bogus").Next())
}

func TestGetEveryNameHasPalette(t *testing.T) {
	for _, n := range Names {
		p := Get(n)
		assert.NotEmpty(t, p.Title.Render("x"), n)
	}
}
