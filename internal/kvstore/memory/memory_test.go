package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Put("theme", "light"))

	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Delete("theme"))
	_, ok, _ = s.Get("theme")
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}
