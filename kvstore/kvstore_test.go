package kvstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrips(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put("autosave", []byte(`{"a":1}`)))
	data, ok, err := s.Get("autosave")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestGetMissingKeyReportsNotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteThenGetReportsNotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put("autosave", []byte("x")))
	require.NoError(t, s.Delete("autosave"))

	_, ok, err := s.Get("autosave")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Delete("never-written"))
}

func TestWatchReportsExternalChange(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	changed := make(chan string, 1)
	s.Changed = func(key string) { changed <- key }
	require.NoError(t, s.Watch())
	defer s.Close()

	require.NoError(t, s.Put("autosave", []byte("x")))

	select {
	case key := <-changed:
		assert.Equal(t, "autosave", key)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
