package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tileloom.dev/tileloom/idgen"
)

func newTestEntity(id idgen.ID) Entity {
	return Entity{ID: id, Transform: IdentityTransform(), Appearance: DefaultAppearance()}
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewCanonicalStore()
	s.Add(newTestEntity("a"))
	s.Add(newTestEntity("b"))
	assert.True(t, s.Has("a"))
	assert.Equal(t, 2, s.Len())

	e, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, idgen.ID("a"), e.ID)

	s.Remove("a")
	assert.False(t, s.Has("a"))
	s.Remove("nonexistent") // no-op, must not panic
}

func TestStoreZOrderAndReversedCache(t *testing.T) {
	s := NewCanonicalStore()
	s.Add(newTestEntity("a"))
	s.Add(newTestEntity("b"))
	s.Add(newTestEntity("c"))

	all := s.All()
	assert.Equal(t, []idgen.ID{"a", "b", "c"}, idsOf(all))

	rev := s.AllReversed()
	assert.Equal(t, []idgen.ID{"c", "b", "a"}, idsOf(rev))

	s.SendToBack("c")
	assert.Equal(t, []idgen.ID{"c", "a", "b"}, idsOf(s.All()))

	s.BringToFront("c")
	assert.Equal(t, []idgen.ID{"a", "b", "c"}, idsOf(s.All()))
}

func TestAddAtClampsIndex(t *testing.T) {
	s := NewCanonicalStore()
	s.Add(newTestEntity("a"))
	s.AddAt(newTestEntity("b"), 999)
	assert.Equal(t, []idgen.ID{"a", "b"}, idsOf(s.All()))

	s.AddAt(newTestEntity("c"), -5)
	assert.Equal(t, []idgen.ID{"c", "a", "b"}, idsOf(s.All()))
}

func TestChangedFires(t *testing.T) {
	s := NewCanonicalStore()
	n := 0
	s.Changed.Subscribe(func() { n++ })
	s.Add(newTestEntity("a"))
	s.Remove("a")
	assert.Equal(t, 2, n)
}

func idsOf(es []Entity) []idgen.ID {
	out := make([]idgen.ID, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}
