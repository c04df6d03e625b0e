package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/idgen"
)

func setupGroupTest() (*CanonicalStore, *EntityGroupIndex) {
	s := NewCanonicalStore()
	s.Add(Entity{ID: "a", LayerID: "layer1", Transform: IdentityTransform()})
	s.Add(Entity{ID: "b", LayerID: "layer1", Transform: IdentityTransform()})
	s.Add(Entity{ID: "c", LayerID: "layer2", Transform: IdentityTransform()})
	return s, NewEntityGroupIndex(s, idgen.NewGenerator())
}

func TestGroupCreateRequiresTwoMembers(t *testing.T) {
	_, gi := setupGroupTest()
	_, err := gi.Create([]idgen.ID{"a"}, "solo")
	require.ErrorIs(t, err, ErrTooFewMembers)
}

func TestGroupCreateRejectsMixedLayers(t *testing.T) {
	_, gi := setupGroupTest()
	_, err := gi.Create([]idgen.ID{"a", "c"}, "mixed")
	require.ErrorIs(t, err, ErrMixedLayers)
}

func TestGroupBidirectionality(t *testing.T) {
	s, gi := setupGroupTest()
	g, err := gi.Create([]idgen.ID{"a", "b"}, "pair")
	require.NoError(t, err)

	for _, id := range gi.MembersOf(g) {
		assert.Equal(t, g, gi.GroupOf(id))
	}
	a, _ := s.Get("a")
	assert.Equal(t, g, a.GroupID)
}

func TestGroupAutoDissolveOnRemove(t *testing.T) {
	s, gi := setupGroupTest()
	g, err := gi.Create([]idgen.ID{"a", "b"}, "pair")
	require.NoError(t, err)

	gi.Remove(g, "a")
	_, ok := gi.Get(g)
	assert.False(t, ok)

	b, _ := s.Get("b")
	assert.Equal(t, idgen.ID(""), b.GroupID)
}

func TestGroupUngroupClearsMembers(t *testing.T) {
	s, gi := setupGroupTest()
	g, err := gi.Create([]idgen.ID{"a", "b"}, "pair")
	require.NoError(t, err)

	members := gi.Ungroup(g)
	assert.ElementsMatch(t, []idgen.ID{"a", "b"}, members)
	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, idgen.ID(""), a.GroupID)
	assert.Equal(t, idgen.ID(""), b.GroupID)
}
