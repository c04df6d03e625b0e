package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/scene"
)

func buildProject(t *testing.T) (*scene.CanonicalStore, *scene.LayerTable, *scene.EntityGroupIndex, *idgen.Generator) {
	t.Helper()
	ids := idgen.NewGenerator()
	store := scene.NewCanonicalStore()
	layers := scene.NewLayerTable(ids)
	layerID := layers.All()[0].ID

	e1 := scene.NewEntity(ids.Next("ent"), scene.Geometry{Kind: scene.KindRect, Width: 10, Height: 20}, layerID)
	e1.Transform.Left, e1.Transform.Top = 5, 6
	store.Add(e1)

	e2 := scene.NewEntity(ids.Next("ent"), scene.Geometry{Kind: scene.KindCircle, Radius: 8}, layerID)
	store.Add(e2)

	groups := scene.NewEntityGroupIndex(store, ids)
	_, err := groups.Create([]idgen.ID{e1.ID, e2.ID}, "pair")
	require.NoError(t, err)

	return store, layers, groups, ids
}

func TestEncodeDecodeRoundTripsEntitiesAndGroups(t *testing.T) {
	store, layers, groups, _ := buildProject(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	data, err := Encode(store, layers, groups, Metadata{TileSize: 500, CreatedAt: now, ModifiedAt: now}, "1.2.3")
	require.NoError(t, err)

	newIDs := idgen.NewGenerator()
	newStore, newLayers, newGroups, meta, err := Decode(data, newIDs)
	require.NoError(t, err)

	assert.Equal(t, store.Len(), newStore.Len())
	assert.Equal(t, len(layers.All()), len(newLayers.All()))
	assert.Equal(t, len(groups.All()), len(newGroups.All()))
	assert.Equal(t, 500, meta.TileSize)

	for _, e := range store.All() {
		got, ok := newStore.Get(e.ID)
		require.True(t, ok)
		assert.Equal(t, e.Geometry.Kind, got.Geometry.Kind)
		assert.Equal(t, e.Transform.Left, got.Transform.Left)
	}
}

func TestDecodeRejectsMissingVersion(t *testing.T) {
	_, _, _, _, err := Decode([]byte(`{"layers":[{"id":"l1","entities":[]}]}`), idgen.NewGenerator())
	assert.Error(t, err)
}

func TestDecodeRejectsIncompatibleMajorVersion(t *testing.T) {
	_, _, _, _, err := Decode([]byte(`{"version":"2.0.0","layers":[{"id":"l1","entities":[]}]}`), idgen.NewGenerator())
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, _, _, _, err := Decode([]byte(`not json`), idgen.NewGenerator())
	assert.Error(t, err)
}

func TestObservedIDsPreventFutureCollisions(t *testing.T) {
	store, layers, groups, _ := buildProject(t)
	data, err := Encode(store, layers, groups, Metadata{}, "1.0.0")
	require.NoError(t, err)

	freshIDs := idgen.NewGenerator()
	_, _, _, _, err = Decode(data, freshIDs)
	require.NoError(t, err)

	next := freshIDs.Next("ent")
	assert.NotEqual(t, idgen.ID("ent-000001"), next)
	assert.NotEqual(t, idgen.ID("ent-000002"), next)
}
