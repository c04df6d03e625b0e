package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/tileerr"
)

func TestLayerTableDefaultLayer(t *testing.T) {
	lt := NewLayerTable(idgen.NewGenerator())
	assert.Len(t, lt.All(), 1)
}

func TestLayerDeleteLastIsFatal(t *testing.T) {
	lt := NewLayerTable(idgen.NewGenerator())
	only := lt.All()[0]
	err := lt.Delete(only.ID)
	require.ErrorIs(t, err, tileerr.Fatal)
}

func TestLayerOrderRenormalizes(t *testing.T) {
	lt := NewLayerTable(idgen.NewGenerator())
	lt.Create("Layer 2")
	lt.Create("Layer 3")
	layers := lt.All()
	require.Len(t, layers, 3)

	lt.Delete(layers[1].ID)
	seen := map[int]bool{}
	for _, l := range lt.All() {
		seen[l.Order] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true}, seen)
}

func TestLayerReorder(t *testing.T) {
	lt := NewLayerTable(idgen.NewGenerator())
	lt.Create("Layer 2")
	lt.Create("Layer 3")
	before := lt.All()

	lt.Reorder(0, 2)
	after := lt.All()
	assert.Equal(t, before[1].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)
	assert.Equal(t, before[0].ID, after[2].ID)
	for i, l := range after {
		assert.Equal(t, i, l.Order)
	}
}
