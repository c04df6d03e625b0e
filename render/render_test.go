package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tileloom.dev/tileloom/canvas"
	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/scene"
)

func drawRect(ctx canvas.Context, e scene.Entity) {
	m := e.Transform.Matrix(e.Geometry.Width, e.Geometry.Height)
	ctx.Save()
	ctx.Translate(m.X0, m.Y0)
	ctx.FillRect(0, 0, e.Geometry.Width, e.Geometry.Height, "#ff0000", 1)
	ctx.Restore()
}

func TestRenderPeriodicCopiesAreOpaque(t *testing.T) {
	const tile = float32(500)
	store := scene.NewCanonicalStore()
	layers := scene.NewLayerTable(idgen.NewGenerator())
	layerID := layers.All()[0].ID

	e := scene.NewEntity("ent-1", scene.Geometry{Kind: scene.KindRect, Width: 20, Height: 20}, layerID)
	e.Transform.Left, e.Transform.Top = 10, 10
	store.Add(e)

	r := NewRenderer(tile, drawRect)
	ctx := canvas.NewRaster(int(tile*3), int(tile*3))
	ctx.Translate(tile, tile) // re-center so offset (-1,-1)..(1,1) stay on-canvas
	r.Render(ctx, store, layers, nil)

	_, _, _, a := ctx.GetImageData(tile+15, tile+15) // offset (0,0) is the caller's own pass, not drawn here
	assert.Equal(t, uint8(0), a)

	_, _, _, a = ctx.GetImageData(tile+15+tile, tile+15) // offset (+1,0)
	assert.Greater(t, a, uint8(0))
}

func TestRenderPaintsGlowForHighlightedEntity(t *testing.T) {
	const tile = float32(100)
	store := scene.NewCanonicalStore()
	layers := scene.NewLayerTable(idgen.NewGenerator())
	layerID := layers.All()[0].ID

	e := scene.NewEntity("ent-1", scene.Geometry{Kind: scene.KindRect, Width: 20, Height: 20}, layerID)
	e.Transform.Left, e.Transform.Top = 40, 40
	store.Add(e)

	r := NewRenderer(tile, drawRect)
	ctx := canvas.NewRaster(int(tile*3), int(tile*3))
	ctx.Translate(tile, tile) // re-center, as in TestRenderPeriodicCopiesAreOpaque
	r.Render(ctx, store, layers, map[string]bool{"ent-1": true})

	// offset (+1,0): just outside the rect's own fill (which starts at
	// local (40,40)) but inside the glow's rounded rect, which extends
	// past it: the glow must have painted something even where the
	// plain fill didn't.
	_, g, _, a := ctx.GetImageData(tile+38+tile, tile+38)
	assert.Greater(t, a, uint8(0))
	assert.Greater(t, g, uint8(0))
}

func TestRenderSkipsInvisibleLayer(t *testing.T) {
	store := scene.NewCanonicalStore()
	layers := scene.NewLayerTable(idgen.NewGenerator())
	layerID := layers.All()[0].ID
	layers.SetVisible(layerID, false)

	e := scene.NewEntity("ent-1", scene.Geometry{Kind: scene.KindRect, Width: 20, Height: 20}, layerID)
	store.Add(e)

	r := NewRenderer(100, drawRect)
	visible := r.sortedVisible(store, layers)
	assert.Empty(t, visible)
}
