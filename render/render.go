// Package render implements the virtual tiling renderer: it paints each
// canonical entity at its 24 periodic copies around the visible 3x3
// window (5x5 grid minus the center, which the caller's own pass already
// draws) so tile edges join seamlessly. Grounded on the rendering loop
// shape of cogentcore's paint package (sort by z-order, save/translate/
// draw/restore per element) adapted to the spec's offset-grid algorithm.
package render

import (
	"fmt"
	"sort"

	"tileloom.dev/tileloom/canvas"
	"tileloom.dev/tileloom/scene"
)

// HighlightColor is the glow fill behind highlighted entities, rgb(45,212,168).
const HighlightColor = "#2dd4a8"

// HighlightFillAlpha is the glow fill's opacity.
const HighlightFillAlpha = 0.3

// HighlightShadowColor is the glow shadow color behind highlighted
// entities, the same rgb(45,212,168) hue at a heavier opacity.
const HighlightShadowColor = "#2dd4a8"

// HighlightShadowAlpha is the glow shadow's opacity.
const HighlightShadowAlpha = 0.8

// HighlightBlurRadius is the glow shadow's Gaussian blur radius, in
// pixels.
const HighlightBlurRadius = 5

// HighlightCornerRadius is the glow rect's corner radius.
const HighlightCornerRadius = 6

// MinHighlightSize is the minimum side length of the highlight's rounded
// rect, centered on the entity's bounds.
const MinHighlightSize = 24

// EntityRenderer draws one entity's geometry into ctx at its position in
// the tile. Render and hittest.Tester apply only the periodic offset, so
// the function applies the entity's own Transform. The scene package owns geometry
// data but not how to paint it, since painting depends on the host's
// canvas.Context; callers supply this function (typically backed by a
// geometry-to-canvas-ops table keyed by scene.Kind).
type EntityRenderer func(ctx canvas.Context, e scene.Entity)

// Renderer paints the periodic tiling of a canonical entity set.
type Renderer struct {
	TileSize float32
	Draw     EntityRenderer
}

// NewRenderer returns a Renderer for the given tile size and entity
// drawing function.
func NewRenderer(tileSize float32, draw EntityRenderer) *Renderer {
	return &Renderer{TileSize: tileSize, Draw: draw}
}

// offsets is the 5x5 grid of periodic offsets minus the center, which
// the caller's standard render pass already draws.
var offsets = func() [][2]int {
	var out [][2]int
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			if i == 0 && j == 0 {
				continue
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out
}()

// Render paints the 24 periodic copies of every visible entity in
// layers, ascending (layer.order, z-index) order. Each copy of an entity
// whose id is present in highlighted is painted over a glow highlight.
func (r *Renderer) Render(ctx canvas.Context, store *scene.CanonicalStore, layers *scene.LayerTable, highlighted map[string]bool) {
	if ctx == nil || store == nil {
		return
	}
	entities := r.sortedVisible(store, layers)

	for _, e := range entities {
		for _, off := range offsets {
			ctx.Save()
			ctx.Translate(float32(off[0])*r.TileSize, float32(off[1])*r.TileSize)
			if highlighted[string(e.ID)] {
				r.drawHighlight(ctx, e)
			}
			if r.Draw != nil {
				r.Draw(ctx, e)
			}
			ctx.Restore()
		}
	}
}

func (r *Renderer) drawHighlight(ctx canvas.Context, e scene.Entity) {
	w, h := e.Bounds()
	side := w
	if h > side {
		side = h
	}
	if side < MinHighlightSize {
		side = MinHighlightSize
	}
	cx, cy := e.Transform.Left+w/2, e.Transform.Top+h/2
	x, y := cx-side/2, cy-side/2

	ctx.SetShadow(HighlightShadowColor, HighlightShadowAlpha, HighlightBlurRadius)
	ctx.FillRoundedRect(x, y, side, side, HighlightCornerRadius, HighlightColor, HighlightFillAlpha)
	ctx.SetShadow("", 0, 0)
}

// sortedVisible returns every effectively-visible entity, sorted
// ascending by (layer.order, canonical z-index).
func (r *Renderer) sortedVisible(store *scene.CanonicalStore, layers *scene.LayerTable) []scene.Entity {
	all := store.All()
	zIndex := make(map[string]int, len(all))
	for i, e := range all {
		zIndex[string(e.ID)] = i
	}
	layerOrder := make(map[string]int)
	layerVisible := make(map[string]bool)
	for _, l := range layers.All() {
		layerOrder[string(l.ID)] = l.Order
		layerVisible[string(l.ID)] = l.Visible
	}

	var visible []scene.Entity
	for _, e := range all {
		if !e.Visible || !layerVisible[string(e.LayerID)] {
			continue
		}
		visible = append(visible, e)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		oi, oj := layerOrder[string(visible[i].LayerID)], layerOrder[string(visible[j].LayerID)]
		if oi != oj {
			return oi < oj
		}
		return zIndex[string(visible[i].ID)] < zIndex[string(visible[j].ID)]
	})
	return visible
}

// String implements fmt.Stringer for debugging offset-grid coverage.
func (r *Renderer) String() string {
	return fmt.Sprintf("render.Renderer{TileSize:%v, offsets:%d}", r.TileSize, len(offsets))
}
