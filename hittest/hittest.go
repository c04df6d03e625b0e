// Package hittest implements pixel-perfect hit-testing over the
// canonical entity set across all 25 periodic offsets, preferring the
// smallest bounding-box area among overlapping candidates. Grounded on
// the scratch-canvas-per-query pattern described for the render package.
// The scratch canvas is always allocated; there is no allocation-failure
// fallback. A Tester whose Draw is nil uses the bounding-box test alone.
package hittest

import (
	"sort"

	"tileloom.dev/tileloom/canvas"
	"tileloom.dev/tileloom/render"
	"tileloom.dev/tileloom/scene"
)

// Candidate is one hit-test match.
type Candidate struct {
	Entity scene.Entity
	Offset [2]int
	Area   float32
}

// Tester hit-tests a canonical entity set.
type Tester struct {
	TileSize float32
	Draw     render.EntityRenderer
}

// NewTester returns a Tester for the given tile size and entity drawing
// function (the same one passed to render.NewRenderer).
func NewTester(tileSize float32, draw render.EntityRenderer) *Tester {
	return &Tester{TileSize: tileSize, Draw: draw}
}

// priorityOffsets returns the 25 grid offsets sorted by Manhattan
// distance to the offset the query point itself falls in.
func priorityOffsets(p [2]float32, tileSize float32) [][2]int {
	qi := int(p[0]/tileSize) - 1
	qj := int(p[1]/tileSize) - 1
	var offs [][2]int
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			offs = append(offs, [2]int{i, j})
		}
	}
	sort.SliceStable(offs, func(a, b int) bool {
		da := abs(offs[a][0]-qi) + abs(offs[a][1]-qj)
		db := abs(offs[b][0]-qi) + abs(offs[b][1]-qj)
		return da < db
	})
	return offs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func eligible(e scene.Entity, layers *scene.LayerTable) bool {
	if !e.Visible || e.Locked {
		return false
	}
	l, ok := layers.Get(e.LayerID)
	if !ok {
		return false
	}
	return l.EffectiveVisible(e.Visible) && !l.EffectiveLocked(e.Locked)
}

// findCandidate tests one entity against the query point across offsets
// in priority order, returning the first opaque hit (if any).
func (h *Tester) findCandidate(e scene.Entity, p [2]float32, offs [][2]int) (Candidate, bool) {
	w, hh := e.Bounds()
	if w <= 0 || hh <= 0 {
		return Candidate{}, false
	}
	for _, off := range offs {
		localX := p[0] - float32(off[0])*h.TileSize
		localY := p[1] - float32(off[1])*h.TileSize
		left, top := e.Transform.Left, e.Transform.Top
		if localX < left || localX > left+w || localY < top || localY > top+hh {
			continue
		}
		if h.Draw == nil {
			return Candidate{Entity: e, Offset: off, Area: w * hh}, true
		}
		scratch := canvas.NewRaster(int(w)+1, int(hh)+1)
		scratch.Translate(-left, -top)
		h.Draw(scratch, e)
		_, _, _, a := scratch.GetImageData(localX-left, localY-top)
		if a > 0 {
			return Candidate{Entity: e, Offset: off, Area: w * hh}, true
		}
	}
	return Candidate{}, false
}

// FindAll returns every candidate at point p, sorted smallest-area
// first. An entity is eligible only if visible and on an unlocked,
// visible layer.
func (h *Tester) FindAll(store *scene.CanonicalStore, layers *scene.LayerTable, p [2]float32) []Candidate {
	offs := priorityOffsets(p, h.TileSize)
	var out []Candidate
	for _, e := range store.AllReversed() {
		if !eligible(e, layers) {
			continue
		}
		if c, ok := h.findCandidate(e, p, offs); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out
}

// Find returns the topmost-preferred candidate at p: the one with the
// smallest bounding-box area, so small objects nested under large ones
// remain selectable.
func (h *Tester) Find(store *scene.CanonicalStore, layers *scene.LayerTable, p [2]float32) (Candidate, bool) {
	all := h.FindAll(store, layers, p)
	if len(all) == 0 {
		return Candidate{}, false
	}
	return all[0], true
}

// boxFullyContained reports whether e's bounding box at any of the 25
// offsets sits fully within [tl, br].
func (h *Tester) boxFullyContained(e scene.Entity, tl, br [2]float32) bool {
	w, hh := e.Bounds()
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			left := e.Transform.Left + float32(i)*h.TileSize
			top := e.Transform.Top + float32(j)*h.TileSize
			if left >= tl[0] && top >= tl[1] && left+w <= br[0] && top+hh <= br[1] {
				return true
			}
		}
	}
	return false
}

// FindInRect returns entities whose bounding box at some offset is
// fully contained within [tl, br].
func (h *Tester) FindInRect(store *scene.CanonicalStore, layers *scene.LayerTable, tl, br [2]float32) []scene.Entity {
	var out []scene.Entity
	for _, e := range store.All() {
		if !eligible(e, layers) {
			continue
		}
		if h.boxFullyContained(e, tl, br) {
			out = append(out, e)
		}
	}
	return out
}
