// Package proxy implements selection proxies: ephemeral, transparent
// stand-ins bound to exactly one canonical entity at some periodic tile
// offset, with an artificial minimum physical size so selection handles
// don't overlap on tiny objects. Grounded on the arena/handle pattern
// described for cross-references between proxy and canonical — the
// ProxyManager holds ids, never pointers, and looks the canonical up on
// every sync.
package proxy

import (
	"fmt"
	"math"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/scene"
	"tileloom.dev/tileloom/tileerr"
)

// MinSize is the minimum physical size, in points, a proxy's rectangle
// shrinks to before an artificial size boost kicks in.
const MinSize = 26

// Proxy is an ephemeral selectable placeholder bound to one canonical
// entity.
type Proxy struct {
	EntityID   idgen.ID
	TileOffset [2]int
	BaseSize   [2]float32
	BaseScale  [2]float32

	// SizeRatio is effective-scale / canonical-scale at creation time:
	// 1 unless the artificial minimum-size boost kicked in, in which
	// case it is the factor the boost applied. Dividing the proxy's
	// current scale by this ratio recovers the canonical scale on sync.
	SizeRatio  [2]float32
	SizeAdjust [2]float32

	Left, Top      float32
	ScaleX, ScaleY float32
	AngleDeg       float32
	SkewX, SkewY   float32
}

// Manager keeps the live proxy set, at most one per entity id.
type Manager struct {
	proxies  map[idgen.ID]*Proxy
	store    *scene.CanonicalStore
	tileSize float32
}

// NewManager returns a Manager bound to store, using the given tile
// size for tile-offset math.
func NewManager(store *scene.CanonicalStore, tileSize float32) *Manager {
	return &Manager{proxies: make(map[idgen.ID]*Proxy), store: store, tileSize: tileSize}
}

// Create builds a proxy for entity at the given tile offset. It is
// rejected if the entity has no id.
func (m *Manager) Create(entity scene.Entity, tileOffset [2]int) (*Proxy, error) {
	if entity.ID == "" {
		return nil, fmt.Errorf("proxy: entity has no id: %w", tileerr.InvariantViolation)
	}
	w, h := entity.Bounds()
	baseSize := [2]float32{w, h}
	baseScale := [2]float32{entity.Transform.ScaleX, entity.Transform.ScaleY}
	sx, sy := baseScale[0], baseScale[1]
	effW, effH := w*sx, h*sy
	ratioX, ratioY := float32(1), float32(1)
	if w > 0 && effW < MinSize && sx != 0 {
		sx = MinSize / w
		ratioX = sx / baseScale[0]
	}
	if h > 0 && effH < MinSize && sy != 0 {
		sy = MinSize / h
		ratioY = sy / baseScale[1]
	}

	sizeAdjust := [2]float32{(sx - baseScale[0]) * w / 2, (sy - baseScale[1]) * h / 2}

	p := &Proxy{
		EntityID:   entity.ID,
		TileOffset: tileOffset,
		BaseSize:   baseSize,
		BaseScale:  baseScale,
		SizeRatio:  [2]float32{ratioX, ratioY},
		SizeAdjust: sizeAdjust,
		Left:       entity.Transform.Left + float32(tileOffset[0])*m.tileSize - sizeAdjust[0],
		Top:        entity.Transform.Top + float32(tileOffset[1])*m.tileSize - sizeAdjust[1],
		ScaleX:     sx,
		ScaleY:     sy,
		AngleDeg:   entity.Transform.AngleDeg,
		SkewX:      entity.Transform.SkewX,
		SkewY:      entity.Transform.SkewY,
	}
	m.proxies[entity.ID] = p
	return p, nil
}

// RemoveProxy removes the proxy bound to the given entity id, if any.
func (m *Manager) RemoveProxy(id idgen.ID) { delete(m.proxies, id) }

// ClearAll removes every proxy.
func (m *Manager) ClearAll() { m.proxies = make(map[idgen.ID]*Proxy) }

// GetProxy returns the proxy bound to id, if one exists.
func (m *Manager) GetProxy(id idgen.ID) (*Proxy, bool) {
	p, ok := m.proxies[id]
	return p, ok
}

// All returns every live proxy.
func (m *Manager) All() []*Proxy {
	out := make([]*Proxy, 0, len(m.proxies))
	for _, p := range m.proxies {
		out = append(out, p)
	}
	return out
}

// wrap normalizes v into the center-tile representative range [T, 2T),
// the toroidal wraparound a dragged proxy triggers on sync.
func wrap(v, tileSize float32) float32 {
	w := float32(math.Mod(float64(v), float64(tileSize)))
	if w < 0 {
		w += tileSize
	}
	return w + tileSize
}

// SyncProxyToCanonical converts a proxy's current pose (after the user
// dragged/scaled/rotated it) back to the canonical entity's pose:
//  1. divide the proxy's scale by the size-adjust ratio to recover the
//     canonical scale;
//  2. subtract tile offset and size-adjust to recover canonical (left, top);
//  3. normalize (left, top) back into the center tile [T, 2T) — this is
//     what makes dragging a proxy off into tile (+2,-1) teleport its
//     canonical back to the center representative.
func (m *Manager) SyncProxyToCanonical(p *Proxy) (scene.Entity, bool) {
	e, ok := m.store.Get(p.EntityID)
	if !ok {
		return scene.Entity{}, false
	}
	e.Transform.ScaleX = p.ScaleX / p.SizeRatio[0]
	e.Transform.ScaleY = p.ScaleY / p.SizeRatio[1]
	e.Transform.AngleDeg = p.AngleDeg
	e.Transform.SkewX = p.SkewX
	e.Transform.SkewY = p.SkewY

	left := p.Left + p.SizeAdjust[0] - float32(p.TileOffset[0])*m.tileSize
	top := p.Top + p.SizeAdjust[1] - float32(p.TileOffset[1])*m.tileSize

	e.Transform.Left = wrap(left, m.tileSize)
	e.Transform.Top = wrap(top, m.tileSize)

	m.store.Add(e)
	return e, true
}

// SyncCanonicalToProxy re-derives the proxy's pose from a programmatic
// mutation of its canonical entity, the reverse of SyncProxyToCanonical.
func (m *Manager) SyncCanonicalToProxy(entity scene.Entity) {
	p, ok := m.proxies[entity.ID]
	if !ok {
		return
	}
	p.Left = entity.Transform.Left + float32(p.TileOffset[0])*m.tileSize - p.SizeAdjust[0]
	p.Top = entity.Transform.Top + float32(p.TileOffset[1])*m.tileSize - p.SizeAdjust[1]
	p.ScaleX = entity.Transform.ScaleX * p.SizeRatio[0]
	p.ScaleY = entity.Transform.ScaleY * p.SizeRatio[1]
	p.AngleDeg = entity.Transform.AngleDeg
	p.SkewX = entity.Transform.SkewX
	p.SkewY = entity.Transform.SkewY
}
