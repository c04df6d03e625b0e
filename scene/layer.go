package scene

import (
	"golang.org/x/text/unicode/norm"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/tileerr"
)

// Background is a layer's optional backdrop fill.
type Background struct {
	Color Color
	Alpha float32
}

// Layer groups entities under a named, orderable, lockable visibility
// unit.
type Layer struct {
	ID         idgen.ID
	Name       string
	Order      int
	Visible    bool
	Locked     bool
	Background *Background
}

// EffectiveVisible reports whether an entity on this layer is visible,
// combining the entity's own visibility with the layer's.
func (l Layer) EffectiveVisible(entityVisible bool) bool {
	return entityVisible && l.Visible
}

// EffectiveLocked reports whether an entity on this layer is locked,
// combining the entity's own lock state with the layer's.
func (l Layer) EffectiveLocked(entityLocked bool) bool {
	return entityLocked || l.Locked
}

// LayerTable is the ordered set of layers in a scene, keyed by id. Order
// is kept dense in [0, len) and renormalized after every mutation.
type LayerTable struct {
	layers []Layer
	byID   map[idgen.ID]int
	ids    *idgen.Generator

	Changed ChangeFeed
}

// NewLayerTable returns a table with one default layer, matching the
// store-init lifecycle rule: a scene always has at least one layer.
func NewLayerTable(ids *idgen.Generator) *LayerTable {
	t := &LayerTable{byID: make(map[idgen.ID]int), ids: ids}
	t.Create("Layer 1")
	return t
}

func (t *LayerTable) renormalize() {
	t.byID = make(map[idgen.ID]int, len(t.layers))
	for i := range t.layers {
		t.layers[i].Order = i
		t.byID[t.layers[i].ID] = i
	}
	t.Changed.Notify()
}

// Create appends a new, visible, unlocked layer with the given name.
func (t *LayerTable) Create(name string) Layer {
	l := Layer{ID: t.ids.Next("layer"), Name: norm.NFC.String(name), Visible: true}
	t.layers = append(t.layers, l)
	t.renormalize()
	return t.layers[len(t.layers)-1]
}

// Delete removes the layer with the given id. It is refused — a Fatal
// error — if it is the only remaining layer.
func (t *LayerTable) Delete(id idgen.ID) error {
	if len(t.layers) <= 1 {
		return tileerr.Fatal
	}
	idx, ok := t.byID[id]
	if !ok {
		return nil
	}
	t.layers = append(t.layers[:idx], t.layers[idx+1:]...)
	t.renormalize()
	return nil
}

// Restore appends a layer with a caller-supplied id, for reconstructing
// a table from a decoded project document rather than minting fresh
// ids. The layer is appended at the end; callers restoring multiple
// layers should call Restore in file order so indices line up, then
// Reorder as needed.
func (t *LayerTable) Restore(l Layer) {
	t.layers = append(t.layers, l)
	t.renormalize()
}

// Rename changes the name of the layer with the given id.
func (t *LayerTable) Rename(id idgen.ID, name string) {
	if idx, ok := t.byID[id]; ok {
		t.layers[idx].Name = norm.NFC.String(name)
		t.Changed.Notify()
	}
}

// SetVisible sets the layer's own visibility flag.
func (t *LayerTable) SetVisible(id idgen.ID, visible bool) {
	if idx, ok := t.byID[id]; ok {
		t.layers[idx].Visible = visible
		t.Changed.Notify()
	}
}

// SetLocked sets the layer's own lock flag.
func (t *LayerTable) SetLocked(id idgen.ID, locked bool) {
	if idx, ok := t.byID[id]; ok {
		t.layers[idx].Locked = locked
		t.Changed.Notify()
	}
}

// SetBackground sets or clears the layer's background.
func (t *LayerTable) SetBackground(id idgen.ID, bg *Background) {
	if idx, ok := t.byID[id]; ok {
		t.layers[idx].Background = bg
		t.Changed.Notify()
	}
}

// Get returns the layer with the given id.
func (t *LayerTable) Get(id idgen.ID) (Layer, bool) {
	idx, ok := t.byID[id]
	if !ok {
		return Layer{}, false
	}
	return t.layers[idx], true
}

// All returns every layer in ascending order.
func (t *LayerTable) All() []Layer {
	out := make([]Layer, len(t.layers))
	copy(out, t.layers)
	return out
}

// Reorder moves the layer at index i to index j, then renormalizes
// order fields.
func (t *LayerTable) Reorder(i, j int) {
	if i < 0 || i >= len(t.layers) || j < 0 || j >= len(t.layers) || i == j {
		return
	}
	l := t.layers[i]
	t.layers = append(t.layers[:i], t.layers[i+1:]...)
	t.layers = append(t.layers, Layer{})
	copy(t.layers[j+1:], t.layers[j:])
	t.layers[j] = l
	t.renormalize()
}
