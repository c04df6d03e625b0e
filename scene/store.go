package scene

import (
	"tileloom.dev/tileloom/idgen"
)

// CanonicalStore holds exactly one authoritative Entity per logical
// object, in an insertion order that doubles as global z-order. It is
// grounded on cogentcore's base/ordmap.Map: a slice for order plus a map
// from id to slice index, so lookup and append are O(1) while reorder
// operations pay for index renumbering.
type CanonicalStore struct {
	order   []idgen.ID
	byID    map[idgen.ID]int
	data    map[idgen.ID]Entity
	revCache []idgen.ID

	Changed ChangeFeed
}

// NewCanonicalStore returns an empty store.
func NewCanonicalStore() *CanonicalStore {
	return &CanonicalStore{
		byID: make(map[idgen.ID]int),
		data: make(map[idgen.ID]Entity),
	}
}

func (s *CanonicalStore) invalidate() {
	s.revCache = nil
	s.Changed.Notify()
}

// Add appends e to the end of z-order, replacing any existing entity
// with the same id in place.
func (s *CanonicalStore) Add(e Entity) {
	if idx, ok := s.byID[e.ID]; ok {
		s.data[e.ID] = e
		s.order[idx] = e.ID
		s.invalidate()
		return
	}
	s.byID[e.ID] = len(s.order)
	s.order = append(s.order, e.ID)
	s.data[e.ID] = e
	s.invalidate()
}

// AddAt inserts e at the given z-order index, clamped to [0, len].
func (s *CanonicalStore) AddAt(e Entity, index int) {
	if _, ok := s.byID[e.ID]; ok {
		s.Remove(e.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.order) {
		index = len(s.order)
	}
	s.order = append(s.order, "")
	copy(s.order[index+1:], s.order[index:])
	s.order[index] = e.ID
	s.data[e.ID] = e
	s.reindex()
	s.invalidate()
}

func (s *CanonicalStore) reindex() {
	for i, id := range s.order {
		s.byID[id] = i
	}
}

// Remove deletes the entity with the given id. Removing a non-existent
// id is a no-op.
func (s *CanonicalStore) Remove(id idgen.ID) {
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	delete(s.byID, id)
	delete(s.data, id)
	s.reindex()
	s.invalidate()
}

// Get returns the entity with the given id, and whether it was found.
func (s *CanonicalStore) Get(id idgen.ID) (Entity, bool) {
	e, ok := s.data[id]
	return e, ok
}

// Has reports whether id is present.
func (s *CanonicalStore) Has(id idgen.ID) bool {
	_, ok := s.data[id]
	return ok
}

// All returns every entity in ascending z-order.
func (s *CanonicalStore) All() []Entity {
	out := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}

// AllReversed returns every entity in descending z-order (topmost
// first), using a cache invalidated on every mutation.
func (s *CanonicalStore) AllReversed() []Entity {
	if s.revCache == nil {
		s.revCache = make([]idgen.ID, len(s.order))
		for i, id := range s.order {
			s.revCache[len(s.order)-1-i] = id
		}
	}
	out := make([]Entity, 0, len(s.revCache))
	for _, id := range s.revCache {
		out = append(out, s.data[id])
	}
	return out
}

// ByLayer returns every entity on the given layer, in z-order.
func (s *CanonicalStore) ByLayer(layerID idgen.ID) []Entity {
	var out []Entity
	for _, id := range s.order {
		e := s.data[id]
		if e.LayerID == layerID {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entities in the store.
func (s *CanonicalStore) Len() int { return len(s.order) }

// indexOf returns the z-order index of id, or -1.
func (s *CanonicalStore) indexOf(id idgen.ID) int {
	idx, ok := s.byID[id]
	if !ok {
		return -1
	}
	return idx
}

func (s *CanonicalStore) moveTo(from, to int) {
	if from == to {
		return
	}
	id := s.order[from]
	s.order = append(s.order[:from], s.order[from+1:]...)
	if to > from {
		to--
	}
	if to < 0 {
		to = 0
	}
	if to > len(s.order) {
		to = len(s.order)
	}
	s.order = append(s.order, "")
	copy(s.order[to+1:], s.order[to:])
	s.order[to] = id
	s.reindex()
	s.invalidate()
}

// BringForward swaps id with its next-higher neighbor.
func (s *CanonicalStore) BringForward(id idgen.ID) {
	idx := s.indexOf(id)
	if idx < 0 || idx >= len(s.order)-1 {
		return
	}
	s.moveTo(idx, idx+2)
}

// SendBackward swaps id with its next-lower neighbor.
func (s *CanonicalStore) SendBackward(id idgen.ID) {
	idx := s.indexOf(id)
	if idx <= 0 {
		return
	}
	s.moveTo(idx, idx-1)
}

// BringToFront moves id to the end of z-order (topmost).
func (s *CanonicalStore) BringToFront(id idgen.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.moveTo(idx, len(s.order))
}

// SendToBack moves id to the start of z-order (bottommost).
func (s *CanonicalStore) SendToBack(id idgen.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.moveTo(idx, 0)
}

// SetZIndex moves id to absolute index i, clamped to the valid range.
func (s *CanonicalStore) SetZIndex(id idgen.ID, i int) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.order)-1 {
		i = len(s.order) - 1
	}
	if i > idx {
		// moveTo's target counts positions before id is taken out.
		i++
	}
	s.moveTo(idx, i)
}
