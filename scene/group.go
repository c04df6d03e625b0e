package scene

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/tileerr"
)

var (
	// ErrTooFewMembers wraps tileerr.InvariantViolation: a group needs at
	// least 2 members.
	ErrTooFewMembers = fmt.Errorf("group requires at least 2 members: %w", tileerr.InvariantViolation)
	// ErrMixedLayers wraps tileerr.InvariantViolation: all group members
	// must share one layer.
	ErrMixedLayers = fmt.Errorf("group members must share a layer: %w", tileerr.InvariantViolation)
	// ErrAlreadyGrouped wraps tileerr.InvariantViolation: an entity may
	// belong to at most one group.
	ErrAlreadyGrouped = fmt.Errorf("entity already belongs to a group: %w", tileerr.InvariantViolation)
)

// EntityGroup is a named, non-empty set of entities sharing one layer.
type EntityGroup struct {
	ID      idgen.ID
	Name    string
	Members []idgen.ID
	LayerID idgen.ID
}

// EntityGroupIndex is the two-way index between groups and their member
// entities, enforcing that EntityGroup.Members and Entity.GroupID always
// agree (the bidirectional-consistency invariant).
type EntityGroupIndex struct {
	store  *CanonicalStore
	ids    *idgen.Generator
	groups map[idgen.ID]*EntityGroup

	Changed ChangeFeed
}

// NewEntityGroupIndex returns an index bound to store.
func NewEntityGroupIndex(store *CanonicalStore, ids *idgen.Generator) *EntityGroupIndex {
	return &EntityGroupIndex{store: store, ids: ids, groups: make(map[idgen.ID]*EntityGroup)}
}

// Create groups the given distinct entity ids under a new group, after
// bringing all members to the top of z-order in input order.
func (gi *EntityGroupIndex) Create(ids []idgen.ID, name string) (idgen.ID, error) {
	if len(ids) < 2 {
		return "", ErrTooFewMembers
	}
	var layerID idgen.ID
	for i, id := range ids {
		e, ok := gi.store.Get(id)
		if !ok {
			continue
		}
		if i == 0 {
			layerID = e.LayerID
		} else if e.LayerID != layerID {
			return "", ErrMixedLayers
		}
		if e.GroupID != "" {
			return "", ErrAlreadyGrouped
		}
	}

	gid := gi.ids.Next("group")
	members := append([]idgen.ID(nil), ids...)
	gi.groups[gid] = &EntityGroup{ID: gid, Name: norm.NFC.String(name), Members: members, LayerID: layerID}

	for _, id := range ids {
		e, ok := gi.store.Get(id)
		if !ok {
			continue
		}
		e.GroupID = gid
		gi.store.Add(e)
		gi.store.BringToFront(id)
	}
	gi.Changed.Notify()
	return gid, nil
}

// Restore reconstructs a group with a caller-supplied id and member
// list, for rebuilding an index from a decoded project document. It
// skips the usual new-group validation (the document is assumed
// already consistent) but still sets GroupID on every member so the
// bidirectional-consistency invariant holds afterward.
func (gi *EntityGroupIndex) Restore(g EntityGroup) {
	gi.groups[g.ID] = &g
	for _, id := range g.Members {
		if e, ok := gi.store.Get(id); ok {
			e.GroupID = g.ID
			gi.store.Add(e)
		}
	}
}

// Ungroup dissolves the given group, clearing GroupID on each member,
// and returns the former members.
func (gi *EntityGroupIndex) Ungroup(g idgen.ID) []idgen.ID {
	grp, ok := gi.groups[g]
	if !ok {
		return nil
	}
	for _, id := range grp.Members {
		if e, ok := gi.store.Get(id); ok {
			e.GroupID = ""
			gi.store.Add(e)
		}
	}
	delete(gi.groups, g)
	gi.Changed.Notify()
	return grp.Members
}

// Add adds id to group g.
func (gi *EntityGroupIndex) Add(g, id idgen.ID) error {
	grp, ok := gi.groups[g]
	if !ok {
		return tileerr.NotFound
	}
	e, ok := gi.store.Get(id)
	if !ok {
		return tileerr.NotFound
	}
	if e.GroupID != "" {
		return ErrAlreadyGrouped
	}
	if e.LayerID != grp.LayerID {
		return ErrMixedLayers
	}
	grp.Members = append(grp.Members, id)
	e.GroupID = g
	gi.store.Add(e)
	gi.Changed.Notify()
	return nil
}

// Remove removes id from group g. If the group's membership falls to 1,
// the group auto-dissolves (its last member's GroupID is cleared too).
func (gi *EntityGroupIndex) Remove(g, id idgen.ID) {
	grp, ok := gi.groups[g]
	if !ok {
		return
	}
	for i, m := range grp.Members {
		if m == id {
			grp.Members = append(grp.Members[:i], grp.Members[i+1:]...)
			break
		}
	}
	if e, ok := gi.store.Get(id); ok {
		e.GroupID = ""
		gi.store.Add(e)
	}
	if len(grp.Members) < 2 {
		gi.Ungroup(g)
		return
	}
	gi.Changed.Notify()
}

// MembersOf returns the member ids of group g.
func (gi *EntityGroupIndex) MembersOf(g idgen.ID) []idgen.ID {
	grp, ok := gi.groups[g]
	if !ok {
		return nil
	}
	return append([]idgen.ID(nil), grp.Members...)
}

// GroupOf returns the group id owning entity id, or "" if ungrouped.
func (gi *EntityGroupIndex) GroupOf(id idgen.ID) idgen.ID {
	if e, ok := gi.store.Get(id); ok {
		return e.GroupID
	}
	return ""
}

// Get returns the group with the given id.
func (gi *EntityGroupIndex) Get(g idgen.ID) (EntityGroup, bool) {
	grp, ok := gi.groups[g]
	if !ok {
		return EntityGroup{}, false
	}
	return *grp, true
}

// All returns every live group.
func (gi *EntityGroupIndex) All() []EntityGroup {
	out := make([]EntityGroup, 0, len(gi.groups))
	for _, g := range gi.groups {
		out = append(out, *g)
	}
	return out
}
