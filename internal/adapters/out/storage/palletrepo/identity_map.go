package palletrepo

import (
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// aggregateTracker keeps one object per stored identity during a unit of work.
// Repositories consult it before rebuilding an entity, so pointer-based ownership
// checks in the domain see the same pallet and box objects across repository calls.
type aggregateTracker interface {
	TrackPallet(aggregate *pallet.Pallet)
	TrackBox(box *pallet.Box)
	TrackedPallet(id kernel.ID) (*pallet.Pallet, bool)
	TrackedBox(id kernel.ID) (*pallet.Box, bool)
}

// IdentityMap is the in-memory aggregateTracker used by the unit of work.
// It is not safe for concurrent use; each unit of work owns its own map.
type IdentityMap struct {
	pallets map[kernel.ID]*pallet.Pallet
	boxes   map[kernel.ID]*pallet.Box
}

// NewIdentityMap creates an empty identity map.
func NewIdentityMap() *IdentityMap {
	return &IdentityMap{
		pallets: make(map[kernel.ID]*pallet.Pallet),
		boxes:   make(map[kernel.ID]*pallet.Box),
	}
}

// TrackPallet registers a stored pallet together with every box it carries.
func (m *IdentityMap) TrackPallet(aggregate *pallet.Pallet) {
	if aggregate.ID().IsZero() {
		return
	}
	m.pallets[aggregate.ID()] = aggregate
	for _, box := range aggregate.Boxes() {
		m.TrackBox(box)
	}
}

// TrackBox registers a stored box.
func (m *IdentityMap) TrackBox(box *pallet.Box) {
	if box.ID().IsZero() {
		return
	}
	m.boxes[box.ID()] = box
}

// TrackedPallet returns the pallet already handed out for id.
func (m *IdentityMap) TrackedPallet(id kernel.ID) (*pallet.Pallet, bool) {
	p, ok := m.pallets[id]
	return p, ok
}

// TrackedBox returns the box already handed out for id.
func (m *IdentityMap) TrackedBox(id kernel.ID) (*pallet.Box, bool) {
	b, ok := m.boxes[id]
	return b, ok
}

// Len returns the number of tracked pallets and boxes.
func (m *IdentityMap) Len() int {
	return len(m.pallets) + len(m.boxes)
}
