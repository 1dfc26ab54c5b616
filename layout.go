package ecscore

import (
	"hash/fnv"
	"sort"

	"github.com/TheBitDrifter/mask"
)

// EntityLayout is the canonical, sorted-and-deduplicated set of
// component-type ids describing one archetype's composition. Two layouts
// built from the same set of ids compare equal regardless of input order.
//
// Component ids double as archetype bitset positions (see ComponentTypeID),
// so EntityLayout keeps a mask.Mask alongside the canonical id slice: the
// mask gives O(1) subset/disjoint tests (ContainsAll/ContainsNone), and
// the sorted id slice gives a stable column order for Archetype.
type EntityLayout struct {
	ids  []ComponentTypeID
	bits mask.Mask
}

// NewEntityLayout sorts and deduplicates ids into a canonical layout.
func NewEntityLayout(ids ...ComponentTypeID) EntityLayout {
	if len(ids) == 0 {
		return EntityLayout{}
	}
	sorted := append([]ComponentTypeID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	deduped := sorted[:1]
	for _, id := range sorted[1:] {
		if id != deduped[len(deduped)-1] {
			deduped = append(deduped, id)
		}
	}

	var bits mask.Mask
	for _, id := range deduped {
		bits.Mark(uint32(id))
	}
	return EntityLayout{ids: deduped, bits: bits}
}

// withAdded returns the canonical layout for self plus id (no-op if
// already present).
func (l EntityLayout) withAdded(id ComponentTypeID) EntityLayout {
	if l.Contains(id) {
		return l
	}
	next := append(append([]ComponentTypeID(nil), l.ids...), id)
	return NewEntityLayout(next...)
}

// withRemoved returns the canonical layout for self minus id (no-op if
// absent).
func (l EntityLayout) withRemoved(id ComponentTypeID) EntityLayout {
	if !l.Contains(id) {
		return l
	}
	next := make([]ComponentTypeID, 0, len(l.ids))
	for _, existing := range l.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	return NewEntityLayout(next...)
}

// IDs returns the canonical, sorted component ids of the layout. The
// returned slice must not be mutated.
func (l EntityLayout) IDs() []ComponentTypeID { return l.ids }

// Len returns the number of distinct components in the layout.
func (l EntityLayout) Len() int { return len(l.ids) }

// Equal reports whether self and other describe the same component set,
// regardless of construction order.
func (l EntityLayout) Equal(other EntityLayout) bool {
	return l.bits == other.bits
}

// Contains reports whether id is part of the layout.
func (l EntityLayout) Contains(id ComponentTypeID) bool {
	var m mask.Mask
	m.Mark(uint32(id))
	return l.bits.ContainsAll(m)
}

// IndexOf returns the column index of id within the layout's canonical
// order, or -1 if id is not part of the layout.
func (l EntityLayout) IndexOf(id ComponentTypeID) int {
	for i, existing := range l.ids {
		if existing == id {
			return i
		}
	}
	return -1
}

// IsSubsetOf reports whether every component of self is present in other.
func (l EntityLayout) IsSubsetOf(other EntityLayout) bool {
	return other.bits.ContainsAll(l.bits)
}

// IsDisjointFrom reports whether self and other share no component.
func (l EntityLayout) IsDisjointFrom(other EntityLayout) bool {
	return l.bits.ContainsNone(other.bits)
}

// Hash returns a value invariant under reordering of the ids used to build
// the layout; equal layouts always hash equal.
func (l EntityLayout) Hash() uint64 {
	h := fnv.New64a()
	for _, id := range l.ids {
		b := [4]byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)}
		h.Write(b[:])
	}
	return h.Sum64()
}

// bitsKey exposes the underlying mask.Mask for use as a map key by World's
// layout→archetype index, which needs a comparable key and EntityLayout's
// id slice makes the struct itself non-comparable.
func (l EntityLayout) bitsKey() mask.Mask { return l.bits }
