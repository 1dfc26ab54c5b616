package ecscore

import (
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// archetypeIndex is a stable reference to an archetype within a World's
// archetype vector. Archetypes are never destroyed or reordered, so an
// index stays valid for the life of the World.
type archetypeIndex uint32

// Archetype is the struct-of-arrays column store for every entity sharing
// one EntityLayout: one growable, type-erased column per component plus
// an entity-id column, all kept at identical length and capacity.
type Archetype struct {
	index     archetypeIndex
	layout    EntityLayout
	entityIDs []EntityId
	columns   []*column          // parallel to layout.IDs()
	byID      map[ComponentTypeID]*column
}

func newArchetype(idx archetypeIndex, layout EntityLayout, registry *Registry) *Archetype {
	a := &Archetype{
		index:  idx,
		layout: layout,
		byID:   make(map[ComponentTypeID]*column, layout.Len()),
	}
	for _, cti := range layout.IDs() {
		desc, ok := registry.Lookup(cti)
		if !ok {
			// Invariant violation: a layout may only name registered ids.
			panic(bark.AddTrace(newError(KindComponentNotRegistered, "archetype built from unregistered component")))
		}
		col := newColumn(desc, Config.DefaultColumnCapacity)
		a.columns = append(a.columns, col)
		a.byID[cti] = col
	}
	if ev := Config.ColumnEvents.OnArchetypeCreated; ev != nil {
		ev(layout)
	}
	return a
}

// ID returns the archetype's stable index.
func (a *Archetype) ID() archetypeIndex { return a.index }

// EntityLayout returns the archetype's component-set layout.
func (a *Archetype) EntityLayout() EntityLayout { return a.layout }

// Len returns the number of live rows.
func (a *Archetype) Len() int { return len(a.entityIDs) }

// Capacity returns the current row capacity shared by all columns.
func (a *Archetype) Capacity() int {
	if len(a.columns) > 0 {
		return a.columns[0].capacity
	}
	// A zero-component archetype (tag-only entities) tracks capacity via
	// the entity-id slice alone.
	return cap(a.entityIDs)
}

// ComponentIndex returns cti's column index in layout order, or -1.
func (a *Archetype) ComponentIndex(cti ComponentTypeID) int {
	return a.layout.IndexOf(cti)
}

// EntityAt returns the entity id stored at row.
func (a *Archetype) EntityAt(row int) EntityId { return a.entityIDs[row] }

// ComponentPtr returns a raw pointer to cti's bytes at row. Returns false
// if cti is not part of this archetype's layout; callers enforce
// aliasing.
func (a *Archetype) ComponentPtr(cti ComponentTypeID, row int) (unsafe.Pointer, bool) {
	col, ok := a.byID[cti]
	if !ok {
		return nil, false
	}
	return col.ptr(row), true
}

// push appends a new row for id, zero-initializing every column and then
// applying any sources whose component id is part of this archetype.
// Returns the new row index.
func (a *Archetype) push(id EntityId, sources ...componentSource) int {
	row := len(a.entityIDs)
	a.entityIDs = append(a.entityIDs, id)
	for _, col := range a.columns {
		onGrow := columnGrowHook(a.layout, col)
		col.pushZero(onGrow)
	}
	for _, src := range sources {
		if col, ok := a.byID[src.componentID()]; ok {
			src.writeInto(col.ptr(row))
		}
	}
	if ev := Config.ColumnEvents.OnRowPush; ev != nil {
		ev(a.layout, row)
	}
	return row
}

// copyComponentRaw byte-moves cti's bytes from (src, srcRow) into this
// archetype's row, without running any drop routine (used for migrating
// components shared by source and destination layouts).
func (a *Archetype) copyComponentRaw(cti ComponentTypeID, src *Archetype, srcRow, dstRow int) {
	dstCol, ok := a.byID[cti]
	if !ok {
		return
	}
	srcCol, ok := src.byID[cti]
	if !ok {
		return
	}
	dstCol.writeFrom(dstRow, srcCol.ptr(srcRow))
}

// swapRemove drops row (running every present component's drop routine),
// moves the last row into its place, and truncates by one. Returns the
// EntityId that was relocated into row, and whether a relocation
// happened (false when row was already last).
func (a *Archetype) swapRemove(row int) (EntityId, bool) {
	last := len(a.entityIDs) - 1
	for _, col := range a.columns {
		col.swapRemove(row)
	}
	relocated := EntityId{}
	moved := false
	if row != last {
		relocated = a.entityIDs[last]
		a.entityIDs[row] = relocated
		moved = true
	}
	a.entityIDs = a.entityIDs[:last]
	if ev := Config.ColumnEvents.OnRowSwapRemove; ev != nil {
		ev(a.layout, row, relocated)
	}
	return relocated, moved
}

// swapRemoveMoved relocates the last row into row and truncates, without
// running any column's drop routine. It is used by structural migration
// (add/remove component), where every component byte in row has already
// either been raw-copied to the destination archetype or explicitly
// dropped by the caller — see World.migrate.
func (a *Archetype) swapRemoveMoved(row int) (EntityId, bool) {
	last := len(a.entityIDs) - 1
	for _, col := range a.columns {
		size := int(col.elemType.Size())
		if row != last {
			copy(unsafe.Slice((*byte)(col.ptr(row)), size), unsafe.Slice((*byte)(col.ptr(last)), size))
		}
		col.length--
	}
	relocated := EntityId{}
	moved := false
	if row != last {
		relocated = a.entityIDs[last]
		a.entityIDs[row] = relocated
		moved = true
	}
	a.entityIDs = a.entityIDs[:last]
	if ev := Config.ColumnEvents.OnRowSwapRemove; ev != nil {
		ev(a.layout, row, relocated)
	}
	return relocated, moved
}

func columnGrowHook(layout EntityLayout, col *column) func(int, int) {
	ev := Config.ColumnEvents.OnColumnGrow
	if ev == nil {
		return nil
	}
	return func(oldCap, newCap int) { ev(layout, oldCap, newCap) }
}
