package ecscore

import "unsafe"

// This file is the flat, opaque-handle accessor surface a foreign
// caller (no generics, no Go interfaces) drives the core through. Every
// function takes and returns plain values — handles instead of pointers
// to Go structs directly, status codes instead of error values — so the
// surface stays stable across the module's internal refactors. No cgo
// is involved; "C-style" describes the calling convention, not the
// implementation.

// Status is the result code every accessor function below returns in
// place of a Go error, for callers that cannot consume Go's error
// interface.
type Status int

const (
	StatusOk Status = iota
	StatusEntityNotFound
	StatusComponentAlreadyPresent
	StatusComponentNotPresent
	StatusComponentNotRegistered
)

func statusFor(err error) Status {
	if err == nil {
		return StatusOk
	}
	coreErr, ok := err.(*Error)
	if !ok {
		return StatusEntityNotFound
	}
	switch coreErr.Kind {
	case KindComponentAlreadyPresent:
		return StatusComponentAlreadyPresent
	case KindComponentNotPresent:
		return StatusComponentNotPresent
	case KindComponentNotRegistered:
		return StatusComponentNotRegistered
	default:
		return StatusEntityNotFound
	}
}

// WorldRegister registers descriptor against world's component registry,
// returning false iff descriptor.ID was already registered.
func WorldRegister(world *World, descriptor ComponentDescriptor) bool {
	return world.registry.Register(descriptor)
}

// WorldAddComponent adds cti to id, initializing it from srcPtr (nil
// zero-initializes).
func WorldAddComponent(world *World, id EntityId, cti ComponentTypeID, srcPtr unsafe.Pointer) Status {
	return statusFor(world.AddComponentRaw(id, cti, srcPtr))
}

// WorldRemoveComponent removes cti from id.
func WorldRemoveComponent(world *World, id EntityId, cti ComponentTypeID) Status {
	return statusFor(world.RemoveComponentRaw(id, cti))
}

// WorldHasComponent reports whether id currently carries cti.
func WorldHasComponent(world *World, id EntityId, cti ComponentTypeID) bool {
	return world.HasComponent(id, cti)
}

// WorldGetComponentPtr returns a raw pointer to id's cti bytes, or nil.
func WorldGetComponentPtr(world *World, id EntityId, cti ComponentTypeID) unsafe.Pointer {
	ptr, ok := world.GetComponentPtr(id, cti)
	if !ok {
		return nil
	}
	return ptr
}

// ArchetypeFilterHandle is an opaque handle to a query's live iteration
// state, returned by ArchetypeFilterNew and consumed by the
// ArchetypeFilter* functions below.
type ArchetypeFilterHandle struct {
	matching  EntityLayout
	excluding EntityLayout
	idx       int
	current   *Archetype
}

// ArchetypeFilterNew creates a filter handle over the given matching and
// excluding layouts. It does not touch world until ArchetypeFilterNext is
// called.
func ArchetypeFilterNew(matching, excluding EntityLayout) *ArchetypeFilterHandle {
	return &ArchetypeFilterHandle{matching: matching, excluding: excluding}
}

// ArchetypeFilterNext advances the filter to the next archetype of world
// matching its layouts, returning false once exhausted.
func ArchetypeFilterNext(filter *ArchetypeFilterHandle, world *World) bool {
	for filter.idx < len(world.archetypes) {
		arch := world.archetypes[filter.idx]
		filter.idx++
		layout := arch.EntityLayout()
		if filter.matching.IsSubsetOf(layout) && filter.excluding.IsDisjointFrom(layout) {
			filter.current = arch
			return true
		}
	}
	filter.current = nil
	return false
}

// ArchetypeFilterCurrent returns the archetype the filter is currently
// positioned on, or nil before the first ArchetypeFilterNext call or
// after exhaustion.
func ArchetypeFilterCurrent(filter *ArchetypeFilterHandle) *Archetype {
	return filter.current
}

// ArchetypeFilterDestroy releases filter. The handle must not be reused
// afterward.
func ArchetypeFilterDestroy(filter *ArchetypeFilterHandle) {
	filter.current = nil
	filter.idx = int(^uint(0) >> 1) // inert; any subsequent Next returns false
}

// ArchetypeGetLen returns an archetype's live row count.
func ArchetypeGetLen(arch *Archetype) int { return arch.Len() }

// ArchetypeGetCapacity returns an archetype's current row capacity.
func ArchetypeGetCapacity(arch *Archetype) int { return arch.Capacity() }

// ArchetypeGetEntityLayout returns an archetype's component-set layout.
func ArchetypeGetEntityLayout(arch *Archetype) EntityLayout { return arch.EntityLayout() }

// ArchetypeGetComponentIndex returns cti's column index within arch, or
// -1 if arch's layout does not contain cti.
func ArchetypeGetComponentIndex(arch *Archetype, cti ComponentTypeID) int {
	return arch.ComponentIndex(cti)
}

// ArchetypeGetStorageByIndex returns a raw pointer to the row-0 base of
// the column at columnIndex (layout order), or nil if out of range. A
// foreign caller strides through rows using the component's registered
// Size.
func ArchetypeGetStorageByIndex(arch *Archetype, columnIndex int) unsafe.Pointer {
	if columnIndex < 0 || columnIndex >= len(arch.columns) {
		return nil
	}
	return arch.columns[columnIndex].ptr(0)
}

// ArchetypeGetComponentDescriptions returns the descriptors of every
// component in arch's layout, in column order.
func ArchetypeGetComponentDescriptions(arch *Archetype, registry *Registry) []ComponentDescriptor {
	ids := arch.EntityLayout().IDs()
	out := make([]ComponentDescriptor, 0, len(ids))
	for _, id := range ids {
		if desc, ok := registry.Lookup(id); ok {
			out = append(out, desc)
		}
	}
	return out
}
