package ecscore

import (
	"fmt"
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

// World is the top-level facade composing the component registry, entity
// storage, archetype vector and typed resource map. All structural
// mutation (Spawn, Despawn, AddComponent, RemoveComponent) requires
// exclusive access. The scheduler hands the same *World to parallel
// systems as a shared handle; those systems record structural mutation
// in their *CommandBuffer instead of calling these methods, and only
// pre/post-exclusive systems mutate the World directly (see
// schedule.Executor). Nothing in World itself enforces this.
type World struct {
	registry     *Registry
	entities     *EntityStorage
	archetypes   []*Archetype
	byLayout     map[mask.Mask]archetypeIndex
	resources    map[resourceID]*resourceSlot
	capabilities *CapabilityRegistry
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		registry:     NewRegistry(),
		entities:     NewEntityStorage(),
		byLayout:     make(map[mask.Mask]archetypeIndex),
		resources:    make(map[resourceID]*resourceSlot),
		capabilities: NewCapabilityRegistry(),
	}
}

// Registry exposes the component registry for callers that need raw CTI
// lookups (e.g. the C accessor surface).
func (w *World) Registry() *Registry { return w.registry }

// Archetypes returns every archetype currently known to the World, in
// stable index order. The slice itself must not be mutated.
func (w *World) Archetypes() []*Archetype { return w.archetypes }

// ensureArchetype returns the archetype for layout, creating an empty one
// (columns in layout order, a fresh stable index) if none exists yet.
func (w *World) ensureArchetype(layout EntityLayout) *Archetype {
	key := layout.bitsKey()
	if idx, ok := w.byLayout[key]; ok {
		return w.archetypes[idx]
	}
	idx := archetypeIndex(len(w.archetypes))
	arch := newArchetype(idx, layout, w.registry)
	w.archetypes = append(w.archetypes, arch)
	w.byLayout[key] = idx
	return arch
}

// Spawn inserts a new entity built from sources (each produced by With),
// creating the destination archetype if needed. Returns the new EntityId.
func (w *World) Spawn(sources ...componentSource) EntityId {
	ids := make([]ComponentTypeID, len(sources))
	for i, s := range sources {
		ids[i] = s.componentID()
	}
	layout := NewEntityLayout(ids...)
	arch := w.ensureArchetype(layout)

	id := w.entities.Allocate()
	row := arch.push(id, sources...)
	w.entities.SetLocation(id, entityLocation{archetype: arch.index, row: row})
	return id
}

// Despawn removes id from storage, compacting its archetype via
// swap-remove and patching the slot of whichever entity got relocated.
func (w *World) Despawn(id EntityId) error {
	loc, ok := w.entities.Resolve(id)
	if !ok {
		return newError(KindEntityNotFound, id.debugString())
	}
	arch := w.archetypes[loc.archetype]
	relocated, moved := arch.swapRemove(loc.row)
	if moved {
		w.entities.SetLocation(relocated, entityLocation{archetype: loc.archetype, row: loc.row})
	}
	w.entities.Free(id)
	return nil
}

// HasComponent reports whether id currently carries cti.
func (w *World) HasComponent(id EntityId, cti ComponentTypeID) bool {
	loc, ok := w.entities.Resolve(id)
	if !ok {
		return false
	}
	return w.archetypes[loc.archetype].EntityLayout().Contains(cti)
}

// GetComponentPtr resolves id then looks up cti's column, returning a raw
// pointer to the component's bytes. Callers enforce the aliasing
// contract; see Component[T] / query accessors for the typed, safe path.
func (w *World) GetComponentPtr(id EntityId, cti ComponentTypeID) (unsafe.Pointer, bool) {
	loc, ok := w.entities.Resolve(id)
	if !ok {
		return nil, false
	}
	return w.archetypes[loc.archetype].ComponentPtr(cti, loc.row)
}

// AddComponentRaw migrates id to the archetype for (current layout + cti),
// copying every shared component across by raw byte-move and initializing
// cti's bytes from src (a pointer to the registered descriptor's Size
// bytes; nil zero-initializes). Fails if id is unknown, cti is
// unregistered, or id already carries cti.
func (w *World) AddComponentRaw(id EntityId, cti ComponentTypeID, src unsafe.Pointer) error {
	loc, ok := w.entities.Resolve(id)
	if !ok {
		return newError(KindEntityNotFound, id.debugString())
	}
	desc, ok := w.registry.Lookup(cti)
	if !ok {
		return newError(KindComponentNotRegistered, "")
	}
	srcArch := w.archetypes[loc.archetype]
	if srcArch.EntityLayout().Contains(cti) {
		return newError(KindComponentAlreadyPresent, desc.Name)
	}

	destLayout := srcArch.EntityLayout().withAdded(cti)
	destArch := w.ensureArchetype(destLayout)

	dstRow := destArch.push(id)
	for _, shared := range srcArch.EntityLayout().IDs() {
		destArch.copyComponentRaw(shared, srcArch, loc.row, dstRow)
	}
	if col, ok := destArch.byID[cti]; ok {
		if src != nil {
			col.writeFrom(dstRow, src)
		}
	}

	relocated, moved := srcArch.swapRemoveMoved(loc.row)
	if moved {
		w.entities.SetLocation(relocated, entityLocation{archetype: loc.archetype, row: loc.row})
	}
	w.entities.SetLocation(id, entityLocation{archetype: destArch.index, row: dstRow})
	return nil
}

// RemoveComponentRaw migrates id to the archetype for (current layout -
// cti), running cti's drop routine at the source row and byte-moving
// every remaining component across. Fails if id is unknown or does not
// currently carry cti.
func (w *World) RemoveComponentRaw(id EntityId, cti ComponentTypeID) error {
	loc, ok := w.entities.Resolve(id)
	if !ok {
		return newError(KindEntityNotFound, id.debugString())
	}
	srcArch := w.archetypes[loc.archetype]
	if !srcArch.EntityLayout().Contains(cti) {
		return newError(KindComponentNotPresent, "")
	}

	if desc, ok := w.registry.Lookup(cti); ok && desc.Drop != nil {
		if ptr, ok := srcArch.ComponentPtr(cti, loc.row); ok {
			desc.Drop(ptr, 1)
		}
	}

	destLayout := srcArch.EntityLayout().withRemoved(cti)
	destArch := w.ensureArchetype(destLayout)

	dstRow := destArch.push(id)
	for _, kept := range destArch.EntityLayout().IDs() {
		destArch.copyComponentRaw(kept, srcArch, loc.row, dstRow)
	}

	relocated, moved := srcArch.swapRemoveMoved(loc.row)
	if moved {
		w.entities.SetLocation(relocated, entityLocation{archetype: loc.archetype, row: loc.row})
	}
	w.entities.SetLocation(id, entityLocation{archetype: destArch.index, row: dstRow})
	return nil
}

// AddComponent is the typed, generic convenience wrapper over
// AddComponentRaw for callers holding a Component[T] handle.
func AddComponent[T any](w *World, id EntityId, c Component[T], value T) error {
	return w.AddComponentRaw(id, c.ID(), unsafe.Pointer(&value))
}

// RemoveComponent is the typed, generic convenience wrapper over
// RemoveComponentRaw.
func RemoveComponent[T any](w *World, id EntityId, c Component[T]) error {
	return w.RemoveComponentRaw(id, c.ID())
}

// GetComponent returns a typed pointer to id's T component, or false if id
// is unknown or does not carry T.
func GetComponent[T any](w *World, id EntityId, c Component[T]) (*T, bool) {
	ptr, ok := w.GetComponentPtr(id, c.ID())
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

func (id EntityId) debugString() string {
	return fmt.Sprintf("entity(index=%d,gen=%d)", id.Index, id.Generation)
}
