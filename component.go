package ecscore

import (
	"reflect"
	"sync"
	"unsafe"
)

// ComponentTypeID (CTI) is the process-wide stable identifier for a
// registered component type. Component ids double as archetype bitset
// positions, so they are assigned densely starting at zero by the
// registry rather than derived from a hash.
type ComponentTypeID uint32

// ComponentDescriptor is the immutable, per-type metadata the registry
// stores once a component type is registered: its id, its in-memory
// layout, an optional drop routine, and a debug name.
type ComponentDescriptor struct {
	ID    ComponentTypeID
	Size  uint32
	Align uint32
	// Drop is invoked on a component's bytes just before a row holding it
	// is discarded (swap-remove, or replacement during a structural
	// migration that does not carry the component to the destination
	// archetype). Most components are plain data and leave this nil.
	Drop func(ptr unsafe.Pointer, count int)
	Name string
	// Type is the component's real Go type, set by RegisterComponent[T] so
	// its column can back its storage with a GC-scanned typed array
	// instead of a raw byte slab (see column.go) — required for any T
	// holding a pointer, slice, map, interface, or string field. Left nil
	// for descriptors registered through the C accessor surface
	// (WorldRegister), whose callers supply raw foreign memory that by
	// construction holds no Go pointers; column.go falls back to a
	// same-sized byte array in that case.
	Type reflect.Type
}

// Registry maps component-type ids to their descriptors. A registry never
// overwrites an existing entry; see Register.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[ComponentTypeID]ComponentDescriptor
	byType      map[reflect.Type]ComponentTypeID
	next        ComponentTypeID
	// nameCache backs LookupByName, for callers that address components
	// by their registered name rather than by raw id. It is a
	// SimpleCache (see cache.go) rather than a second plain map.
	nameCache *SimpleCache[ComponentDescriptor]
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[ComponentTypeID]ComponentDescriptor),
		byType:      make(map[reflect.Type]ComponentTypeID),
		nameCache: &SimpleCache[ComponentDescriptor]{
			itemIndices: make(map[string]int),
			maxCapacity: 1 << 16,
		},
	}
}

// Register stores descriptor iff descriptor.ID is not already known.
// Returns false without modifying the registry otherwise. A second,
// differing registration of the same id (mismatched size/align) is a
// configuration error the caller must detect and surface; the registry
// itself only refuses the overwrite.
func (r *Registry) Register(descriptor ComponentDescriptor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[descriptor.ID]; exists {
		return false
	}
	r.descriptors[descriptor.ID] = descriptor
	// Best-effort: a full name cache never blocks registration, it just
	// stops serving LookupByName for the overflow.
	r.nameCache.Register(descriptor.Name, descriptor)
	return true
}

// Lookup returns the descriptor for id, if registered.
func (r *Registry) Lookup(id ComponentTypeID) (ComponentDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// LookupByName returns the descriptor registered under debug name name
// (a component's Go type string, e.g. "main.Position").
func (r *Registry) LookupByName(name string) (ComponentDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.nameCache.GetIndex(name)
	if !ok {
		return ComponentDescriptor{}, false
	}
	return *r.nameCache.GetItem(idx), true
}

// idFor returns the stable id for T, registering a fresh descriptor (and
// assigning the next dense id) the first time T is seen.
func idFor[T any](r *Registry) ComponentTypeID {
	var zero T
	t := reflect.TypeOf(zero)

	r.mu.Lock()
	if id, ok := r.byType[t]; ok {
		r.mu.Unlock()
		return id
	}
	id := r.next
	r.next++
	desc := ComponentDescriptor{
		ID:    id,
		Size:  uint32(unsafe.Sizeof(zero)),
		Align: uint32(t.Align()),
		Name:  t.String(),
		Type:  t,
	}
	r.byType[t] = id
	r.mu.Unlock()

	r.Register(desc)
	return id
}

// Component is a typed handle onto a registered component type, used to
// build queries, declare access, and read/write a specific component's
// bytes through typed pointers instead of raw unsafe.Pointer arithmetic.
type Component[T any] struct {
	id ComponentTypeID
}

// ID returns the component-type id this handle was registered under.
func (c Component[T]) ID() ComponentTypeID { return c.id }

// RegisterComponent registers T against w's component registry (a no-op,
// returning the existing handle, if T was already registered) and returns
// a typed handle for declaring queries and access over T.
func RegisterComponent[T any](w *World) Component[T] {
	return Component[T]{id: idFor[T](w.registry)}
}

// componentSource is the internal contract World.Spawn uses to initialize
// a freshly pushed row's component bytes from a typed value.
type componentSource interface {
	componentID() ComponentTypeID
	writeInto(ptr unsafe.Pointer)
}

type valueSource[T any] struct {
	id    ComponentTypeID
	value T
}

func (s valueSource[T]) componentID() ComponentTypeID { return s.id }

func (s valueSource[T]) writeInto(ptr unsafe.Pointer) {
	*(*T)(ptr) = s.value
}

// With builds a spawn-time component source pairing a typed handle with
// its initial value, e.g. world.Spawn(With(position, Position{}), ...).
func With[T any](c Component[T], value T) componentSource {
	return valueSource[T]{id: c.id, value: value}
}
