package ecscore

import "sync"

// CapabilityID names a queryable capability a World (or another part of
// the engine) can expose. Go interfaces already carry dynamic dispatch,
// so the two-step "get interface pointer, then get capability pointer"
// pattern collapses to a single id→value registry: QueryInterface is the
// one dynamic-capability lookup the rest of the engine needs, in place of
// a hand-rolled vtable cast.
type CapabilityID uint32

// CapWorldView is the capability every World registers against itself:
// callers that only hold a Provider can still recover the concrete World
// to run queries or commands through it.
const CapWorldView CapabilityID = 0

// Provider is implemented by anything that exposes capabilities by id.
// World implements it directly.
type Provider interface {
	QueryInterface(id CapabilityID) (any, bool)
}

// CapabilityRegistry is a fixed registry of capability id to implementing
// value, used the same way Registry keys component descriptors by id:
// register once, look up by the stable numeric key afterward.
type CapabilityRegistry struct {
	mu    sync.RWMutex
	items map[CapabilityID]any
	next  CapabilityID
}

// NewCapabilityRegistry creates an empty capability registry.
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{items: make(map[CapabilityID]any)}
}

// Provide registers value under id, overwriting any prior registration.
func (r *CapabilityRegistry) Provide(id CapabilityID, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = value
}

// NextID allocates a fresh, previously-unused capability id, for callers
// that mint their own capability kinds rather than using a predeclared
// constant like CapWorldView.
func (r *CapabilityRegistry) NextID() CapabilityID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next
}

// Lookup returns the value registered under id, if any.
func (r *CapabilityRegistry) Lookup(id CapabilityID) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	return v, ok
}

// QueryInterface implements Provider for World: CapWorldView always
// resolves to w itself, and any capability the embedding application
// registered via w.Capabilities().Provide resolves alongside it.
func (w *World) QueryInterface(id CapabilityID) (any, bool) {
	if id == CapWorldView {
		return w, true
	}
	return w.capabilities.Lookup(id)
}

// Capabilities exposes the World's capability registry so embedding code
// can Provide additional capabilities (custom renderers, asset loaders,
// anything else a system might want to recover via QueryInterface).
func (w *World) Capabilities() *CapabilityRegistry { return w.capabilities }

var _ Provider = (*World)(nil)
