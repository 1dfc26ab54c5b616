package ecscore

// AccessDescriptor is the read/write footprint a system declares before
// it runs: four sets, two over component-type ids and two over
// resource-type ids. The scheduler places systems whose descriptors
// conflict into different waves rather than letting them run together.
type AccessDescriptor struct {
	componentReads  map[ComponentTypeID]struct{}
	componentWrites map[ComponentTypeID]struct{}
	resourceReads   map[resourceID]struct{}
	resourceWrites  map[resourceID]struct{}
	exclusive       bool
}

// NewAccessDescriptor creates an empty descriptor. Use the builder
// methods (ReadsComponent, WritesComponent, ...) to populate it inside a
// System's DeclareAccess.
func NewAccessDescriptor() *AccessDescriptor {
	return &AccessDescriptor{
		componentReads:  map[ComponentTypeID]struct{}{},
		componentWrites: map[ComponentTypeID]struct{}{},
		resourceReads:   map[resourceID]struct{}{},
		resourceWrites:  map[resourceID]struct{}{},
	}
}

// ReadsComponent records a read of cti.
func (a *AccessDescriptor) ReadsComponent(cti ComponentTypeID) *AccessDescriptor {
	a.componentReads[cti] = struct{}{}
	return a
}

// WritesComponent records a write of cti.
func (a *AccessDescriptor) WritesComponent(cti ComponentTypeID) *AccessDescriptor {
	a.componentWrites[cti] = struct{}{}
	return a
}

// ReadsResource records a read of a resource, keyed by its resourceID.
func (a *AccessDescriptor) ReadsResource(id resourceID) *AccessDescriptor {
	a.resourceReads[id] = struct{}{}
	return a
}

// WritesResource records a write of a resource, keyed by its resourceID.
func (a *AccessDescriptor) WritesResource(id resourceID) *AccessDescriptor {
	a.resourceWrites[id] = struct{}{}
	return a
}

// IsExclusive marks the system as needing the whole World — pre/post
// exclusive systems report true; a parallel system reporting true is a
// scheduler precondition violation and is caught at schedule
// construction time.
func (a *AccessDescriptor) IsExclusive() *AccessDescriptor {
	a.exclusive = true
	return a
}

// Exclusive reports whether IsExclusive was declared.
func (a *AccessDescriptor) Exclusive() bool { return a.exclusive }

// FromQuery merges a query's read/write component sets into the
// descriptor — the common case where a system's access is exactly the
// union of the queries it runs.
func (a *AccessDescriptor) FromQuery(q *Query) *AccessDescriptor {
	reads, writes := q.ReadWriteSets()
	for _, cti := range reads {
		a.componentReads[cti] = struct{}{}
	}
	for _, cti := range writes {
		a.componentWrites[cti] = struct{}{}
	}
	return a
}

// Conflicts reports whether a and b conflict: a writer of either
// overlapping the other's readers or writers, across either components
// or resources. Two exclusive descriptors always conflict with
// everything (including each other), since an exclusive system needs
// the whole World.
func (a *AccessDescriptor) Conflicts(b *AccessDescriptor) bool {
	if a.exclusive || b.exclusive {
		return true
	}
	if setConflicts(a.componentWrites, a.componentReads, b.componentWrites, b.componentReads) {
		return true
	}
	return setConflicts(a.resourceWrites, a.resourceReads, b.resourceWrites, b.resourceReads)
}

// setConflicts implements (writesA ∩ (readsB ∪ writesB)) ∪ (writesB ∩
// readsA) over one of the two (component, resource) domains.
func setConflicts[K comparable](writesA, readsA, writesB, readsB map[K]struct{}) bool {
	for k := range writesA {
		if _, ok := readsB[k]; ok {
			return true
		}
		if _, ok := writesB[k]; ok {
			return true
		}
	}
	for k := range writesB {
		if _, ok := readsA[k]; ok {
			return true
		}
	}
	return false
}

// System is a unit of scheduled work. DeclareAccess is called once per
// system lifetime (the schedule caches the result); Execute runs the
// system body against the handle the executor hands it — an exclusive
// *World for pre/post-exclusive systems, a shared *World plus a
// *CommandBuffer for parallel systems.
type System interface {
	DeclareAccess() *AccessDescriptor
	Execute(w *World, cb *CommandBuffer) error
}

// SystemFunc adapts a plain function plus a precomputed access
// descriptor into a System, for the common case of a system with no
// other state.
type SystemFunc struct {
	Access func() *AccessDescriptor
	Run    func(w *World, cb *CommandBuffer) error
}

func (s SystemFunc) DeclareAccess() *AccessDescriptor         { return s.Access() }
func (s SystemFunc) Execute(w *World, cb *CommandBuffer) error { return s.Run(w, cb) }

var _ System = SystemFunc{}
