package ecscore

// factory implements the factory pattern for constructing the package's
// core handles, mirroring the single global Factory instance this
// package exposes for every other constructor.
type factory struct{}

// Factory is the global factory instance for creating ecscore handles.
var Factory factory

// NewWorld creates a new, empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewQuery creates a new, unconstrained Query.
func (f factory) NewQuery() *Query {
	return NewQuery()
}

// NewCommandBuffer creates a new, empty CommandBuffer.
func (f factory) NewCommandBuffer() *CommandBuffer {
	return NewCommandBuffer()
}

// FactoryNewCache creates a new Cache with the specified capacity, for
// embedding applications that want the same name→value registry ecscore
// uses internally (see Registry.nameCache).
func FactoryNewCache[T any](capacity int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: capacity,
	}
}
