package ecscore

// EntityIndex is the slot index half of an EntityId. Index zero is
// reserved for the null entity.
type EntityIndex uint32

// Generation is the recycling counter half of an EntityId. Generation
// zero means dead (the null id); a live slot never holds it, because
// nextGeneration skips 0 on wrap.
type Generation uint32

// EntityId is the (index, generation) pair identifying one entity. The
// packed 64-bit form is the external wire format: low 32 bits are the
// generation, high 32 bits are the index, little-endian. The null id is
// (0, 0).
type EntityId struct {
	Index      EntityIndex
	Generation Generation
}

// NullEntityId is the (0, 0) sentinel; it is never a live entity.
var NullEntityId = EntityId{}

// IsNull reports whether id is the null sentinel.
func (id EntityId) IsNull() bool {
	return id.Index == 0 && id.Generation == 0
}

// Pack encodes id into its ABI-stable 64-bit form: generation in the low
// 32 bits, index in the high 32 bits.
func (id EntityId) Pack() uint64 {
	return uint64(id.Generation) | uint64(id.Index)<<32
}

// UnpackEntityId decodes the ABI-stable 64-bit form back into an EntityId.
func UnpackEntityId(packed uint64) EntityId {
	return EntityId{
		Index:      EntityIndex(packed >> 32),
		Generation: Generation(packed),
	}
}

// nextGeneration increments g, skipping the dead sentinel 0 on wrap.
func nextGeneration(g Generation) Generation {
	g++
	if g == 0 {
		g = 1
	}
	return g
}
