package ecscore

import (
	"reflect"
	"unsafe"
)

var byteType = reflect.TypeOf(byte(0))

// elementType returns the Go type a column should back its storage with:
// the component's real registered type when known, or a same-sized byte
// array for descriptors that arrived without one (the C accessor
// surface's WorldRegister, whose callers own foreign memory already known
// to hold no Go pointers).
func elementType(descriptor ComponentDescriptor) reflect.Type {
	if descriptor.Type != nil {
		return descriptor.Type
	}
	return reflect.ArrayOf(int(descriptor.Size), byteType)
}

// column is one component's type-erased, growable backing store: len
// rows of elemType, held in a reflect.New(reflect.ArrayOf(...))-allocated
// array rather than a raw []byte slab, so the garbage collector scans the
// backing memory for pointers exactly as it would any other Go value of
// elemType — a raw []byte slab is invisible to the GC and would silently
// leave any pointer-bearing component field untracked. Typed pointer
// arithmetic over the array's address then gives the same row-at-a-time
// access a []byte slab would. Grounded on delaneyj-arche's
// NewReflectStorage/extend and edwinsyarief-lazyecs's equivalent
// reflect.MakeSlice-backed columns.
type column struct {
	descriptor ComponentDescriptor
	elemType   reflect.Type
	buffer     reflect.Value // addressable [capacity]elemType array
	base       unsafe.Pointer
	length     int
	capacity   int
}

func newColumn(descriptor ComponentDescriptor, initialCapacity int) *column {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	elemType := elementType(descriptor)
	buffer := reflect.New(reflect.ArrayOf(initialCapacity, elemType)).Elem()
	return &column{
		descriptor: descriptor,
		elemType:   elemType,
		buffer:     buffer,
		base:       buffer.Addr().UnsafePointer(),
		capacity:   initialCapacity,
	}
}

func (c *column) reserve(rows int, onGrow func(oldCap, newCap int)) {
	if rows <= c.capacity {
		return
	}
	newCap := max(rows, 2*c.capacity)
	newBuffer := reflect.New(reflect.ArrayOf(newCap, c.elemType)).Elem()
	reflect.Copy(newBuffer, c.buffer.Slice(0, c.length))
	if onGrow != nil {
		onGrow(c.capacity, newCap)
	}
	c.buffer = newBuffer
	c.base = newBuffer.Addr().UnsafePointer()
	c.capacity = newCap
}

// ptr returns a pointer to row's bytes. The caller enforces aliasing.
func (c *column) ptr(row int) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(row)*c.elemType.Size())
}

// pushZero grows if needed and appends one zero-valued row, returning its
// index. Zeroing raw bytes is safe regardless of elemType: the all-zero
// bit pattern is always a valid value (including for pointers, which zero
// to nil), unlike an arbitrary byte copy of live data.
func (c *column) pushZero(onGrow func(oldCap, newCap int)) int {
	c.reserve(c.length+1, onGrow)
	row := c.length
	c.length++
	size := c.elemType.Size()
	dst := c.ptr(row)
	for i := uintptr(0); i < size; i++ {
		*(*byte)(unsafe.Add(dst, i)) = 0
	}
	return row
}

// writeFrom copies size bytes from src into row's slot, bypassing any drop
// routine (used for spawn/migration initialization, not disposal).
func (c *column) writeFrom(row int, src unsafe.Pointer) {
	size := c.elemType.Size()
	dst := c.ptr(row)
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}

// swapRemove drops row's component (running its Drop routine, if any),
// moves the last row's bytes into row, and truncates by one. If row is
// already the last row, only the drop call and the truncation happen.
func (c *column) swapRemove(row int) {
	size := c.elemType.Size()
	if c.descriptor.Drop != nil {
		c.descriptor.Drop(c.ptr(row), 1)
	}
	last := c.length - 1
	if row != last {
		copy(unsafe.Slice((*byte)(c.ptr(row)), size), unsafe.Slice((*byte)(c.ptr(last)), size))
	}
	c.length--
}
