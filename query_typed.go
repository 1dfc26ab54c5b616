package ecscore

// This file layers typed, ergonomic iteration on top of QueryIterator for
// the common case of a fixed, small arity of write-access components —
// the resolved alternative to handing every caller a raw QueryIterator
// plus manual ComponentPtr casts.

// Iter1 yields (EntityId, *A) pairs for a one-component query.
type Iter1[A any] struct {
	it *QueryIterator
	a  Component[A]
}

// Query1 runs a write-access query over A, optionally excluding the
// given component ids, and returns a typed iterator.
func Query1[A any](w *World, a Component[A], excludes ...componentRef) *Iter1[A] {
	q := NewQuery().Writes(a)
	for _, e := range excludes {
		q.Without(e)
	}
	return &Iter1[A]{it: q.Run(w), a: a}
}

// Next advances the iterator, returning the next entity and its A
// component pointer, or false when exhausted.
func (i *Iter1[A]) Next() (EntityId, *A, bool) {
	id, arch, row, ok := i.it.Next()
	if !ok {
		return EntityId{}, nil, false
	}
	ptr, _ := arch.ComponentPtr(i.a.ID(), row)
	return id, (*A)(ptr), true
}

// Iter2 yields (EntityId, *A, *B) pairs for a two-component query.
type Iter2[A, B any] struct {
	it *QueryIterator
	a  Component[A]
	b  Component[B]
}

// Query2 runs a write-access query over A and B.
func Query2[A, B any](w *World, a Component[A], b Component[B], excludes ...componentRef) *Iter2[A, B] {
	q := NewQuery().Writes(a).Writes(b)
	for _, e := range excludes {
		q.Without(e)
	}
	return &Iter2[A, B]{it: q.Run(w), a: a, b: b}
}

func (i *Iter2[A, B]) Next() (EntityId, *A, *B, bool) {
	id, arch, row, ok := i.it.Next()
	if !ok {
		return EntityId{}, nil, nil, false
	}
	aPtr, _ := arch.ComponentPtr(i.a.ID(), row)
	bPtr, _ := arch.ComponentPtr(i.b.ID(), row)
	return id, (*A)(aPtr), (*B)(bPtr), true
}

// Iter3 yields (EntityId, *A, *B, *C) pairs for a three-component query.
type Iter3[A, B, C any] struct {
	it *QueryIterator
	a  Component[A]
	b  Component[B]
	c  Component[C]
}

// Query3 runs a write-access query over A, B and C.
func Query3[A, B, C any](w *World, a Component[A], b Component[B], c Component[C], excludes ...componentRef) *Iter3[A, B, C] {
	q := NewQuery().Writes(a).Writes(b).Writes(c)
	for _, e := range excludes {
		q.Without(e)
	}
	return &Iter3[A, B, C]{it: q.Run(w), a: a, b: b, c: c}
}

func (i *Iter3[A, B, C]) Next() (EntityId, *A, *B, *C, bool) {
	id, arch, row, ok := i.it.Next()
	if !ok {
		return EntityId{}, nil, nil, nil, false
	}
	aPtr, _ := arch.ComponentPtr(i.a.ID(), row)
	bPtr, _ := arch.ComponentPtr(i.b.ID(), row)
	cPtr, _ := arch.ComponentPtr(i.c.ID(), row)
	return id, (*A)(aPtr), (*B)(bPtr), (*C)(cPtr), true
}

// Iter4 yields (EntityId, *A, *B, *C, *D) pairs for a four-component
// query.
type Iter4[A, B, C, D any] struct {
	it *QueryIterator
	a  Component[A]
	b  Component[B]
	c  Component[C]
	d  Component[D]
}

// Query4 runs a write-access query over A, B, C and D.
func Query4[A, B, C, D any](w *World, a Component[A], b Component[B], c Component[C], d Component[D], excludes ...componentRef) *Iter4[A, B, C, D] {
	q := NewQuery().Writes(a).Writes(b).Writes(c).Writes(d)
	for _, e := range excludes {
		q.Without(e)
	}
	return &Iter4[A, B, C, D]{it: q.Run(w), a: a, b: b, c: c, d: d}
}

func (i *Iter4[A, B, C, D]) Next() (EntityId, *A, *B, *C, *D, bool) {
	id, arch, row, ok := i.it.Next()
	if !ok {
		return EntityId{}, nil, nil, nil, nil, false
	}
	aPtr, _ := arch.ComponentPtr(i.a.ID(), row)
	bPtr, _ := arch.ComponentPtr(i.b.ID(), row)
	cPtr, _ := arch.ComponentPtr(i.c.ID(), row)
	dPtr, _ := arch.ComponentPtr(i.d.ID(), row)
	return id, (*A)(aPtr), (*B)(bPtr), (*C)(cPtr), (*D)(dPtr), true
}
