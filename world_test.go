package ecscore

import (
	"errors"
	"testing"
)

func TestArchetypeMigrationAddComponent(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	b := RegisterComponent[uint64](w)

	e1 := w.Spawn(With(a, uint32(0x01020304)))

	got, ok := GetComponent(w, e1, a)
	if !ok || *got != 0x01020304 {
		t.Fatalf("GetComponent(a) = %v, %v", got, ok)
	}

	if err := AddComponent(w, e1, b, uint64(0xAABBCCDD_EEFF0011)); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	if !w.HasComponent(e1, a.ID()) || !w.HasComponent(e1, b.ID()) {
		t.Fatal("e1 missing a component after migration")
	}

	gotA, _ := GetComponent(w, e1, a)
	if *gotA != 0x01020304 {
		t.Fatalf("GetComponent(a) after migration = %#x, want 0x01020304", *gotA)
	}
	gotB, _ := GetComponent(w, e1, b)
	if *gotB != 0xAABBCCDD_EEFF0011 {
		t.Fatalf("GetComponent(b) = %#x, want 0xAABBCCDD_EEFF0011", *gotB)
	}

	if len(w.Archetypes()) != 2 {
		t.Fatalf("len(Archetypes()) = %d, want 2", len(w.Archetypes()))
	}
	layoutA := NewEntityLayout(a.ID())
	for _, arch := range w.Archetypes() {
		if arch.EntityLayout().Equal(layoutA) && arch.Len() != 0 {
			t.Fatalf("archetype {A} has len=%d, want 0", arch.Len())
		}
	}

	// Migrating back out via RemoveComponent must drop B's archetype row
	// and restore the original value for A.
	if err := RemoveComponent(w, e1, b); err != nil {
		t.Fatalf("RemoveComponent: %v", err)
	}
	if w.HasComponent(e1, b.ID()) {
		t.Fatal("e1 still has b after RemoveComponent")
	}
	gotA2, _ := GetComponent(w, e1, a)
	if *gotA2 != 0x01020304 {
		t.Fatalf("GetComponent(a) after remove = %#x, want 0x01020304", *gotA2)
	}
}

func TestDespawnSwapRemove(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)

	e1 := w.Spawn(With(a, uint32(1)))
	e2 := w.Spawn(With(a, uint32(2)))
	e3 := w.Spawn(With(a, uint32(3)))

	arch := w.Archetypes()[0]
	if arch.Len() != 3 {
		t.Fatalf("len = %d, want 3", arch.Len())
	}

	if err := w.Despawn(e2); err != nil {
		t.Fatalf("Despawn: %v", err)
	}

	if arch.Len() != 2 {
		t.Fatalf("len after despawn = %d, want 2", arch.Len())
	}
	loc, ok := w.entities.Resolve(e3)
	if !ok || loc.row != 1 {
		t.Fatalf("resolve(e3) = %+v, %v, want row 1", loc, ok)
	}
	if _, ok := w.entities.Resolve(e2); ok {
		t.Fatal("resolve(e2) succeeded after despawn")
	}
	if _, ok := w.entities.Resolve(e1); !ok {
		t.Fatal("resolve(e1) failed, e1 should be untouched")
	}
}

func TestAddComponentAlreadyPresent(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	e := w.Spawn(With(a, uint32(1)))

	err := AddComponent(w, e, a, uint32(2))
	if err == nil {
		t.Fatal("AddComponent over an existing component returned nil error")
	}
	var coreErr *Error
	if !errors.As(err, &coreErr) || coreErr.Kind != KindComponentAlreadyPresent {
		t.Fatalf("err = %v, want KindComponentAlreadyPresent", err)
	}
}

func TestRemoveComponentNotPresent(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	b := RegisterComponent[uint64](w)
	e := w.Spawn(With(a, uint32(1)))

	err := RemoveComponent(w, e, b)
	if err == nil {
		t.Fatal("RemoveComponent of an absent component returned nil error")
	}
	var coreErr *Error
	if !errors.As(err, &coreErr) || coreErr.Kind != KindComponentNotPresent {
		t.Fatalf("err = %v, want KindComponentNotPresent", err)
	}
}

func TestDespawnUnknownEntity(t *testing.T) {
	w := NewWorld()
	e := EntityId{Index: 99, Generation: 1}
	err := w.Despawn(e)
	var coreErr *Error
	if !errors.As(err, &coreErr) || coreErr.Kind != KindEntityNotFound {
		t.Fatalf("err = %v, want KindEntityNotFound", err)
	}
}
