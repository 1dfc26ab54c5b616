package ecscore

import (
	"testing"
	"unsafe"
)

func TestWorldAddComponentStatus(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	e := w.Spawn()

	value := uint32(7)
	if status := WorldAddComponent(w, e, a.ID(), unsafe.Pointer(&value)); status != StatusOk {
		t.Fatalf("WorldAddComponent = %v, want StatusOk", status)
	}
	if !WorldHasComponent(w, e, a.ID()) {
		t.Fatal("WorldHasComponent = false after WorldAddComponent")
	}
	if status := WorldAddComponent(w, e, a.ID(), unsafe.Pointer(&value)); status != StatusComponentAlreadyPresent {
		t.Fatalf("WorldAddComponent (duplicate) = %v, want StatusComponentAlreadyPresent", status)
	}

	ptr := WorldGetComponentPtr(w, e, a.ID())
	if ptr == nil || *(*uint32)(ptr) != 7 {
		t.Fatalf("WorldGetComponentPtr = %v, want *7", ptr)
	}

	if status := WorldRemoveComponent(w, e, a.ID()); status != StatusOk {
		t.Fatalf("WorldRemoveComponent = %v, want StatusOk", status)
	}
	if status := WorldRemoveComponent(w, e, a.ID()); status != StatusComponentNotPresent {
		t.Fatalf("WorldRemoveComponent (already gone) = %v, want StatusComponentNotPresent", status)
	}
}

func TestArchetypeFilterWalksMatchingArchetypes(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	b := RegisterComponent[uint64](w)

	w.Spawn(With(a, uint32(1)))
	w.Spawn(With(a, uint32(2)), With(b, uint64(3)))

	filter := ArchetypeFilterNew(NewEntityLayout(a.ID()), EntityLayout{})
	count := 0
	for ArchetypeFilterNext(filter, w) {
		arch := ArchetypeFilterCurrent(filter)
		if !arch.EntityLayout().Contains(a.ID()) {
			t.Fatal("filter yielded an archetype missing the required component")
		}
		count++
	}
	if count != 2 {
		t.Fatalf("filter visited %d archetypes, want 2", count)
	}

	ArchetypeFilterDestroy(filter)
	if ArchetypeFilterNext(filter, w) {
		t.Fatal("ArchetypeFilterNext returned true after Destroy")
	}
}

func TestArchetypeAccessorsByIndex(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	w.Spawn(With(a, uint32(42)))

	arch := w.Archetypes()[0]
	if ArchetypeGetLen(arch) != 1 {
		t.Fatalf("ArchetypeGetLen = %d, want 1", ArchetypeGetLen(arch))
	}
	if ArchetypeGetCapacity(arch) < 1 {
		t.Fatalf("ArchetypeGetCapacity = %d, want >=1", ArchetypeGetCapacity(arch))
	}
	idx := ArchetypeGetComponentIndex(arch, a.ID())
	if idx != 0 {
		t.Fatalf("ArchetypeGetComponentIndex = %d, want 0", idx)
	}

	base := ArchetypeGetStorageByIndex(arch, idx)
	if base == nil || *(*uint32)(base) != 42 {
		t.Fatalf("ArchetypeGetStorageByIndex = %v, want *42", base)
	}

	descs := ArchetypeGetComponentDescriptions(arch, w.Registry())
	if len(descs) != 1 || descs[0].ID != a.ID() {
		t.Fatalf("ArchetypeGetComponentDescriptions = %v", descs)
	}
}
