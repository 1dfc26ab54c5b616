package ecscore

import "testing"

func TestCommandBufferSpawnAndDespawnReplay(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	e := w.Spawn(With(a, uint32(1)))

	cb := NewCommandBuffer()
	cb.Spawn(With(a, uint32(2)))
	cb.Despawn(e)

	if cb.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", cb.Pending())
	}

	if err := cb.Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cb.Pending() != 0 {
		t.Fatalf("Pending() after Apply = %d, want 0", cb.Pending())
	}
	if w.entities.IsAlive(e) {
		t.Fatal("e still alive after replayed despawn")
	}

	count := 0
	for it := Query1(w, a); ; {
		_, _, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Fatalf("live entities with a = %d, want 1", count)
	}
}

func TestCommandBufferSkipsStaleDespawn(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	e := w.Spawn(With(a, uint32(1)))

	cb := NewCommandBuffer()
	cb.Despawn(e)
	cb.Despawn(e) // duplicate, second replay must be a no-op, not an error

	if err := cb.Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func TestCommandBufferAddRemoveComponent(t *testing.T) {
	w := NewWorld()
	a := RegisterComponent[uint32](w)
	b := RegisterComponent[uint64](w)
	e := w.Spawn(With(a, uint32(1)))

	cb := NewCommandBuffer()
	CommandAddComponent(cb, e, b, uint64(42))
	if err := cb.Apply(w); err != nil {
		t.Fatalf("Apply (add): %v", err)
	}
	if !w.HasComponent(e, b.ID()) {
		t.Fatal("e missing b after replayed AddComponent")
	}

	cb2 := NewCommandBuffer()
	CommandRemoveComponent(cb2, e, b)
	if err := cb2.Apply(w); err != nil {
		t.Fatalf("Apply (remove): %v", err)
	}
	if w.HasComponent(e, b.ID()) {
		t.Fatal("e still has b after replayed RemoveComponent")
	}
}
