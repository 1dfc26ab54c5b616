package ecscore

import (
	"sync"
	"unsafe"
)

// command is one recorded structural mutation. Parallel systems receive
// the *World only as a shared handle and record every spawn/despawn/
// add/remove they want as a command instead — see schedule.Executor. The
// commands are replayed, in record order, by the replay system at the end
// of the stage's post-exclusive pass.
type command interface {
	apply(w *World) error
}

// CommandBuffer records structural-mutation intents during a parallel
// wave for later, post-exclusive replay. A single buffer is shared by
// every system in a wave and is safe for concurrent recording.
type CommandBuffer struct {
	mu       sync.Mutex
	commands []command
}

// NewCommandBuffer creates an empty command buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (cb *CommandBuffer) enqueue(c command) {
	cb.mu.Lock()
	cb.commands = append(cb.commands, c)
	cb.mu.Unlock()
}

// Apply replays every recorded command against w, in the order recorded,
// then clears the buffer. A command whose target entity is no longer
// alive (despawned, or recycled into a different generation, since it
// was recorded) is silently skipped rather than treated as an error.
func (cb *CommandBuffer) Apply(w *World) error {
	cb.mu.Lock()
	pending := cb.commands
	cb.commands = nil
	cb.mu.Unlock()

	for _, c := range pending {
		if err := c.apply(w); err != nil {
			return err
		}
	}
	return nil
}

// Pending reports how many commands are currently queued, unapplied.
func (cb *CommandBuffer) Pending() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return len(cb.commands)
}

type spawnCommand struct {
	sources []componentSource
}

func (c spawnCommand) apply(w *World) error {
	w.Spawn(c.sources...)
	return nil
}

// Spawn records the creation of a new entity from sources, applied when
// the buffer is next replayed.
func (cb *CommandBuffer) Spawn(sources ...componentSource) {
	cb.enqueue(spawnCommand{sources: sources})
}

type despawnCommand struct {
	id EntityId
}

func (c despawnCommand) apply(w *World) error {
	if !w.entities.IsAlive(c.id) {
		return nil
	}
	return w.Despawn(c.id)
}

// Despawn records the removal of id, applied when the buffer is next
// replayed. A no-op if id is no longer alive by then.
func (cb *CommandBuffer) Despawn(id EntityId) {
	cb.enqueue(despawnCommand{id: id})
}

type addComponentCommand struct {
	id  EntityId
	cti ComponentTypeID
	src unsafe.Pointer
}

func (c addComponentCommand) apply(w *World) error {
	if !w.entities.IsAlive(c.id) {
		return nil
	}
	return w.AddComponentRaw(c.id, c.cti, c.src)
}

// AddComponentRaw records adding cti to id, initializing it from src (nil
// zero-initializes), applied when the buffer is next replayed.
func (cb *CommandBuffer) AddComponentRaw(id EntityId, cti ComponentTypeID, src unsafe.Pointer) {
	cb.enqueue(addComponentCommand{id: id, cti: cti, src: src})
}

type removeComponentCommand struct {
	id  EntityId
	cti ComponentTypeID
}

func (c removeComponentCommand) apply(w *World) error {
	if !w.entities.IsAlive(c.id) {
		return nil
	}
	return w.RemoveComponentRaw(c.id, c.cti)
}

// RemoveComponentRaw records removing cti from id, applied when the
// buffer is next replayed.
func (cb *CommandBuffer) RemoveComponentRaw(id EntityId, cti ComponentTypeID) {
	cb.enqueue(removeComponentCommand{id: id, cti: cti})
}

// CommandAddComponent is the typed convenience wrapper over
// CommandBuffer.AddComponentRaw for callers holding a Component[T] handle.
func CommandAddComponent[T any](cb *CommandBuffer, id EntityId, c Component[T], value T) {
	cb.AddComponentRaw(id, c.ID(), unsafe.Pointer(&value))
}

// CommandRemoveComponent is the typed convenience wrapper over
// CommandBuffer.RemoveComponentRaw.
func CommandRemoveComponent[T any](cb *CommandBuffer, id EntityId, c Component[T]) {
	cb.RemoveComponentRaw(id, c.ID())
}
