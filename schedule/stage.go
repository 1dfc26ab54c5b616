package schedule

import "github.com/forgecs/ecscore"

// systemEntry pairs a system with its declare_access result, computed
// and cached the first time the entry is run — "the scheduler performs
// declare_access once per system lifetime and may reuse the descriptor
// on subsequent ticks".
type systemEntry struct {
	system ecscore.System
	access *ecscore.AccessDescriptor
}

func (e *systemEntry) declareOnce() *ecscore.AccessDescriptor {
	if e.access == nil {
		e.access = e.system.DeclareAccess()
	}
	return e.access
}

// Stage is a named bucket of systems executed in a fixed internal order:
// pre-exclusive, then parallel (as conflict-free waves), then
// post-exclusive. Every wave in the stage's parallel phase shares one
// command buffer (cb), so structural mutation deferred by any wave stays
// held until the stage's post-exclusive pass — never leaking into the
// next wave of the same stage.
type Stage struct {
	label         Label
	preExclusive  []*systemEntry
	parallel      []*systemEntry
	postExclusive []*systemEntry
	cb            *ecscore.CommandBuffer
	replayAdded   bool
}

// NewStage creates an empty stage under label.
func NewStage(label Label) *Stage {
	return &Stage{label: label, cb: ecscore.NewCommandBuffer()}
}

// commandBuffer returns the stage's shared command buffer, the one every
// wave of its parallel phase records into.
func (s *Stage) commandBuffer() *ecscore.CommandBuffer { return s.cb }

// validateParallelAccess enforces the precondition AccessDescriptor.Exclusive
// documents: a parallel system reporting exclusive access is a scheduler
// precondition violation, caught here at schedule construction time rather
// than left to surface as a confusing wave-ordering bug later.
func (s *Stage) validateParallelAccess() error {
	for _, e := range s.parallel {
		if e.declareOnce().Exclusive() {
			return ecscore.NewError(ecscore.KindAccessConflict,
				"stage "+s.label.String()+": parallel system declared exclusive access")
		}
	}
	return nil
}

// appendReplay appends a system to the end of the post-exclusive list
// that replays the stage's accumulated command buffer, unless one has
// already been appended. Called automatically by Schedule.AddStage and
// friends unless the schedule was built with WithoutCommandReplay.
func (s *Stage) appendReplay() {
	if s.replayAdded {
		return
	}
	s.replayAdded = true
	replay := ecscore.SystemFunc{
		Access: func() *ecscore.AccessDescriptor { return ecscore.NewAccessDescriptor().IsExclusive() },
		Run: func(w *ecscore.World, _ *ecscore.CommandBuffer) error {
			return s.cb.Apply(w)
		},
	}
	s.postExclusive = append(s.postExclusive, &systemEntry{system: replay})
}

// Label returns the stage's label.
func (s *Stage) Label() Label { return s.label }

// AddSystemToStage appends system to the stage's parallel set.
func (s *Stage) AddSystemToStage(system ecscore.System) *Stage {
	s.parallel = append(s.parallel, &systemEntry{system: system})
	return s
}

// AddExclusiveAtStart appends system to pre_exclusive.
func (s *Stage) AddExclusiveAtStart(system ecscore.System) *Stage {
	s.preExclusive = append(s.preExclusive, &systemEntry{system: system})
	return s
}

// AddExclusiveAtEnd appends system to post_exclusive.
func (s *Stage) AddExclusiveAtEnd(system ecscore.System) *Stage {
	s.postExclusive = append(s.postExclusive, &systemEntry{system: system})
	return s
}
