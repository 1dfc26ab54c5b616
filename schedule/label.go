// Package schedule implements staged, wave-parallel system execution
// over an ecscore.World: stages run in declared order, each stage runs
// its pre-exclusive systems, then its parallel systems in conflict-free
// waves dispatched across a worker pool, then its post-exclusive
// systems (which also replay any command buffer the wave accumulated).
package schedule

import "fmt"

// Label identifies a Stage. It is an opaque, value-comparable,
// hashable, debuggable key the application mints — typically a small
// string or int constant — never a name the schedule itself interprets;
// two equal Labels are the same stage regardless of how they were
// constructed.
type Label struct {
	tag any
}

// NewLabel wraps any comparable value as a Label. Passing a
// non-comparable tag panics the first time the label is used as a map
// key, the same runtime contract Go itself applies to map keys.
func NewLabel(tag any) Label { return Label{tag: tag} }

// String renders the label's tag for debug output; Labels are never
// serialized beyond this debug string.
func (l Label) String() string { return fmt.Sprintf("%v", l.tag) }

// StringLabel is a convenience constructor for the common case of a
// plain string label (e.g. schedule.StringLabel("Update")).
func StringLabel(name string) Label { return NewLabel(name) }
