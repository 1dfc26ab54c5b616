package schedule

const (
	kindDuplicateStageLabel = "duplicate stage label"
	kindStageNotFound       = "stage not found"
)

// scheduleError is returned by the schedule's construction operations —
// add_stage and friends are the only fallible part of building a
// Schedule, per the core's construction-time error propagation policy.
type scheduleError struct {
	kind  string
	label Label
}

func (e *scheduleError) Error() string { return e.kind + ": " + e.label.String() }

// Schedule is an ordered list of Stages, run front-to-back by an
// Executor each tick.
type Schedule struct {
	stages     []*Stage
	index      map[Label]int
	autoReplay bool
}

// Option configures a Schedule at construction time.
type Option func(*Schedule)

// WithoutCommandReplay disables the schedule's default behavior of
// appending a command-buffer replay system to the end of every stage's
// post-exclusive list. Callers that opt out take over responsibility for
// applying each stage's CommandBuffer themselves.
func WithoutCommandReplay() Option {
	return func(s *Schedule) { s.autoReplay = false }
}

// NewSchedule creates an empty schedule. By default, every stage added to
// it gets an automatic command-buffer replay system appended to its
// post-exclusive list (see Stage.appendReplay); pass WithoutCommandReplay
// to disable that.
func NewSchedule(opts ...Option) *Schedule {
	s := &Schedule{index: make(map[Label]int), autoReplay: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddStage appends stage to the end of the schedule. Fails if stage's
// label already exists, or if a parallel system in stage declares
// exclusive access.
func (s *Schedule) AddStage(stage *Stage) error {
	if _, exists := s.index[stage.label]; exists {
		return &scheduleError{kind: kindDuplicateStageLabel, label: stage.label}
	}
	if err := stage.validateParallelAccess(); err != nil {
		return err
	}
	if s.autoReplay {
		stage.appendReplay()
	}
	s.index[stage.label] = len(s.stages)
	s.stages = append(s.stages, stage)
	return nil
}

// AddStageBefore inserts stage immediately before the stage labeled
// existing. Fails if existing is not found or stage's label duplicates
// one already present.
func (s *Schedule) AddStageBefore(existing Label, stage *Stage) error {
	return s.insertRelative(existing, stage, 0)
}

// AddStageAfter inserts stage immediately after the stage labeled
// existing. Fails if existing is not found or stage's label duplicates
// one already present.
func (s *Schedule) AddStageAfter(existing Label, stage *Stage) error {
	return s.insertRelative(existing, stage, 1)
}

func (s *Schedule) insertRelative(existing Label, stage *Stage, offset int) error {
	if _, exists := s.index[stage.label]; exists {
		return &scheduleError{kind: kindDuplicateStageLabel, label: stage.label}
	}
	at, ok := s.index[existing]
	if !ok {
		return &scheduleError{kind: kindStageNotFound, label: existing}
	}
	if err := stage.validateParallelAccess(); err != nil {
		return err
	}
	if s.autoReplay {
		stage.appendReplay()
	}
	pos := at + offset
	s.stages = append(s.stages, nil)
	copy(s.stages[pos+1:], s.stages[pos:])
	s.stages[pos] = stage
	s.reindex()
	return nil
}

func (s *Schedule) reindex() {
	for i, st := range s.stages {
		s.index[st.label] = i
	}
}

// Stages returns the schedule's stages in run order. The returned slice
// must not be mutated.
func (s *Schedule) Stages() []*Stage { return s.stages }

// Stage returns the stage registered under label, if any.
func (s *Schedule) Stage(label Label) (*Stage, bool) {
	at, ok := s.index[label]
	if !ok {
		return nil, false
	}
	return s.stages[at], true
}
