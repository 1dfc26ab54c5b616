package schedule

import (
	"context"
	"sync"
	"testing"

	"github.com/forgecs/ecscore"
)

// recorder serializes execution order across concurrently-dispatched
// systems, so wave/stage ordering assertions are race-free.
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) mark(name string) {
	r.mu.Lock()
	r.order = append(r.order, name)
	r.mu.Unlock()
}

func (r *recorder) indexOf(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

func recordingSystem(name string, rec *recorder, access *ecscore.AccessDescriptor) ecscore.System {
	return ecscore.SystemFunc{
		Access: func() *ecscore.AccessDescriptor { return access },
		Run: func(w *ecscore.World, cb *ecscore.CommandBuffer) error {
			rec.mark(name)
			return nil
		},
	}
}

// TestWaveBatching reproduces the four-system wave-batching scenario:
// S1 reads A, S2 writes B, S3 writes A, S4 reads A. Greedy batching in
// declaration order must put S1 and S2 in the same wave, and must run
// S3 strictly after S1, and S4 strictly after S3.
func TestWaveBatching(t *testing.T) {
	w := ecscore.NewWorld()
	a := ecscore.RegisterComponent[uint32](w)
	b := ecscore.RegisterComponent[uint64](w)

	rec := &recorder{}
	s1 := recordingSystem("S1", rec, ecscore.NewAccessDescriptor().ReadsComponent(a.ID()))
	s2 := recordingSystem("S2", rec, ecscore.NewAccessDescriptor().WritesComponent(b.ID()))
	s3 := recordingSystem("S3", rec, ecscore.NewAccessDescriptor().WritesComponent(a.ID()))
	s4 := recordingSystem("S4", rec, ecscore.NewAccessDescriptor().ReadsComponent(a.ID()))

	stage := NewStage(StringLabel("Update")).
		AddSystemToStage(s1).
		AddSystemToStage(s2).
		AddSystemToStage(s3).
		AddSystemToStage(s4)

	sched := NewSchedule()
	if err := sched.AddStage(stage); err != nil {
		t.Fatalf("AddStage: %v", err)
	}

	waves := buildWaves(stage.parallel)
	sizes := make([]int, len(waves))
	for i, wave := range waves {
		sizes[i] = len(wave)
	}
	if len(waves) != 3 || len(waves[0]) != 2 || len(waves[1]) != 1 || len(waves[2]) != 1 {
		t.Fatalf("wave sizes = %v, want [2 1 1]", sizes)
	}

	ex := NewExecutor()
	if err := ex.Run(context.Background(), sched, w); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rec.order) != 4 {
		t.Fatalf("executed %d systems, want 4: %v", len(rec.order), rec.order)
	}
	if rec.indexOf("S3") <= rec.indexOf("S1") {
		t.Fatalf("S3 did not run after S1: order=%v", rec.order)
	}
	if rec.indexOf("S4") <= rec.indexOf("S3") {
		t.Fatalf("S4 did not run after S3: order=%v", rec.order)
	}
}

// TestStageOrdering reproduces the stage-ordering scenario: stages
// [Input, Update, Render]; Update gets a pre-exclusive system P and
// parallel systems X, Y. Execution order within Update must be P, then
// {X, Y}, and Input/Render must bracket Update entirely.
func TestStageOrdering(t *testing.T) {
	w := ecscore.NewWorld()
	rec := &recorder{}

	noAccess := func() *ecscore.AccessDescriptor { return ecscore.NewAccessDescriptor() }
	input := recordingSystem("Input", rec, noAccess())
	p := recordingSystem("P", rec, noAccess())
	x := recordingSystem("X", rec, noAccess())
	y := recordingSystem("Y", rec, noAccess())
	render := recordingSystem("Render", rec, noAccess())

	sched := NewSchedule()
	if err := sched.AddStage(NewStage(StringLabel("Input")).AddSystemToStage(input)); err != nil {
		t.Fatalf("AddStage(Input): %v", err)
	}
	update := NewStage(StringLabel("Update")).
		AddExclusiveAtStart(p).
		AddSystemToStage(x).
		AddSystemToStage(y)
	if err := sched.AddStage(update); err != nil {
		t.Fatalf("AddStage(Update): %v", err)
	}
	if err := sched.AddStage(NewStage(StringLabel("Render")).AddSystemToStage(render)); err != nil {
		t.Fatalf("AddStage(Render): %v", err)
	}

	ex := NewExecutor()
	if err := ex.Run(context.Background(), sched, w); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.indexOf("Input") != 0 {
		t.Fatalf("Input did not run first: order=%v", rec.order)
	}
	if rec.indexOf("P") > rec.indexOf("X") || rec.indexOf("P") > rec.indexOf("Y") {
		t.Fatalf("P did not run before X and Y: order=%v", rec.order)
	}
	if rec.indexOf("Render") != len(rec.order)-1 {
		t.Fatalf("Render did not run last: order=%v", rec.order)
	}
}
