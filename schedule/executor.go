package schedule

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/forgecs/ecscore"
)

// Executor runs a Schedule's stages, in order, against a World: each
// stage's pre-exclusive systems, then its parallel systems dispatched
// wave-by-wave across a worker pool, then its post-exclusive systems.
// Structural mutation a wave's systems defer into the stage's shared
// command buffer is held across every remaining wave of that stage and
// only replayed once every post-exclusive system has run — by the replay
// system Schedule.AddStage appends to the end of the post-exclusive list
// (see Stage.appendReplay), unless the schedule opted out via
// schedule.WithoutCommandReplay.
type Executor struct {
	// WorkerCount bounds how many systems of one wave run concurrently;
	// zero means unbounded (errgroup.Group's default, one goroutine per
	// system). See ecscore.Config.WorkerCount for the package-wide default
	// embedding applications may set instead of configuring each Executor.
	WorkerCount int
}

// NewExecutor creates an Executor using ecscore.Config.WorkerCount as its
// worker limit, falling back to runtime.GOMAXPROCS(0) when unset.
func NewExecutor() *Executor {
	n := ecscore.Config.WorkerCount
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &Executor{WorkerCount: n}
}

// Run executes every stage of sched, in order, against w. A panic or
// error from any system in a wave aborts that wave after letting
// in-flight systems finish, and skips the remainder of that stage
// (including its post-exclusive pass) and any subsequent stage.
func (ex *Executor) Run(ctx context.Context, sched *Schedule, w *ecscore.World) error {
	for _, stage := range sched.stages {
		if err := ex.runStage(ctx, stage, w); err != nil {
			return fmt.Errorf("stage %s: %w", stage.label, err)
		}
	}
	return nil
}

func (ex *Executor) runStage(ctx context.Context, stage *Stage, w *ecscore.World) error {
	for _, e := range stage.preExclusive {
		e.declareOnce()
		if err := e.system.Execute(w, nil); err != nil {
			return err
		}
	}

	waves := buildWaves(stage.parallel)
	for _, wave := range waves {
		if err := ex.runWave(ctx, wave, w, stage.commandBuffer()); err != nil {
			return err
		}
	}

	for _, e := range stage.postExclusive {
		e.declareOnce()
		if err := e.system.Execute(w, nil); err != nil {
			return err
		}
	}
	return nil
}

// runWave dispatches every entry of wave to the worker pool and blocks
// until all have completed (or one has failed). Every system in the wave
// records structural mutation into cb — the stage's shared command
// buffer — rather than applying it immediately; cb is only replayed once,
// after the stage's whole parallel phase and post-exclusive pass (see
// Stage.appendReplay), so a later wave of the same stage never observes a
// mutation an earlier wave merely deferred.
func (ex *Executor) runWave(ctx context.Context, wave []*systemEntry, w *ecscore.World, cb *ecscore.CommandBuffer) error {
	g, _ := errgroup.WithContext(ctx)
	if ex.WorkerCount > 0 {
		g.SetLimit(ex.WorkerCount)
	}
	for _, e := range wave {
		e := e
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("system panic: %v", r)
				}
			}()
			return e.system.Execute(w, cb)
		})
	}
	return g.Wait()
}
