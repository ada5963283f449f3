package ocean

import (
	"errors"
	"sync/atomic"
)

// TimeSource reports elapsed simulated seconds. It must be monotonic; any
// time scaling happens on the caller's side.
type TimeSource func() float64

// ErrRunnerStarted is returned by Execute on a runner that is already
// running or has been terminated. Runners are single-shot.
var ErrRunnerStarted = errors.New("ocean: runner already started")

const (
	runnerStopped int32 = iota
	runnerRunning
	runnerStopping
	runnerTerminated
)

// Runner drives an Ocean's simulation loop on its own goroutine. Each cycle
// the loop fetches the time, simulates a frame into the write buffer, and
// rendezvouses with the consumer through a two-party barrier; the swap that
// publishes the frame runs exactly once inside that rendezvous, so the
// consumer never sees a half-written buffer and the loop never overwrites a
// buffer mid-read.
type Runner struct {
	ocean   *Ocean
	barrier *Barrier
	state   atomic.Int32
	fetch   TimeSource
	publish func(*Ocean)
	done    chan struct{}
}

// NewRunner pairs a runner with an ocean. publish, if non-nil, runs inside
// every rendezvous right after the buffer swap, before either party
// resumes; keep it short.
func NewRunner(o *Ocean, publish func(*Ocean)) *Runner {
	return &Runner{
		ocean:   o,
		barrier: NewBarrier(2),
		publish: publish,
	}
}

// Execute starts the simulation loop. The consumer must then call Wait once
// per frame until Terminate.
func (r *Runner) Execute(fetch TimeSource) error {
	if fetch == nil {
		return errors.New("ocean: runner needs a time source")
	}
	if !r.state.CompareAndSwap(runnerStopped, runnerRunning) {
		return ErrRunnerStarted
	}
	r.fetch = fetch
	r.done = make(chan struct{})
	go r.loop()
	return nil
}

func (r *Runner) loop() {
	defer close(r.done)
	for r.state.Load() == runnerRunning {
		r.ocean.Update(r.fetch())
		r.barrier.Wait(r.swap)
	}
}

func (r *Runner) swap() {
	r.ocean.SwapBuffers()
	if r.publish != nil {
		r.publish(r.ocean)
	}
}

// Wait is the consumer's half of the rendezvous: it blocks until the
// simulation finishes its current frame, at which point the fresh buffer is
// published. Valid only between Execute and Terminate; after termination it
// returns immediately.
func (r *Runner) Wait() {
	r.barrier.Wait(r.swap)
}

// Terminate stops the loop, knocks the barrier down to release either side,
// and joins the goroutine. Call it once, from the consumer, instead of a
// final Wait. The runner cannot be restarted afterwards.
func (r *Runner) Terminate() {
	if !r.state.CompareAndSwap(runnerRunning, runnerStopping) {
		return
	}
	r.barrier.KnockDown()
	<-r.done
	r.state.Store(runnerTerminated)
}
