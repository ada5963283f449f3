package ocean

import "sync"

// Barrier is a reusable rendezvous for a fixed number of parties. Each
// cycle, every party calls Wait; the last arrival runs the cycle's action
// exactly once, then all parties release and the barrier resets. KnockDown
// opens the barrier permanently, which unblocks a waiter whose peer will
// never arrive again.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	cycle   uint64
	downed  bool
}

// NewBarrier creates a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties of the current cycle have arrived, then
// releases them together. The last party to arrive runs action (if non-nil)
// before anyone is released. After a knock-down, Wait returns immediately
// and never runs the action.
func (b *Barrier) Wait(action func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.downed {
		return
	}
	b.waiting++
	if b.waiting == b.parties {
		if action != nil {
			action()
		}
		b.waiting = 0
		b.cycle++
		b.cond.Broadcast()
		return
	}
	cycle := b.cycle
	for cycle == b.cycle && !b.downed {
		b.cond.Wait()
	}
}

// KnockDown permanently opens the barrier: current waiters release without
// an action run, and every later Wait returns immediately.
func (b *Barrier) KnockDown() {
	b.mu.Lock()
	b.downed = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
