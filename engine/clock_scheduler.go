package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/parameter"
)

// ClockScheduler owns the simulation goroutine
// Input and presentation goroutines submit closures; the scheduler runs them between ticks
// so every World write happens on one goroutine
type ClockScheduler struct {
	tickInterval time.Duration
	tick         func()

	submit chan func()

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler calling tick every tickInterval
func NewClockScheduler(tickInterval time.Duration, tick func()) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = parameter.GameUpdateInterval
	}
	return &ClockScheduler{
		tickInterval: tickInterval,
		tick:         tick,
		submit:       make(chan func(), parameter.SubmitQueueSize),
		stopChan:     make(chan struct{}),
	}
}

// Submit queues fn to run on the simulation goroutine before the next tick
// Blocks when the queue is full, returns false once the scheduler is stopped
func (cs *ClockScheduler) Submit(fn func()) bool {
	select {
	case <-cs.stopChan:
		return false
	default:
	}
	select {
	case cs.submit <- fn:
		return true
	case <-cs.stopChan:
		return false
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		if cs.running.CompareAndSwap(true, false) {
			cs.wg.Wait()
		}
	})
}

// Done is closed when Stop is called
func (cs *ClockScheduler) Done() <-chan struct{} {
	return cs.stopChan
}

// TickCount returns the number of ticks run
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cs.stopChan:
			return

		case fn := <-cs.submit:
			fn()

		case <-ticker.C:
			cs.drainSubmitted()
			cs.tick()
			cs.tickCount.Add(1)
		}
	}
}

// drainSubmitted runs every queued closure so input lands on the tick it arrived for
func (cs *ClockScheduler) drainSubmitted() {
	for {
		select {
		case fn := <-cs.submit:
			fn()
		default:
			return
		}
	}
}
