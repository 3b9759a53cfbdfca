package event

import (
	"sync/atomic"

	"github.com/lixenwraith/warehouse/parameter"
)

// EventQueue is a lock-free MPSC ring buffer
// Producers claim a slot with CAS on tail and publish it with a per-slot flag;
// the tick loop is the single consumer
// When full the oldest unread events are overwritten and counted in Dropped
type EventQueue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // next slot to read
	tail      atomic.Uint64 // next slot to claim
	dropped   atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, safe from any goroutine
func (eq *EventQueue) Push(ev GameEvent) {
	slot := eq.tail.Add(1) - 1
	idx := slot & parameter.EventBufferMask
	eq.events[idx] = ev
	eq.published[idx].Store(true)

	// Overwrote an unread slot: move head past it
	for {
		head := eq.head.Load()
		if slot+1-head <= parameter.EventQueueSize {
			return
		}
		if eq.head.CompareAndSwap(head, slot+1-parameter.EventQueueSize) {
			eq.dropped.Add(slot + 1 - parameter.EventQueueSize - head)
			return
		}
	}
}

// Consume returns every published event in FIFO order
// Stops at the first slot a producer has claimed but not yet published
func (eq *EventQueue) Consume() []GameEvent {
	for {
		head, tail := eq.head.Load(), eq.tail.Load()
		if tail == head {
			return nil
		}
		// A producer may have lapped head without moving it yet
		start := max(head, tail-min(tail, parameter.EventQueueSize))

		out := make([]GameEvent, 0, tail-start)
		for i := range tail - start {
			idx := (start + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break
			}
			out = append(out, eq.events[idx])
		}

		if !eq.head.CompareAndSwap(head, start+uint64(len(out))) {
			continue
		}
		for i := range uint64(len(out)) {
			eq.published[(start+i)&parameter.EventBufferMask].Store(false)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
}

// Len is the approximate number of unread events
func (eq *EventQueue) Len() int {
	head, tail := eq.head.Load(), eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped is the number of events overwritten before they were consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
