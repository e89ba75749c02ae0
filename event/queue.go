package event

import (
	"sync/atomic"

	"github.com/lixenwraith/corridor/parameter"
)

// slot pairs one event with its publish flag. The flag flips true only
// after the event value is fully written, so a drain never observes a
// half-written slot.
type slot struct {
	ev    GameEvent
	ready atomic.Bool
}

// Queue is a bounded multi-producer ring drained once per tick by the
// router. Producers claim a ticket with a fetch-add on the write
// cursor; the single consumer batches everything pending. Producers
// that lap the consumer drop the oldest unread events.
type Queue struct {
	slots [parameter.EventQueueSize]slot
	read  atomic.Uint64
	write atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push publishes ev into the next write ticket. Wait-free, safe from
// any goroutine.
func (q *Queue) Push(ev GameEvent) {
	ticket := q.write.Add(1) - 1
	s := &q.slots[ticket&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true) // After the value write

	// Lapped the consumer: slide the read cursor past the overwritten
	// events
	if r := q.read.Load(); ticket+1-r > parameter.EventQueueSize {
		q.read.CompareAndSwap(r, ticket+1-parameter.EventQueueSize)
	}
}

// Drain appends all pending events to dst in FIFO order and returns
// the extended slice. Single consumer only; pass the previous call's
// slice re-sliced to zero to avoid per-tick allocation.
func (q *Queue) Drain(dst []GameEvent) []GameEvent {
	for {
		loaded := q.read.Load()
		w := q.write.Load()
		if w == loaded {
			return dst
		}
		r := loaded
		if w-r > parameter.EventQueueSize {
			r = w - parameter.EventQueueSize
		}

		taken := 0
		for i := r; i < w; i++ {
			s := &q.slots[i&parameter.EventBufferMask]
			if !s.ready.Load() {
				break // Producer mid-write, pick it up next drain
			}
			dst = append(dst, s.ev)
			s.ready.Store(false)
			taken++
		}

		// Compare against the cursor as loaded: if a lapping producer
		// moved it meanwhile, that CAS made progress and we retry
		if q.read.CompareAndSwap(loaded, r+uint64(taken)) {
			return dst
		}
		dst = dst[:len(dst)-taken]
	}
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	r := q.read.Load()
	w := q.write.Load()
	if w <= r {
		return 0
	}
	if w-r > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return int(w - r)
}
