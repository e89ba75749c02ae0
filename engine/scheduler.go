package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/event"
)

// ClockScheduler drives game logic on a fixed tick
// Handles pause-aware scheduling without busy-wait
type ClockScheduler struct {
	world   *World
	timeRes *TimeResource
	eqRes   *EventQueueResource

	pausableClock *PausableClock

	tickInterval     time.Duration
	lastGameTickTime time.Time
	nextTickDeadline time.Time

	tickCount atomic.Uint64
	mu        sync.RWMutex

	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	running   atomic.Bool
	resetChan chan struct{}

	eventRouter *EventRouter

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler ticking at the given interval
func NewClockScheduler(world *World, pausableClock *PausableClock, tickInterval time.Duration) *ClockScheduler {
	res := world.Resources

	cs := &ClockScheduler{
		world:            world,
		pausableClock:    pausableClock,
		tickInterval:     tickInterval,
		timeRes:          res.Time,
		eqRes:            res.Event,
		lastGameTickTime: pausableClock.Now(),
		eventRouter:      NewEventRouter(res.Event.Queue),
		stopChan:         make(chan struct{}),
		resetChan:        make(chan struct{}, 1),
		statTicks:        res.Status.Ints.Get("engine.ticks"),
	}

	return cs
}

// RegisterEventHandler adds an event handler, must be called before Start
func (cs *ClockScheduler) RegisterEventHandler(handler EventHandler) {
	cs.eventRouter.Register(handler)
}

// RegisterSystems routes every registered system that also handles
// events. Must be called after all AddSystem calls and before Start.
func (cs *ClockScheduler) RegisterSystems() {
	for _, s := range cs.world.Systems() {
		if h, ok := s.(EventHandler); ok {
			cs.eventRouter.Register(h)
		}
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// RequestReset asks the loop to restart the session at the next
// opportunity. Non-blocking; extra requests while one is pending
// coalesce.
func (cs *ClockScheduler) RequestReset() {
	select {
	case cs.resetChan <- struct{}{}:
	default:
	}
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.pausableClock.Now().Add(cs.tickInterval)
	cs.lastGameTickTime = cs.pausableClock.Now()
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-cs.resetChan:
			cs.executeReset()
			continue
		default:
		}

		var sleepDuration time.Duration

		if cs.pausableClock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			gameNow := cs.pausableClock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				cs.processTick()

				cs.mu.Lock()
				cs.lastGameTickTime = gameNow
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				// Drift correction when far behind
				if gameNow.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
					cs.nextTickDeadline = gameNow.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				sleepDuration = deadline.Sub(cs.pausableClock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.resetChan:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				cs.executeReset()
			case <-cs.stopChan:
				return
			}
		}
	}
}

// processTick executes one clock cycle: stamp time, dispatch events,
// run systems
func (cs *ClockScheduler) processTick() {
	if cs.pausableClock.IsPaused() {
		return
	}

	cs.world.RunSafe(func() {
		frame := cs.eqRes.Frame.Add(1)
		now := cs.pausableClock.Now()
		cs.timeRes.Update(now, cs.pausableClock.RealTime(), cs.tickInterval, frame)

		cs.eventRouter.DispatchAll()
		cs.world.UpdateLocked()
	})

	cs.statTicks.Store(int64(cs.tickCount.Add(1)))
}

// executeReset restarts the session: stale events are discarded, timing
// restarts, and systems get a reset event on the next dispatch
func (cs *ClockScheduler) executeReset() {
	_ = cs.eqRes.Queue.Drain(nil)

	cs.world.Lock()
	defer cs.world.Unlock()

	cs.mu.Lock()
	cs.tickCount.Store(0)
	cs.lastGameTickTime = cs.pausableClock.Now()
	cs.nextTickDeadline = cs.lastGameTickTime.Add(cs.tickInterval)
	cs.mu.Unlock()

	cs.world.PushEvent(event.EventSessionReset, nil)
}
