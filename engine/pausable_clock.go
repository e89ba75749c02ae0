package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that freezes while paused
type PausableClock struct {
	mu sync.RWMutex

	realStart time.Time // Creation instant, real time
	gameStart time.Time // Simulation epoch, adjusted for pauses

	paused      atomic.Bool
	pauseStart  time.Time     // Real instant the current pause began
	totalPaused time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running clock
func NewPausableClock() *PausableClock {
	now := time.Now()
	return &PausableClock{
		realStart: now,
		gameStart: now,
	}
}

// Now returns current simulation time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused.Load() {
		// Frozen at the pause point
		return pc.gameStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPaused)
	}

	realElapsed := time.Since(pc.realStart)
	return pc.gameStart.Add(realElapsed - pc.totalPaused)
}

// RealTime returns wall clock time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return time.Now()
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	if pc.paused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStart = time.Now()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	if pc.paused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if !pc.pauseStart.IsZero() {
			pc.totalPaused += time.Since(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.paused.Load()
}

// TotalPauseDuration returns cumulative pause time, including the
// current pause when one is active
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused.Load() && !pc.pauseStart.IsZero() {
		total += time.Since(pc.pauseStart)
	}
	return total
}
