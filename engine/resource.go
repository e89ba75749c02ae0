package engine

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/config"
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/pool"
	"github.com/lixenwraith/corridor/room"
	"github.com/lixenwraith/corridor/status"
)

// TimeResource wraps tick timing for systems
// Updated by the scheduler at the start of each tick, under world lock
type TimeResource struct {
	// GameTime is the pausable simulation time
	GameTime time.Time

	// RealTime is wall-clock time, unaffected by pause
	RealTime time.Time

	// DeltaTime is the duration since the previous tick
	DeltaTime time.Duration

	// FrameNumber is the tick counter
	FrameNumber int64
}

// Update modifies the fields in place, zero allocation
func (tr *TimeResource) Update(gameTime, realTime time.Time, delta time.Duration, frame int64) {
	tr.GameTime = gameTime
	tr.RealTime = realTime
	tr.DeltaTime = delta
	tr.FrameNumber = frame
}

// EventQueueResource wraps the event queue and the authoritative frame
// counter systems stamp events with
type EventQueueResource struct {
	Queue *event.Queue
	Frame atomic.Int64
}

// PlayerResource tracks the followed position driving room residency
// Set stays false until the frontend reports a position
type PlayerResource struct {
	Position core.GridPoint
	Room     core.RoomID
	Set      bool
}

// Resource holds the singleton resources systems share, each behind a
// typed field rather than a lookup
type Resource struct {
	Time   *TimeResource
	Event  *EventQueueResource
	Status *status.Registry
	Log    *zap.Logger
	Config *config.Config
	Player *PlayerResource

	// Rooms is the id-indexed arena of live instances
	Rooms *room.Arena

	// Pool is wired by the bootstrap after the world exists, since the
	// pool needs the world as its scene host
	Pool *pool.Pool
}

// NewResource creates the resource set. Pool stays nil until the caller
// wires it.
func NewResource(cfg *config.Config, log *zap.Logger) *Resource {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resource{
		Time:   &TimeResource{},
		Event:  &EventQueueResource{Queue: event.NewQueue()},
		Status: status.NewRegistry(),
		Log:    log,
		Config: cfg,
		Player: &PlayerResource{},
		Rooms:  room.NewArena(),
	}
}
