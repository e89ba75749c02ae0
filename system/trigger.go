package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/parameter"
)

// TriggerSystem watches the tracked position and fires streaming events
// when it crosses into a new room: the room's entry is announced, its
// exit asked to open, and the next plan queued ahead of the player.
type TriggerSystem struct {
	world *engine.World
	log   *zap.Logger

	currentRoom core.RoomID
}

func NewTriggerSystem(world *engine.World, log *zap.Logger) *TriggerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &TriggerSystem{world: world, log: log}
	s.Init()
	return s
}

// Init resets session state
func (s *TriggerSystem) Init() {
	s.currentRoom = core.NoRoom
}

// Name returns the system's name
func (s *TriggerSystem) Name() string {
	return "trigger"
}

// Priority returns the system's priority
func (s *TriggerSystem) Priority() int {
	return parameter.PriorityTrigger
}

// EventTypes returns the event types TriggerSystem handles
func (s *TriggerSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSessionReset}
}

// HandleEvent processes session events
func (s *TriggerSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventSessionReset {
		s.Init()
	}
}

// Update detects room crossings
func (s *TriggerSystem) Update() {
	player := s.world.Resources.Player
	if !player.Set {
		return
	}

	id := s.roomAt(player.Position)
	if id == core.NoRoom || id == s.currentRoom {
		return
	}
	s.currentRoom = id
	player.Room = id

	inst, ok := s.world.Resources.Rooms.Room(id)
	if !ok {
		return
	}

	q := s.world.Resources.Event.Queue
	frame := s.world.FrameNumber()

	event.EmitIndex(q, event.EventRoomEntered, inst.Plan.ID, frame)
	event.EmitRoom(q, event.EventRoomShouldOpenExit, id, frame)
	// Stream the next room ahead of the player; the lifecycle manager
	// drops out-of-range indices
	event.EmitIndex(q, event.EventRequestNextRoom, inst.Plan.ID+1, frame)

	s.log.Debug("room entered",
		zap.Uint32("room", uint32(id)),
		zap.Int("plan", inst.Plan.ID))
}

// roomAt finds the resident room whose footprint contains p
func (s *TriggerSystem) roomAt(p core.GridPoint) core.RoomID {
	rooms := s.world.Resources.Rooms
	for _, id := range rooms.RoomIDs() {
		inst, ok := rooms.Room(id)
		if !ok || !inst.Built {
			continue
		}
		if inst.Plan.Rect().Contains(p) {
			return id
		}
	}
	return core.NoRoom
}
