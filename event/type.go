package event

// EventType represents the type of game event
type EventType int

const (
	// EventSessionReset clears per-session state in every system
	// Trigger: explicit reset call at session start
	// Consumer: all systems | Payload: nil
	EventSessionReset EventType = iota

	// === Streaming Events ===

	// EventRoomPlanned announces one plan from a completed layout run
	// Trigger: session bootstrap after planning
	// Consumer: frontend, diagnostics | Payload: *RoomPlannedPayload
	EventRoomPlanned

	// EventRequestNextRoom asks the lifecycle manager to queue a plan index
	// Trigger: TriggerSystem when the player crosses into a new room
	// Consumer: LifecycleSystem | Payload: packed plan index
	EventRequestNextRoom

	// EventRoomEntered reports the player crossing into a resident room
	// Trigger: TriggerSystem
	// Consumer: LifecycleSystem (MRU refresh) | Payload: packed plan index
	EventRoomEntered

	// EventRoomBuilt signals geometry for a room finished spawning
	// Trigger: LifecycleSystem drain step on task completion
	// Consumer: frontend, AudioSystem | Payload: packed RoomID
	EventRoomBuilt

	// EventRoomPopulated signals props for a room finished spawning
	// Trigger: LifecycleSystem after the populate phase
	// Consumer: frontend | Payload: packed RoomID
	EventRoomPopulated

	// EventRoomShouldOpenExit asks the door subsystem to open a room's exit
	// Trigger: TriggerSystem on room entry
	// Consumer: DoorSystem | Payload: packed RoomID
	EventRoomShouldOpenExit

	// EventRoomUnloaded signals a room was evicted and its entities reclaimed
	// Trigger: LifecycleSystem capacity or distance eviction
	// Consumer: frontend, diagnostics | Payload: packed RoomID
	EventRoomUnloaded

	// === Door Events ===

	// EventDoorStateChanged signals a completed door transition
	// Trigger: DoorSystem when Animating clears
	// Consumer: frontend, diagnostics | Payload: packed door state
	EventDoorStateChanged

	// === Audio Events ===

	// EventSoundRequest requests audio playback
	// Trigger: systems requiring audio feedback
	// Consumer: AudioSystem | Payload: packed SoundType
	EventSoundRequest
)

// GameEvent is the unit routed through the queue each tick
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
