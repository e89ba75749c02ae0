package event

import (
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
)

// RoomPlannedPayload carries one full plan out of the layout run.
// Planning happens once per session, so the payload is a plain
// allocation.
type RoomPlannedPayload struct {
	Plan layout.RoomPlan
}

// --- Packed payload helpers ---
//
// Low-frequency id-sized payloads are bit-packed into a uint64 to bypass
// per-event heap allocation.

// EmitIndex pushes an event whose payload is a plan index
func EmitIndex(q *Queue, t EventType, index int, frame int64) {
	q.Push(GameEvent{Type: t, Payload: uint64(index), Frame: frame})
}

// IndexOf unpacks a plan index payload; ok is false for foreign payloads
func IndexOf(ev GameEvent) (int, bool) {
	v, ok := ev.Payload.(uint64)
	return int(v), ok
}

// EmitRoom pushes an event whose payload is a RoomID
func EmitRoom(q *Queue, t EventType, id core.RoomID, frame int64) {
	q.Push(GameEvent{Type: t, Payload: uint64(id), Frame: frame})
}

// RoomOf unpacks a RoomID payload
func RoomOf(ev GameEvent) (core.RoomID, bool) {
	v, ok := ev.Payload.(uint64)
	return core.RoomID(v), ok
}

// EmitSound pushes a sound request
func EmitSound(q *Queue, sound core.SoundType, frame int64) {
	q.Push(GameEvent{Type: EventSoundRequest, Payload: uint64(sound), Frame: frame})
}

// SoundOf unpacks a sound request payload
func SoundOf(ev GameEvent) (core.SoundType, bool) {
	v, ok := ev.Payload.(uint64)
	return core.SoundType(v), ok
}

// EmitDoorState packs a door id and its settled open flag
// Bit-pack: Open (bit 32) | DoorID (low 32 bits)
func EmitDoorState(q *Queue, id core.DoorID, open bool, frame int64) {
	packed := uint64(id)
	if open {
		packed |= 1 << 32
	}
	q.Push(GameEvent{Type: EventDoorStateChanged, Payload: packed, Frame: frame})
}

// DoorStateOf unpacks a door state payload
func DoorStateOf(ev GameEvent) (core.DoorID, bool, bool) {
	v, ok := ev.Payload.(uint64)
	if !ok {
		return core.NoDoor, false, false
	}
	return core.DoorID(v & 0xFFFFFFFF), v&(1<<32) != 0, true
}
