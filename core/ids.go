package core

// RoomID is a stable arena index for a live room instance
// Components and events reference rooms by id, never by pointer,
// so an evicted room cannot be kept alive accidentally
type RoomID uint32

// DoorID is a stable arena index for a door record
type DoorID uint32

const (
	NoRoom RoomID = 0
	NoDoor DoorID = 0
)
