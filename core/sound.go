package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundLocked    SoundType = iota // Locked door buzz
	SoundDoorOpen                   // Curtain opening sweep
	SoundDoorClose                  // Curtain closing sweep
	SoundRoomBuilt                  // Room finished streaming in
	SoundTypeCount
)
