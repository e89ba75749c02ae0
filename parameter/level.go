package parameter

// Layout planning defaults
const (
	// MapRoomCount is the default number of rooms in one planned run
	MapRoomCount = 10

	// PlacementAttempts is the per-room cap on candidate origins before
	// planning stops early with a partial map
	PlacementAttempts = 24

	// RoomSizeMin / RoomSizeMax bound sampled room extents in grid cells
	RoomSizeMinX = 4
	RoomSizeMinZ = 4
	RoomSizeMaxX = 8
	RoomSizeMaxZ = 8

	// RoomHeight is the default interior height in voxel cells
	RoomHeight = 4

	// CursorJitterMax is the extra random gap, in cells, added when stepping
	// the placement cursor away from the previous room
	CursorJitterMax = 3

	// DesiredDoorCount is how many wall sides get a doorway per room
	DesiredDoorCount = 2

	// DoorWidthMin / DoorWidthMax bound procedural doorway widths
	DoorWidthMin = 1
	DoorWidthMax = 3

	// DoorHeight is the doorway opening height in cells
	DoorHeight = 2
)

// Builder pacing
const (
	// SpawnBatchSize is the voxel count spawned before the build task
	// checks its time budget
	SpawnBatchSize = 32

	// CeilingEnabled toggles the ceiling plane of generated rooms
	CeilingEnabled = true
)
