package component

import "github.com/lixenwraith/corridor/core"

// VoxelComponent ties a spawned block to its room and cell
type VoxelComponent struct {
	Room core.RoomID
	Cell core.Cell
}

// VisualComponent is the render surface of a voxel: the subset of its six
// faces that must be visually present. The builder writes the mask once at
// spawn; curtain voxels are forced to FaceNone until their door opens.
type VisualComponent struct {
	Mask core.FaceMask
}

// PropComponent marks a decorative entity spawned during the populate phase
type PropComponent struct {
	Room core.RoomID
	Kind int
}
