package component

import "github.com/lixenwraith/corridor/core"

// CurtainComponent marks a voxel as a member of one door's curtain
// Index is the element's position in the door's ordered transition
// sequence; Reindex rebuilds door records from these components
type CurtainComponent struct {
	Door  core.DoorID
	Index int
}
