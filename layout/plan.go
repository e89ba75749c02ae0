package layout

import (
	"fmt"

	"github.com/lixenwraith/corridor/core"
)

// DoorRect describes one doorway opening on a wall
// Offset runs along the wall from its low-coordinate corner; YMin/YMax are
// inclusive cell rows. Procedurally chosen rects keep one cell of corner
// margin: Offset >= 1 and Offset+Width <= wallLength-1
type DoorRect struct {
	Side   core.Side
	Offset int
	Width  int
	YMin   int
	YMax   int
}

// Valid reports whether the rect satisfies the doorway invariants for a
// wall of the given length
func (d DoorRect) Valid(wallLength int) bool {
	return d.Width >= 1 &&
		d.YMax >= d.YMin &&
		d.Offset >= 1 &&
		d.Offset+d.Width <= wallLength-1
}

func (d DoorRect) String() string {
	return fmt.Sprintf("%s@%d+%d[y%d..%d]", d.Side, d.Offset, d.Width, d.YMin, d.YMax)
}

// RoomPlan is the immutable blueprint for one room, produced by the planner
// before any geometry exists. Never mutated after creation.
type RoomPlan struct {
	ID             int
	Origin         core.GridPoint // Low-coordinate corner on the layout grid
	Size           core.GridPoint // Extents in cells (X east, Y south)
	Height         int
	Entry          DoorRect
	Exit           DoorRect
	GeneratorIndex int
	Seed           int32
}

// Rect returns the plan's footprint on the layout grid
func (p RoomPlan) Rect() core.GridRect {
	return core.GridRect{X: p.Origin.X, Y: p.Origin.Y, W: p.Size.X, H: p.Size.Y}
}

// WallLength returns the cell length of the wall holding the given side
func (p RoomPlan) WallLength(s core.Side) int {
	if s == core.SideNorth || s == core.SideSouth {
		return p.Size.X
	}
	return p.Size.Y
}

// Center returns the plan's central grid cell
func (p RoomPlan) Center() core.GridPoint {
	return core.GridPoint{X: p.Origin.X + p.Size.X/2, Y: p.Origin.Y + p.Size.Y/2}
}
