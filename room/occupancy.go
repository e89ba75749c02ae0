package room

import (
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
)

// CellSpec is one cell the builder must spawn: either a shell voxel with
// its exposure mask, or a door-curtain voxel
type CellSpec struct {
	Cell core.Cell
	Mask core.FaceMask

	// DoorSlot is -1 for shell cells, else 0 (entry) or 1 (exit)
	DoorSlot int

	// CurtainIndex orders curtain elements within their door
	CurtainIndex int
}

// doorSlots fixes the iteration order entry-then-exit
func doorSlots(plan layout.RoomPlan) [2]layout.DoorRect {
	return [2]layout.DoorRect{plan.Entry, plan.Exit}
}

// doorCovers reports whether the door rect covers the wall cell (x,y,z)
// for a room of the plan's dimensions
func doorCovers(plan layout.RoomPlan, d layout.DoorRect, c core.Cell) bool {
	if c.Y < d.YMin || c.Y > d.YMax {
		return false
	}
	w, depth := plan.Size.X, plan.Size.Y
	switch d.Side {
	case core.SideNorth:
		return c.Z == 0 && c.X >= d.Offset && c.X < d.Offset+d.Width
	case core.SideSouth:
		return c.Z == depth-1 && c.X >= d.Offset && c.X < d.Offset+d.Width
	case core.SideWest:
		return c.X == 0 && c.Z >= d.Offset && c.Z < d.Offset+d.Width
	default: // east
		return c.X == w-1 && c.Z >= d.Offset && c.Z < d.Offset+d.Width
	}
}

// shellMask computes the face-exposure mask for a shell cell:
// floor contributes Top, ceiling contributes Bottom, perimeter cells add
// their outward-facing side(s)
func shellMask(plan layout.RoomPlan, ceiling bool, c core.Cell) core.FaceMask {
	w, depth, h := plan.Size.X, plan.Size.Y, plan.Height

	mask := core.FaceNone
	if c.Y == 0 {
		mask = mask.With(core.FaceTop)
	}
	if ceiling && c.Y == h-1 {
		mask = mask.With(core.FaceBottom)
	}
	if c.X == 0 {
		mask = mask.With(core.FaceWest)
	}
	if c.X == w-1 {
		mask = mask.With(core.FaceEast)
	}
	if c.Z == 0 {
		mask = mask.With(core.FaceNorth)
	}
	if c.Z == depth-1 {
		mask = mask.With(core.FaceSouth)
	}
	return mask
}

// Occupancy computes the hollow-room cell set for a plan: floor plane,
// ceiling plane (when enabled), and perimeter walls, each cell emitted
// exactly once and interior cells never. Wall cells inside a doorway are
// emitted as curtain cells with no exposed faces, so an unopened doorway
// cannot leak light, and are indexed in deterministic order for the
// door's staggered transition.
func Occupancy(plan layout.RoomPlan, ceiling bool) []CellSpec {
	w, depth, h := plan.Size.X, plan.Size.Y, plan.Height
	doors := doorSlots(plan)
	curtainNext := [2]int{}

	specs := make([]CellSpec, 0, 2*w*depth+2*(w+depth)*h)

	for z := 0; z < depth; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := core.Cell{X: x, Y: y, Z: z}

				shell := y == 0 ||
					(ceiling && y == h-1) ||
					x == 0 || x == w-1 || z == 0 || z == depth-1
				if !shell {
					continue
				}

				slot := -1
				for i, d := range doors {
					if doorCovers(plan, d, c) {
						slot = i
						break
					}
				}

				if slot >= 0 {
					specs = append(specs, CellSpec{
						Cell:         c,
						Mask:         core.FaceNone, // Forced until the door opens
						DoorSlot:     slot,
						CurtainIndex: curtainNext[slot],
					})
					curtainNext[slot]++
					continue
				}

				specs = append(specs, CellSpec{
					Cell:     c,
					Mask:     shellMask(plan, ceiling, c),
					DoorSlot: -1,
				})
			}
		}
	}

	return specs
}

// CellWorldTransform maps a room-local cell to its world transform
func CellWorldTransform(plan layout.RoomPlan, c core.Cell) core.Transform {
	t := core.IdentityTransform()
	t.Position = core.Vec3F{
		X: float64(plan.Origin.X + c.X),
		Y: float64(c.Y),
		Z: float64(plan.Origin.Y + c.Z),
	}
	return t
}
