package core

import "fmt"

// GridPoint is a 2D cell coordinate on the layout grid (X east, Y south)
type GridPoint struct {
	X, Y int
}

// Add returns the point offset by dx, dy
func (p GridPoint) Add(dx, dy int) GridPoint {
	return GridPoint{p.X + dx, p.Y + dy}
}

// GridRect is an axis-aligned rectangle of grid cells
// W and H are extents in cells; the rect covers [X, X+W) x [Y, Y+H)
type GridRect struct {
	X, Y, W, H int
}

// Intersects reports whether two rects share at least one cell
func (r GridRect) Intersects(o GridRect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point lies inside the rect
func (r GridRect) Contains(p GridPoint) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Cell is a 3D voxel cell coordinate within a room (X width, Y height, Z depth)
type Cell struct {
	X, Y, Z int
}

// Vec3F is a 3D world-space position or scale
type Vec3F struct {
	X, Y, Z float64
}

// Transform is the spatial state of a spawned entity
type Transform struct {
	Position Vec3F
	Scale    Vec3F
	Yaw      float64 // Rotation around the vertical axis, radians
}

// IdentityTransform returns a transform at origin with unit scale
func IdentityTransform() Transform {
	return Transform{Scale: Vec3F{1, 1, 1}}
}

// Side identifies one of the four wall sides of a room
type Side uint8

const (
	SideNorth Side = iota // -Z wall
	SideEast              // +X wall
	SideSouth             // +Z wall
	SideWest              // -X wall
	SideCount
)

// Opposite returns the facing wall side
func (s Side) Opposite() Side {
	switch s {
	case SideNorth:
		return SideSouth
	case SideSouth:
		return SideNorth
	case SideEast:
		return SideWest
	default:
		return SideEast
	}
}

// Delta returns the grid step (dx, dy) pointing out of the room through this side
func (s Side) Delta() (int, int) {
	switch s {
	case SideNorth:
		return 0, -1
	case SideSouth:
		return 0, 1
	case SideEast:
		return 1, 0
	default:
		return -1, 0
	}
}

func (s Side) String() string {
	switch s {
	case SideNorth:
		return "N"
	case SideEast:
		return "E"
	case SideSouth:
		return "S"
	case SideWest:
		return "W"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}
