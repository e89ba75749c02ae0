package core

import "math/bits"

// FaceMask is a bitset of the six faces of a voxel that must be rendered
type FaceMask uint8

const (
	FaceTop FaceMask = 1 << iota
	FaceBottom
	FaceNorth
	FaceSouth
	FaceEast
	FaceWest

	FaceNone FaceMask = 0
	FaceAll  FaceMask = FaceTop | FaceBottom | FaceNorth | FaceSouth | FaceEast | FaceWest
)

// Has reports whether all faces in m are set
func (f FaceMask) Has(m FaceMask) bool {
	return f&m == m
}

// With returns the mask with m added
func (f FaceMask) With(m FaceMask) FaceMask {
	return f | m
}

// Without returns the mask with m removed
func (f FaceMask) Without(m FaceMask) FaceMask {
	return f &^ m
}

// Count returns the number of exposed faces
func (f FaceMask) Count() int {
	return bits.OnesCount8(uint8(f))
}

// SideFace maps a wall side to its outward face bit
func SideFace(s Side) FaceMask {
	switch s {
	case SideNorth:
		return FaceNorth
	case SideSouth:
		return FaceSouth
	case SideEast:
		return FaceEast
	default:
		return FaceWest
	}
}
