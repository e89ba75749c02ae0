// Package room materializes layout plans as voxel geometry and tracks the
// live instances in an id-indexed arena.
//
// Every cross-component reference to a room or door goes through a stable
// integer id, never a pointer, so an instance evicted mid-use cannot be
// kept alive or mutated through a stale reference.
package room

import (
	"sort"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
)

// CurtainElement is one voxel of a door's ordered curtain
type CurtainElement struct {
	Entity   core.Entity
	Original core.Transform
}

// Door is the mutable state of one doorway
// Mutated only by the door subsystem's single transition task per door
type Door struct {
	Room core.RoomID
	Exit bool
	Rect layout.DoorRect
	Root core.Entity

	Open      bool
	Locked    bool
	Animating bool

	// Curtain holds the ordered elements filling the opening
	// Rebuilt only via the door subsystem's Reindex
	Curtain []CurtainElement
}

// Instance is the live, mutable realization of a plan
// Owned by the lifecycle manager once registered
type Instance struct {
	Plan   layout.RoomPlan
	Root   core.Entity
	Voxels []core.Entity
	Props  []core.Entity

	EntryDoor core.DoorID
	ExitDoor  core.DoorID

	Built     bool
	Populated bool
}

// Arena owns all live room and door records, indexed by stable ids
// Ids are never reused within a session
type Arena struct {
	rooms    map[core.RoomID]*Instance
	doors    map[core.DoorID]*Door
	nextRoom core.RoomID
	nextDoor core.DoorID
}

// NewArena creates an empty arena
func NewArena() *Arena {
	a := &Arena{}
	a.Reset()
	return a
}

// Reset drops all records and restarts id allocation
// Called at session start
func (a *Arena) Reset() {
	a.rooms = make(map[core.RoomID]*Instance)
	a.doors = make(map[core.DoorID]*Door)
	a.nextRoom = 0
	a.nextDoor = 0
}

// AddRoom registers inst and returns its id
func (a *Arena) AddRoom(inst *Instance) core.RoomID {
	a.nextRoom++
	a.rooms[a.nextRoom] = inst
	return a.nextRoom
}

// Room resolves an id; ok is false after eviction
func (a *Arena) Room(id core.RoomID) (*Instance, bool) {
	inst, ok := a.rooms[id]
	return inst, ok
}

// RemoveRoom frees the slot
func (a *Arena) RemoveRoom(id core.RoomID) {
	delete(a.rooms, id)
}

// RoomCount returns the number of live instances
func (a *Arena) RoomCount() int {
	return len(a.rooms)
}

// RoomIDs returns live ids in ascending order for deterministic iteration
func (a *Arena) RoomIDs() []core.RoomID {
	ids := make([]core.RoomID, 0, len(a.rooms))
	for id := range a.rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RoomByPlanID finds the resident instance for a plan index, if any
func (a *Arena) RoomByPlanID(planID int) (core.RoomID, bool) {
	for _, id := range a.RoomIDs() {
		if a.rooms[id].Plan.ID == planID {
			return id, true
		}
	}
	return core.NoRoom, false
}

// AddDoor registers d and returns its id
func (a *Arena) AddDoor(d *Door) core.DoorID {
	a.nextDoor++
	a.doors[a.nextDoor] = d
	return a.nextDoor
}

// Door resolves an id
func (a *Arena) Door(id core.DoorID) (*Door, bool) {
	d, ok := a.doors[id]
	return d, ok
}

// RemoveDoor frees the slot
func (a *Arena) RemoveDoor(id core.DoorID) {
	delete(a.doors, id)
}

// DoorCount returns the number of live door records
func (a *Arena) DoorCount() int {
	return len(a.doors)
}
