package room

import (
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
)

// Task is one in-flight room construction, advanced once per tick
type Task interface {
	// Step performs one tick's slice of work and reports completion
	Step() bool

	// Done reports whether the task has finished
	Done() bool

	// Room returns the arena id allocated for the build
	Room() core.RoomID
}

// Generator is the capability surface the lifecycle manager drives.
// One canonical signature; implementations never get probed for shape.
type Generator interface {
	// Generate starts materializing a plan. The returned task is advanced
	// once per scheduler tick until done; the build may span many ticks.
	Generate(plan layout.RoomPlan) (Task, error)

	// Clear tears down a built instance: owned entities return to the
	// pool, roots are destroyed, the arena slot is freed.
	Clear(id core.RoomID)
}

// BuilderHost is the scene surface the builder drives
// Implemented by the engine; faked in tests
type BuilderHost interface {
	CreateEntity() core.Entity
	Destroy(e core.Entity)
	Place(e core.Entity, t core.Transform)
	SetParent(e core.Entity, parent core.Entity)
	SetVoxel(e core.Entity, room core.RoomID, cell core.Cell)
	SetVisual(e core.Entity, mask core.FaceMask)
	SetCurtain(e core.Entity, door core.DoorID, index int)
	SetProp(e core.Entity, room core.RoomID, kind int)
}
