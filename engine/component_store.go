package engine

import (
	"github.com/lixenwraith/corridor/component"
)

// ComponentStore provides typed component stores with direct field access
// Initialized once per world; pointers remain valid for application lifetime
type ComponentStore struct {
	// Scene graph
	Transform *Store[component.TransformComponent]
	Parent    *Store[component.ParentComponent]
	Active    *Store[component.ActiveComponent]

	// Room geometry
	Voxel  *Store[component.VoxelComponent]
	Visual *Store[component.VisualComponent]
	Prop   *Store[component.PropComponent]

	// Doors
	Curtain *Store[component.CurtainComponent]
}

func newComponentStore() (ComponentStore, []AnyStore) {
	cs := ComponentStore{
		Transform: NewStore[component.TransformComponent](),
		Parent:    NewStore[component.ParentComponent](),
		Active:    NewStore[component.ActiveComponent](),
		Voxel:     NewStore[component.VoxelComponent](),
		Visual:    NewStore[component.VisualComponent](),
		Prop:      NewStore[component.PropComponent](),
		Curtain:   NewStore[component.CurtainComponent](),
	}

	all := []AnyStore{
		cs.Transform,
		cs.Parent,
		cs.Active,
		cs.Voxel,
		cs.Visual,
		cs.Prop,
		cs.Curtain,
	}

	return cs, all
}
