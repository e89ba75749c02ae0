package component

import "github.com/lixenwraith/corridor/core"

// TransformComponent is the spatial state of a scene entity
type TransformComponent struct {
	Transform core.Transform
}

// ParentComponent links an entity under a scene-graph parent
// Absence means the entity hangs off the scene root
type ParentComponent struct {
	Parent core.Entity
}

// ActiveComponent is a presence tag: entities carrying it are live in the
// scene (rendered, collidable). Pooled entities lose the tag while parked.
type ActiveComponent struct{}
