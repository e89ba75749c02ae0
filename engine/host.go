package engine

import (
	"github.com/lixenwraith/corridor/component"
	"github.com/lixenwraith/corridor/core"
)

// SceneHost adapts the world to the scene surfaces the pool and the
// room builder drive. Both stay decoupled from the engine through their
// own interfaces; this is the one concrete implementation.
type SceneHost struct {
	world *World
}

func NewSceneHost(w *World) *SceneHost {
	return &SceneHost{world: w}
}

func (h *SceneHost) CreateEntity() core.Entity {
	return h.world.CreateEntity()
}

func (h *SceneHost) Destroy(e core.Entity) {
	h.world.DestroyEntity(e)
}

func (h *SceneHost) Place(e core.Entity, t core.Transform) {
	h.world.Components.Transform.Set(e, component.TransformComponent{Transform: t})
}

func (h *SceneHost) SetParent(e, parent core.Entity) {
	h.world.Components.Parent.Set(e, component.ParentComponent{Parent: parent})
}

func (h *SceneHost) SetActive(e core.Entity, active bool) {
	if active {
		h.world.Components.Active.Set(e, component.ActiveComponent{})
		return
	}
	h.world.Components.Active.Remove(e)
}

func (h *SceneHost) SetVoxel(e core.Entity, room core.RoomID, cell core.Cell) {
	h.world.Components.Voxel.Set(e, component.VoxelComponent{Room: room, Cell: cell})
}

func (h *SceneHost) SetVisual(e core.Entity, mask core.FaceMask) {
	h.world.Components.Visual.Set(e, component.VisualComponent{Mask: mask})
}

func (h *SceneHost) SetCurtain(e core.Entity, door core.DoorID, index int) {
	h.world.Components.Curtain.Set(e, component.CurtainComponent{Door: door, Index: index})
}

func (h *SceneHost) SetProp(e core.Entity, room core.RoomID, kind int) {
	h.world.Components.Prop.Set(e, component.PropComponent{Room: room, Kind: kind})
}
