package engine

import (
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/pool"
)

// BlockPrefab is the basic poolable scene entity: one entity with a
// transform, activated on spawn. Voxels and props are both blocks; their
// role components are attached by the builder after Get.
type BlockPrefab struct {
	world *World
	name  string
}

func NewBlockPrefab(world *World, name string) *BlockPrefab {
	return &BlockPrefab{world: world, name: name}
}

func (p *BlockPrefab) Name() string {
	return p.name
}

func (p *BlockPrefab) Instantiate(host pool.Host) (core.Entity, error) {
	e := p.world.CreateEntity()
	host.Place(e, core.IdentityTransform())
	return e, nil
}
