package room

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
	"github.com/lixenwraith/corridor/parameter"
	"github.com/lixenwraith/corridor/pool"
)

// BuilderConfig tunes the voxel builder. Zero values fall back to the
// engine defaults.
type BuilderConfig struct {
	VoxelPrefab pool.PrefabID
	PropPrefab  pool.PrefabID
	Ceiling     bool
	PropsMax    int

	// BatchSize is the number of spawns per step before yielding
	BatchSize int

	// TimeBudget bounds wall-clock time spent in a single step
	TimeBudget time.Duration
}

// VoxelBuilder realizes room plans as pooled voxel entities. Generation
// is incremental: Generate returns a BuildTask that the caller steps
// once per tick until it reports done.
type VoxelBuilder struct {
	host  BuilderHost
	pool  *pool.Pool
	arena *Arena
	log   *zap.Logger
	cfg   BuilderConfig

	now func() time.Time
}

func NewVoxelBuilder(host BuilderHost, p *pool.Pool, arena *Arena, log *zap.Logger, cfg BuilderConfig) *VoxelBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = parameter.SpawnBatchSize
	}
	if cfg.TimeBudget <= 0 {
		cfg.TimeBudget = parameter.BuildTimeBudget
	}
	return &VoxelBuilder{
		host:  host,
		pool:  p,
		arena: arena,
		log:   log,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Generate allocates the room and its door records up front and returns
// the stepped task that spawns the shell. The instance is visible in the
// arena immediately but Built stays false until the task completes.
func (b *VoxelBuilder) Generate(plan layout.RoomPlan) (Task, error) {
	if plan.Size.X < 3 || plan.Size.Y < 3 || plan.Height < 3 {
		return nil, fmt.Errorf("room plan %d too small: %dx%dx%d",
			plan.ID, plan.Size.X, plan.Height, plan.Size.Y)
	}

	root := b.host.CreateEntity()
	rt := core.IdentityTransform()
	rt.Position = core.Vec3F{X: float64(plan.Origin.X), Z: float64(plan.Origin.Y)}
	b.host.Place(root, rt)

	inst := &Instance{
		Plan:      plan,
		Root:      root,
		EntryDoor: core.NoDoor,
		ExitDoor:  core.NoDoor,
	}
	id := b.arena.AddRoom(inst)

	task := &BuildTask{
		builder: b,
		plan:    plan,
		room:    id,
		inst:    inst,
		cells:   Occupancy(plan, b.cfg.Ceiling),
	}

	for slot, rect := range doorSlots(plan) {
		doorRoot := b.host.CreateEntity()
		b.host.SetParent(doorRoot, root)
		b.host.Place(doorRoot, core.IdentityTransform())

		task.doors[slot] = b.arena.AddDoor(&Door{
			Room: id,
			Exit: slot == 1,
			Rect: rect,
			Root: doorRoot,
		})
	}
	inst.EntryDoor = task.doors[0]
	inst.ExitDoor = task.doors[1]

	b.log.Debug("room build started",
		zap.Uint32("room", uint32(id)),
		zap.Int("plan", plan.ID),
		zap.Int("cells", len(task.cells)))

	return task, nil
}

// Clear tears a room down: every shell and curtain voxel and every prop
// goes back to the pool, door and room containers are destroyed, and the
// arena records are dropped
func (b *VoxelBuilder) Clear(id core.RoomID) {
	inst, ok := b.arena.Room(id)
	if !ok {
		return
	}

	release := func(e core.Entity) {
		if err := b.pool.Release(e); err != nil {
			b.log.Warn("release failed during room clear",
				zap.Uint32("room", uint32(id)),
				zap.Uint64("entity", uint64(e)),
				zap.Error(err))
		}
	}

	for _, e := range inst.Voxels {
		release(e)
	}
	for _, e := range inst.Props {
		release(e)
	}
	for _, did := range []core.DoorID{inst.EntryDoor, inst.ExitDoor} {
		if did == core.NoDoor {
			continue
		}
		if door, ok := b.arena.Door(did); ok {
			for _, el := range door.Curtain {
				release(el.Entity)
			}
			b.host.Destroy(door.Root)
		}
		b.arena.RemoveDoor(did)
	}

	b.host.Destroy(inst.Root)
	b.arena.RemoveRoom(id)

	b.log.Debug("room cleared", zap.Uint32("room", uint32(id)))
}

func newPlanRand(seed int32) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

const (
	phaseShell = iota
	phasePopulate
	phaseDone
)

// BuildTask spawns one room's entities across ticks. Step is not safe
// for concurrent use; the owning system calls it from the tick loop.
type BuildTask struct {
	builder *VoxelBuilder
	plan    layout.RoomPlan
	room    core.RoomID
	inst    *Instance
	cells   []CellSpec
	doors   [2]core.DoorID

	cursor int
	phase  int
}

func (t *BuildTask) Room() core.RoomID { return t.room }

func (t *BuildTask) Done() bool { return t.phase == phaseDone }

// Step spawns up to one batch of cells within the time budget and
// reports whether the task has finished
func (t *BuildTask) Step() bool {
	if t.phase == phaseDone {
		return true
	}

	b := t.builder
	start := b.now()
	spawned := 0

	for t.phase == phaseShell {
		if t.cursor >= len(t.cells) {
			t.phase = phasePopulate
			break
		}
		t.spawnCell(t.cells[t.cursor])
		t.cursor++
		spawned++
		if spawned >= b.cfg.BatchSize || b.now().Sub(start) >= b.cfg.TimeBudget {
			return false
		}
	}

	if t.phase == phasePopulate {
		t.finalizeDoors()
		t.inst.Built = true
		t.populate()
		t.inst.Populated = true
		t.phase = phaseDone
		b.log.Debug("room build finished",
			zap.Uint32("room", uint32(t.room)),
			zap.Int("voxels", len(t.inst.Voxels)),
			zap.Int("props", len(t.inst.Props)))
	}
	return true
}

func (t *BuildTask) spawnCell(spec CellSpec) {
	b := t.builder

	parent := t.inst.Root
	if spec.DoorSlot >= 0 {
		if door, ok := b.arena.Door(t.doors[spec.DoorSlot]); ok {
			parent = door.Root
		}
	}

	tf := CellWorldTransform(t.plan, spec.Cell)
	e, err := b.pool.Get(b.cfg.VoxelPrefab, tf, parent)
	if err != nil {
		b.log.Warn("voxel spawn skipped",
			zap.Uint32("room", uint32(t.room)),
			zap.Error(err))
		return
	}

	b.host.SetVoxel(e, t.room, spec.Cell)
	b.host.SetVisual(e, spec.Mask)

	if spec.DoorSlot >= 0 {
		did := t.doors[spec.DoorSlot]
		b.host.SetCurtain(e, did, spec.CurtainIndex)
		if door, ok := b.arena.Door(did); ok {
			door.Curtain = append(door.Curtain, CurtainElement{Entity: e, Original: tf})
		}
		return
	}

	t.inst.Voxels = append(t.inst.Voxels, e)
}

// finalizeDoors discards door containers that ended up with no curtain
// elements, which happens when a doorway sits outside the built shell
func (t *BuildTask) finalizeDoors() {
	b := t.builder
	for slot, did := range t.doors {
		door, ok := b.arena.Door(did)
		if !ok || len(door.Curtain) > 0 {
			continue
		}
		b.host.Destroy(door.Root)
		b.arena.RemoveDoor(did)
		if slot == 0 {
			t.inst.EntryDoor = core.NoDoor
		} else {
			t.inst.ExitDoor = core.NoDoor
		}
	}
}

// populate scatters props on interior floor cells using the plan seed,
// so the same plan always yields the same dressing
func (t *BuildTask) populate() {
	b := t.builder
	if b.cfg.PropPrefab == pool.NoPrefab || b.cfg.PropsMax <= 0 {
		return
	}

	w, depth := t.plan.Size.X, t.plan.Size.Y
	if w < 3 || depth < 3 {
		return
	}

	rng := newPlanRand(t.plan.Seed)
	count := 1 + rng.Intn(b.cfg.PropsMax)
	for i := 0; i < count; i++ {
		c := core.Cell{
			X: 1 + rng.Intn(w-2),
			Y: 1,
			Z: 1 + rng.Intn(depth-2),
		}
		tf := CellWorldTransform(t.plan, c)
		e, err := b.pool.Get(b.cfg.PropPrefab, tf, t.inst.Root)
		if err != nil {
			b.log.Warn("prop spawn skipped",
				zap.Uint32("room", uint32(t.room)),
				zap.Error(err))
			continue
		}
		b.host.SetProp(e, t.room, rng.Intn(3))
		t.inst.Props = append(t.inst.Props, e)
	}
}
