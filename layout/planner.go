package layout

import (
	"math/rand"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/parameter"
)

// Config controls one planning run
type Config struct {
	RoomCount int
	SizeMin   core.GridPoint
	SizeMax   core.GridPoint
	Height    int

	// Attempts caps candidate origins per room before the run stops early
	Attempts int

	// JitterMax is the extra random gap added when stepping the cursor
	JitterMax int

	DoorWidthMin int
	DoorWidthMax int
	DoorHeight   int

	// GeneratorCount is the number of registered room builders to spread
	// plans across
	GeneratorCount int

	Seed int64

	// StartCursor optionally pins the walk origin (nil = grid origin)
	StartCursor *core.GridPoint
}

// DefaultConfig returns the tuning used by the shipped game
func DefaultConfig(seed int64) Config {
	return Config{
		RoomCount:      parameter.MapRoomCount,
		SizeMin:        core.GridPoint{X: parameter.RoomSizeMinX, Y: parameter.RoomSizeMinZ},
		SizeMax:        core.GridPoint{X: parameter.RoomSizeMaxX, Y: parameter.RoomSizeMaxZ},
		Height:         parameter.RoomHeight,
		Attempts:       parameter.PlacementAttempts,
		JitterMax:      parameter.CursorJitterMax,
		DoorWidthMin:   parameter.DoorWidthMin,
		DoorWidthMax:   parameter.DoorWidthMax,
		DoorHeight:     parameter.DoorHeight,
		GeneratorCount: 1,
		Seed:           seed,
	}
}

// Result is the outcome of one planning run
// Complete is false when placement attempts were exhausted before RoomCount,
// leaving a partial but still playable map
type Result struct {
	Plans    []RoomPlan
	Complete bool
}

// Planner places non-overlapping rooms along a connected, meandering walk.
// Fully deterministic: identical (seed, Config) produce an identical plan
// sequence because every random draw happens in a fixed order against a
// single seeded source.
type Planner struct {
	cfg      Config
	rng      *rand.Rand
	occupied map[core.GridPoint]struct{}
	cursor   core.GridPoint
}

// NewPlanner creates a planner for one run
func NewPlanner(cfg Config) *Planner {
	if cfg.GeneratorCount < 1 {
		cfg.GeneratorCount = 1
	}
	p := &Planner{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		occupied: make(map[core.GridPoint]struct{}),
	}
	if cfg.StartCursor != nil {
		p.cursor = *cfg.StartCursor
	}
	return p
}

// Plan runs the full placement walk
func (p *Planner) Plan() Result {
	plans := make([]RoomPlan, 0, p.cfg.RoomCount)

	for i := 0; i < p.cfg.RoomCount; i++ {
		plan, ok := p.placeOne(i)
		if !ok {
			// Placement exhausted: partial, non-fatal
			return Result{Plans: plans, Complete: false}
		}
		plans = append(plans, plan)
	}

	return Result{Plans: plans, Complete: true}
}

// placeOne attempts up to cfg.Attempts candidate origins for room index i
func (p *Planner) placeOne(i int) (RoomPlan, bool) {
	for attempt := 0; attempt < p.cfg.Attempts; attempt++ {
		size := p.sampleSize()
		dir := core.Side(p.rng.Intn(int(core.SideCount)))
		origin := p.stepOrigin(size, dir)
		rect := core.GridRect{X: origin.X, Y: origin.Y, W: size.X, H: size.Y}

		if p.overlaps(rect) {
			continue
		}

		p.mark(rect)

		plan := RoomPlan{
			ID:             i,
			Origin:         origin,
			Size:           size,
			Height:         p.cfg.Height,
			GeneratorIndex: p.rng.Intn(p.cfg.GeneratorCount),
			Seed:           p.rng.Int31(),
		}
		// Entry faces the wall the walk came through; exit picks any
		// other side so consecutive rooms keep connecting
		entrySide := dir.Opposite()
		plan.Entry = p.sampleDoor(plan, entrySide)
		plan.Exit = p.sampleDoor(plan, p.sampleExitSide(entrySide))

		p.advanceCursor(rect)
		return plan, true
	}

	return RoomPlan{}, false
}

func (p *Planner) sampleSize() core.GridPoint {
	spanX := p.cfg.SizeMax.X - p.cfg.SizeMin.X + 1
	spanY := p.cfg.SizeMax.Y - p.cfg.SizeMin.Y + 1
	return core.GridPoint{
		X: p.cfg.SizeMin.X + p.rng.Intn(spanX),
		Y: p.cfg.SizeMin.Y + p.rng.Intn(spanY),
	}
}

// stepOrigin places the candidate rect beyond the cursor in direction dir,
// offset by the candidate's extent along that axis plus jitter
func (p *Planner) stepOrigin(size core.GridPoint, dir core.Side) core.GridPoint {
	jitter := 0
	if p.cfg.JitterMax > 0 {
		jitter = p.rng.Intn(p.cfg.JitterMax + 1)
	}

	dx, dy := dir.Delta()
	origin := p.cursor
	switch {
	case dx > 0:
		origin.X = p.cursor.X + 1 + jitter
		origin.Y = p.cursor.Y - size.Y/2
	case dx < 0:
		origin.X = p.cursor.X - size.X - jitter
		origin.Y = p.cursor.Y - size.Y/2
	case dy > 0:
		origin.X = p.cursor.X - size.X/2
		origin.Y = p.cursor.Y + 1 + jitter
	default:
		origin.X = p.cursor.X - size.X/2
		origin.Y = p.cursor.Y - size.Y - jitter
	}
	return origin
}

func (p *Planner) overlaps(rect core.GridRect) bool {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			if _, hit := p.occupied[core.GridPoint{X: x, Y: y}]; hit {
				return true
			}
		}
	}
	return false
}

func (p *Planner) mark(rect core.GridRect) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			p.occupied[core.GridPoint{X: x, Y: y}] = struct{}{}
		}
	}
}

// sampleExitSide picks any side except the entry
func (p *Planner) sampleExitSide(entry core.Side) core.Side {
	s := core.Side(p.rng.Intn(int(core.SideCount) - 1))
	if s >= entry {
		s++
	}
	return s
}

// sampleDoor picks a doorway on the given side honoring corner margins:
// width bounded by wallLength-2, offset in [1, wallLength-width-1]
func (p *Planner) sampleDoor(plan RoomPlan, side core.Side) DoorRect {
	wall := plan.WallLength(side)

	maxWidth := p.cfg.DoorWidthMax
	if maxWidth > wall-2 {
		maxWidth = wall - 2
	}
	minWidth := p.cfg.DoorWidthMin
	if minWidth < 1 {
		minWidth = 1
	}
	if maxWidth < minWidth {
		maxWidth = minWidth
	}

	width := minWidth + p.rng.Intn(maxWidth-minWidth+1)
	offset := 1 + p.rng.Intn(wall-width-1)

	yMax := p.cfg.DoorHeight
	if yMax > plan.Height-2 {
		yMax = plan.Height - 2
	}
	if yMax < 1 {
		yMax = 1
	}

	return DoorRect{
		Side:   side,
		Offset: offset,
		Width:  width,
		YMin:   1,
		YMax:   yMax,
	}
}

// advanceCursor moves the walk cursor to a random point on the new room's
// boundary so the next placement continues the meander
func (p *Planner) advanceCursor(rect core.GridRect) {
	side := core.Side(p.rng.Intn(int(core.SideCount)))
	switch side {
	case core.SideNorth:
		p.cursor = core.GridPoint{X: rect.X + p.rng.Intn(rect.W), Y: rect.Y}
	case core.SideSouth:
		p.cursor = core.GridPoint{X: rect.X + p.rng.Intn(rect.W), Y: rect.Y + rect.H - 1}
	case core.SideEast:
		p.cursor = core.GridPoint{X: rect.X + rect.W - 1, Y: rect.Y + p.rng.Intn(rect.H)}
	default:
		p.cursor = core.GridPoint{X: rect.X, Y: rect.Y + p.rng.Intn(rect.H)}
	}
}
