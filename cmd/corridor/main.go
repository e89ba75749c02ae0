// Command corridor runs the streaming corridor crawl in a terminal.
// Rooms are planned up front, then built, opened, and evicted around the
// player as they move.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/audio"
	"github.com/lixenwraith/corridor/config"
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/layout"
	"github.com/lixenwraith/corridor/parameter"
	"github.com/lixenwraith/corridor/pool"
	"github.com/lixenwraith/corridor/room"
	"github.com/lixenwraith/corridor/system"
)

func main() {
	configPath := flag.String("config", "corridor.toml", "path to TOML configuration")
	seed := flag.Int64("seed", 0, "layout seed, 0 derives from time")
	mute := flag.Bool("mute", false, "start with audio muted")
	flag.Parse()

	if err := run(*configPath, *seed, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "corridor: %v\n", err)
		os.Exit(1)
	}
}

type game struct {
	cfg   *config.Config
	log   *zap.Logger
	world *engine.World

	screen    tcell.Screen
	scheduler *engine.ClockScheduler
	doors     *system.DoorSystem
	lifecycle *system.LifecycleSystem
	sound     *audio.Manager

	plans []layout.RoomPlan
}

func run(configPath string, seed int64, mute bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Layout.Seed = seed
	}
	if cfg.Layout.Seed == 0 {
		cfg.Layout.Seed = time.Now().UnixNano()
	}

	log, err := cfg.Logging.Build()
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := newGame(cfg, log, mute)
	if err != nil {
		return err
	}
	defer g.cleanup()

	core.SetCrashCleanup(func() {
		g.cleanup()
	})

	g.scheduler.Start()
	defer g.scheduler.Stop()

	return g.frontendLoop()
}

func newGame(cfg *config.Config, log *zap.Logger, mute bool) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	res := engine.NewResource(cfg, log)
	world := engine.NewWorld(res)
	host := engine.NewSceneHost(world)

	holding := world.CreateEntity()
	res.Pool = pool.New(host, holding, log, res.Status)
	voxelPrefab := res.Pool.RegisterPrefab(
		engine.NewBlockPrefab(world, "voxel"), cfg.Pool.MaxSize, cfg.Pool.Prewarm)
	propPrefab := res.Pool.RegisterPrefab(
		engine.NewBlockPrefab(world, "prop"), cfg.Pool.MaxSize/4, 0)

	builder := room.NewVoxelBuilder(host, res.Pool, res.Rooms, log, room.BuilderConfig{
		VoxelPrefab: voxelPrefab,
		PropPrefab:  propPrefab,
		Ceiling:     cfg.Builder.Ceiling,
		PropsMax:    cfg.Builder.PropsMax,
		BatchSize:   cfg.Builder.SpawnBatchSize,
		TimeBudget:  cfg.Builder.BuildTimeBudget(),
	})

	sound := audio.NewManager(cfg.Audio, log)
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
	}
	sound.SetMuted(mute)

	lifecycle := system.NewLifecycleSystem(world, builder, log)
	doors := system.NewDoorSystem(world, log)

	world.AddSystem(system.NewTriggerSystem(world, log))
	world.AddSystem(lifecycle)
	world.AddSystem(doors)
	world.AddSystem(system.NewAudioSystem(world, sound))

	scheduler := engine.NewClockScheduler(world, engine.NewPausableClock(), parameter.GameUpdateInterval)
	scheduler.RegisterSystems()

	g := &game{
		cfg:       cfg,
		log:       log,
		world:     world,
		screen:    screen,
		scheduler: scheduler,
		doors:     doors,
		lifecycle: lifecycle,
		sound:     sound,
	}
	g.planSession()
	return g, nil
}

// planSession runs the layout planner and seeds the first room
func (g *game) planSession() {
	planner := layout.NewPlanner(plannerConfig(g.cfg))
	result := planner.Plan()
	g.plans = result.Plans
	g.lifecycle.SetPlans(result.Plans)

	if !result.Complete {
		g.log.Warn("layout incomplete",
			zap.Int("planned", len(result.Plans)),
			zap.Int("requested", g.cfg.Layout.RoomCount))
	}

	for _, plan := range result.Plans {
		g.world.PushEvent(event.EventRoomPlanned, &event.RoomPlannedPayload{Plan: plan})
	}
	if len(g.plans) > 0 {
		g.world.PushEvent(event.EventRequestNextRoom, uint64(0))
		start := g.plans[0].Center()
		g.world.Resources.Player.Position = start
		g.world.Resources.Player.Set = true
	}
}

func plannerConfig(cfg *config.Config) layout.Config {
	c := layout.DefaultConfig(cfg.Layout.Seed)
	c.RoomCount = cfg.Layout.RoomCount
	c.SizeMin = core.GridPoint{X: cfg.Layout.SizeMinX, Y: cfg.Layout.SizeMinZ}
	c.SizeMax = core.GridPoint{X: cfg.Layout.SizeMaxX, Y: cfg.Layout.SizeMaxZ}
	c.Height = cfg.Layout.Height
	c.Attempts = cfg.Layout.Attempts
	c.JitterMax = cfg.Layout.JitterMax
	c.DoorWidthMin = cfg.Layout.DoorWidthMin
	c.DoorWidthMax = cfg.Layout.DoorWidthMax
	c.DoorHeight = cfg.Layout.DoorHeight
	return c
}

func (g *game) cleanup() {
	if g.screen != nil {
		g.screen.Fini()
		g.screen = nil
	}
	if g.sound != nil {
		g.sound.Cleanup()
	}
	g.log.Sync()
}

// frontendLoop polls input and renders until quit
func (g *game) frontendLoop() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go g.screen.ChannelEvents(events, quit)

	render := time.NewTicker(parameter.FrameUpdateInterval)
	defer render.Stop()

	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if g.handleKey(tev) {
					close(quit)
					return nil
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case <-render.C:
			g.render()
		}
	}
}

// handleKey applies one key press; returns true on quit
func (g *game) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'h':
		g.movePlayer(-1, 0)
	case 'j':
		g.movePlayer(0, 1)
	case 'k':
		g.movePlayer(0, -1)
	case 'l':
		g.movePlayer(1, 0)
	case 'o':
		g.interactExit()
	case 'm':
		g.sound.SetMuted(!g.sound.Muted())
	case 'r':
		// Reset dispatches before the new plans: systems clear their
		// state against the intact arena, then the fresh session seeds
		g.world.RunSafe(func() {
			g.world.PushEvent(event.EventSessionReset, nil)
			g.planSession()
		})
	}
	return false
}

func (g *game) movePlayer(dx, dz int) {
	g.world.RunSafe(func() {
		p := g.world.Resources.Player
		p.Position = p.Position.Add(dx, dz)
		p.Set = true
	})
}

// interactExit toggles the exit door of the room the player stands in
func (g *game) interactExit() {
	g.world.RunSafe(func() {
		res := g.world.Resources
		inst, ok := res.Rooms.Room(res.Player.Room)
		if !ok || inst.ExitDoor == core.NoDoor {
			return
		}
		if err := g.doors.Interact(inst.ExitDoor); err != nil {
			g.log.Debug("interact rejected", zap.Error(err))
		}
	})
}

// cellGlyph maps world content at floor level to a rune
type drawCell struct {
	r     rune
	style tcell.Style
}

// render draws a top-down slice of the resident rooms around the player
func (g *game) render() {
	width, height := g.screen.Size()
	grid := make(map[core.GridPoint]drawCell)
	var player core.GridPoint
	var statusLine string

	g.world.RunSafe(func() {
		res := g.world.Resources
		player = res.Player.Position

		wall := tcell.StyleDefault.Foreground(tcell.ColorGray)
		floor := tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
		prop := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		curtain := tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
		openDoor := tcell.StyleDefault.Foreground(tcell.ColorGreen)

		for _, id := range res.Rooms.RoomIDs() {
			inst, ok := res.Rooms.Room(id)
			if !ok || !inst.Built {
				continue
			}
			plan := inst.Plan
			for x := 0; x < plan.Size.X; x++ {
				for z := 0; z < plan.Size.Y; z++ {
					p := core.GridPoint{X: plan.Origin.X + x, Y: plan.Origin.Y + z}
					edge := x == 0 || x == plan.Size.X-1 || z == 0 || z == plan.Size.Y-1
					if edge {
						grid[p] = drawCell{r: '#', style: wall}
					} else {
						grid[p] = drawCell{r: '.', style: floor}
					}
				}
			}
			for _, e := range inst.Props {
				if v, ok := g.world.Components.Voxel.Get(e); ok {
					p := core.GridPoint{
						X: plan.Origin.X + v.Cell.X,
						Y: plan.Origin.Y + v.Cell.Z,
					}
					grid[p] = drawCell{r: '*', style: prop}
				}
			}
			for _, did := range []core.DoorID{inst.EntryDoor, inst.ExitDoor} {
				door, ok := res.Rooms.Door(did)
				if !ok {
					continue
				}
				glyph, style := '+', curtain
				if door.Open {
					glyph, style = '/', openDoor
				}
				for _, el := range door.Curtain {
					if v, ok := g.world.Components.Voxel.Get(el.Entity); ok && v.Cell.Y == 1 {
						p := core.GridPoint{
							X: plan.Origin.X + v.Cell.X,
							Y: plan.Origin.Y + v.Cell.Z,
						}
						grid[p] = drawCell{r: glyph, style: style}
					}
				}
			}
		}

		statusLine = fmt.Sprintf(" rooms %d/%d  pos %d,%d  [hjkl] move [o] door [m] mute [r] reset [q] quit",
			res.Rooms.RoomCount(), g.cfg.Lifecycle.MaxActiveRooms,
			player.X, player.Y)
	})

	g.screen.Clear()

	// Camera centered on the player
	offX := player.X - width/2
	offZ := player.Y - height/2
	for p, c := range grid {
		g.screen.SetContent(p.X-offX, p.Y-offZ, c.r, nil, c.style)
	}
	g.screen.SetContent(width/2, height/2, '@',
		nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	for i, r := range statusLine {
		if i >= width {
			break
		}
		g.screen.SetContent(i, height-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	g.screen.Show()
}
