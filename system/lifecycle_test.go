package system

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/corridor/config"
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/layout"
	"github.com/lixenwraith/corridor/room"
)

// fakeTask completes after a fixed number of steps
type fakeTask struct {
	room  core.RoomID
	steps int
	done  bool
}

func (t *fakeTask) Step() bool {
	if t.done {
		return true
	}
	t.steps--
	if t.steps <= 0 {
		t.done = true
	}
	return t.done
}

func (t *fakeTask) Done() bool        { return t.done }
func (t *fakeTask) Room() core.RoomID { return t.room }

// fakeGen registers instances in the arena like the real builder and
// hands out fixed-length tasks
type fakeGen struct {
	arena     *room.Arena
	stepsPer  int
	cleared   []core.RoomID
	failNext  bool
	panicNext bool
}

func (g *fakeGen) Generate(plan layout.RoomPlan) (room.Task, error) {
	if g.panicNext {
		g.panicNext = false
		panic("generator blew up")
	}
	if g.failNext {
		g.failNext = false
		return nil, errors.New("no geometry for plan")
	}
	id := g.arena.AddRoom(&room.Instance{Plan: plan, EntryDoor: core.NoDoor, ExitDoor: core.NoDoor})
	steps := g.stepsPer
	if steps < 1 {
		steps = 1
	}
	return &fakeTask{room: id, steps: steps}, nil
}

func (g *fakeGen) Clear(id core.RoomID) {
	g.arena.RemoveRoom(id)
	g.cleared = append(g.cleared, id)
}

func testPlans(n int) []layout.RoomPlan {
	plans := make([]layout.RoomPlan, n)
	for i := range plans {
		plans[i] = layout.RoomPlan{
			ID:     i,
			Origin: core.GridPoint{X: i * 10},
			Size:   core.GridPoint{X: 6, Y: 6},
			Height: 4,
		}
	}
	return plans
}

func lifecycleFixture(t *testing.T, mutate func(*config.Config)) (*LifecycleSystem, *fakeGen, *engine.World) {
	t.Helper()
	cfg := config.Default()
	cfg.Lifecycle.UnloadDistance = 0
	if mutate != nil {
		mutate(cfg)
	}
	w := engine.NewWorld(engine.NewResource(cfg, nil))
	gen := &fakeGen{arena: w.Resources.Rooms, stepsPer: 1}
	s := NewLifecycleSystem(w, gen, nil)
	s.SetPlans(testPlans(10))
	return s, gen, w
}

func drainEvents(w *engine.World) []event.GameEvent {
	return w.Resources.Event.Queue.Drain(nil)
}

func eventTypes(events []event.GameEvent) map[event.EventType]int {
	counts := make(map[event.EventType]int)
	for _, ev := range events {
		counts[ev.Type]++
	}
	return counts
}

func TestRequestDeduplicates(t *testing.T) {
	s, _, _ := lifecycleFixture(t, nil)

	for i := 0; i < 5; i++ {
		s.Request(2)
	}
	if s.QueueLen() != 1 {
		t.Fatalf("queue holds %d entries after duplicate requests, want 1", s.QueueLen())
	}

	s.Update() // Start and finish the one-step build
	if s.ResidentCount() != 1 {
		t.Fatalf("resident = %d, want 1", s.ResidentCount())
	}

	// Resident plan stays deduplicated
	s.Request(2)
	if s.QueueLen() != 0 {
		t.Fatal("resident plan re-queued")
	}
}

func TestRequestOutOfRangeDropped(t *testing.T) {
	s, _, _ := lifecycleFixture(t, nil)
	s.Request(-1)
	s.Request(100)
	if s.QueueLen() != 0 {
		t.Fatalf("queue holds %d invalid requests", s.QueueLen())
	}
}

func TestDrainBuildsOneAtATime(t *testing.T) {
	s, gen, _ := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 10
	})
	gen.stepsPer = 3

	s.Request(0)
	s.Request(1)

	s.Update() // Picks plan 0, step 1/3
	if s.ResidentCount() != 0 {
		t.Fatal("room registered before its task finished")
	}
	if s.QueueLen() != 1 {
		t.Fatalf("queue = %d while first build runs, want 1", s.QueueLen())
	}

	s.Update()
	s.Update() // Plan 0 finishes
	if s.ResidentCount() != 1 {
		t.Fatalf("resident = %d after first build, want 1", s.ResidentCount())
	}

	s.Update()
	s.Update()
	s.Update() // Plan 1 finishes
	if s.ResidentCount() != 2 {
		t.Fatalf("resident = %d after both builds, want 2", s.ResidentCount())
	}
}

func TestCapacityEvictsLeastRecent(t *testing.T) {
	s, gen, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 2
	})

	for i := 0; i < 3; i++ {
		s.Request(i)
		s.Update()
	}
	drainEvents(w)

	if s.ResidentCount() != 2 {
		t.Fatalf("resident = %d, want 2", s.ResidentCount())
	}
	if len(gen.cleared) != 1 {
		t.Fatalf("cleared %d rooms, want 1", len(gen.cleared))
	}
	// Oldest room (first built) went first
	if gen.cleared[0] != 1 {
		t.Fatalf("evicted room %d, want the first built", gen.cleared[0])
	}
}

func TestEntryRefreshesRecency(t *testing.T) {
	s, gen, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 2
	})

	s.Request(0)
	s.Update()
	s.Request(1)
	s.Update()

	// Touch plan 0 so plan 1 becomes least recent
	s.HandleEvent(event.GameEvent{Type: event.EventRoomEntered, Payload: uint64(0)})

	s.Request(2)
	s.Update()
	drainEvents(w)

	if len(gen.cleared) != 1 || gen.cleared[0] != 2 {
		t.Fatalf("cleared %v, want the untouched second room", gen.cleared)
	}
	if !s.Resident(1) {
		t.Fatal("refreshed room was evicted")
	}
}

func TestEvictionReArmsPlan(t *testing.T) {
	s, _, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 1
	})

	s.Request(0)
	s.Update()
	s.Request(1)
	s.Update() // Evicts plan 0's room
	drainEvents(w)

	s.Request(0)
	if s.QueueLen() != 1 {
		t.Fatal("evicted plan not re-armed for requests")
	}
}

func TestWaitBudgetOrphansBuild(t *testing.T) {
	s, gen, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 10
		c.Lifecycle.BuildWaitBudgetMs = 100
	})
	gen.stepsPer = 1000

	base := time.Unix(1000, 0)
	w.Resources.Time.Update(base, base, 50*time.Millisecond, 1)

	s.Request(0)
	s.Update() // Build starts

	// Past the wait budget the drain moves on
	late := base.Add(200 * time.Millisecond)
	w.Resources.Time.Update(late, late, 50*time.Millisecond, 2)
	s.Update()

	gen.stepsPer = 1
	s.Request(1)
	s.Update() // Plan 1 builds while the orphan keeps stepping
	if s.ResidentCount() != 1 {
		t.Fatalf("resident = %d, want only the second room", s.ResidentCount())
	}

	// Let the orphan finish; it must never register
	for i := 0; i < 2000 && len(s.orphans) > 0; i++ {
		s.Update()
	}
	if len(s.orphans) != 0 {
		t.Fatal("orphan never completed")
	}
	if s.ResidentCount() != 1 {
		t.Fatalf("orphan result was registered; resident = %d", s.ResidentCount())
	}
}

func TestTimeoutReArmsPlan(t *testing.T) {
	s, gen, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.MaxActiveRooms = 10
		c.Lifecycle.BuildWaitBudgetMs = 100
	})
	gen.stepsPer = 1000

	base := time.Unix(1000, 0)
	w.Resources.Time.Update(base, base, 50*time.Millisecond, 1)

	s.Request(0)
	s.Update()

	late := base.Add(200 * time.Millisecond)
	w.Resources.Time.Update(late, late, 50*time.Millisecond, 2)
	s.Update() // Orphaned

	for i := 0; i < 2000 && len(s.orphans) > 0; i++ {
		s.Update()
	}
	if len(s.orphans) != 0 {
		t.Fatal("orphan never completed")
	}
	if len(gen.cleared) != 1 {
		t.Fatalf("orphan instance cleared %d times, want 1", len(gen.cleared))
	}

	// The timed-out plan must be requestable again
	gen.stepsPer = 1
	s.Request(0)
	if s.QueueLen() != 1 {
		t.Fatalf("re-enqueue after timeout dropped: queue = %d, want 1", s.QueueLen())
	}
	s.Update()
	if s.ResidentCount() != 1 {
		t.Fatalf("rebuilt room not resident, count = %d", s.ResidentCount())
	}
}

func TestGeneratorPanicDropsPlan(t *testing.T) {
	s, gen, _ := lifecycleFixture(t, nil)
	gen.panicNext = true

	s.Request(0)
	s.Update() // Must not propagate the panic

	if s.ResidentCount() != 0 {
		t.Fatal("panicked build registered a room")
	}

	// Plan is re-armed after the failure
	s.Request(0)
	if s.QueueLen() != 1 {
		t.Fatal("plan not requestable after generator panic")
	}
	s.Update()
	if s.ResidentCount() != 1 {
		t.Fatal("retry after panic did not build")
	}
}

func TestGenerateErrorDropsPlan(t *testing.T) {
	s, gen, _ := lifecycleFixture(t, nil)
	gen.failNext = true

	s.Request(0)
	s.Update()
	if s.ResidentCount() != 0 {
		t.Fatal("failed build registered a room")
	}

	s.Request(0)
	if s.QueueLen() != 1 {
		t.Fatal("plan not re-armed after generate error")
	}
}

func TestDistanceEviction(t *testing.T) {
	s, gen, w := lifecycleFixture(t, func(c *config.Config) {
		c.Lifecycle.UnloadDistance = 20
		c.Lifecycle.MaxActiveRooms = 10
	})

	s.Request(0) // Origin 0
	s.Update()
	s.Request(5) // Origin 50, well past the unload distance
	s.Update()

	w.Resources.Player.Position = core.GridPoint{X: 3, Y: 3}
	w.Resources.Player.Set = true
	s.Update()

	events := eventTypes(drainEvents(w))
	if events[event.EventRoomUnloaded] != 1 {
		t.Fatalf("unloaded %d rooms, want 1", events[event.EventRoomUnloaded])
	}
	if len(gen.cleared) != 1 || gen.cleared[0] != 2 {
		t.Fatalf("cleared %v, want only the distant room", gen.cleared)
	}
	if !s.Resident(1) {
		t.Fatal("near room evicted")
	}
}

func TestRoomBuiltAnnouncement(t *testing.T) {
	s, _, w := lifecycleFixture(t, nil)

	s.Request(0)
	s.Update()

	events := eventTypes(drainEvents(w))
	for _, want := range []event.EventType{
		event.EventRoomBuilt,
		event.EventRoomPopulated,
		event.EventSoundRequest,
	} {
		if events[want] != 1 {
			t.Fatalf("event %v emitted %d times, want 1", want, events[want])
		}
	}
}

func TestSessionResetClearsResidency(t *testing.T) {
	s, gen, _ := lifecycleFixture(t, nil)

	s.Request(0)
	s.Update()
	s.Request(1)

	s.HandleEvent(event.GameEvent{Type: event.EventSessionReset})

	if s.ResidentCount() != 0 || s.QueueLen() != 0 {
		t.Fatalf("state survived reset: resident=%d queue=%d",
			s.ResidentCount(), s.QueueLen())
	}
	if len(gen.cleared) != 1 {
		t.Fatalf("reset cleared %d rooms, want 1", len(gen.cleared))
	}
}
