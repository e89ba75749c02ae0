package system

import (
	"container/list"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/layout"
	"github.com/lixenwraith/corridor/parameter"
	"github.com/lixenwraith/corridor/room"
)

// buildState tracks one in-flight room construction
type buildState struct {
	planIndex int
	task      room.Task
	started   time.Time
}

// LifecycleSystem owns room residency: it drains build requests through
// the generator one at a time, tracks resident rooms most-recent-first,
// and evicts by capacity and by distance.
//
// Requests are deduplicated per plan index for the whole time the plan
// is queued, building, or resident; eviction re-arms the plan.
type LifecycleSystem struct {
	world *engine.World
	log   *zap.Logger
	gen   room.Generator

	plans []layout.RoomPlan

	queue   []int
	pending map[int]bool

	current *buildState
	orphans []*buildState

	// MRU order: front is the most recently touched resident room
	active *list.List
	byRoom map[core.RoomID]*list.Element

	maxActive      int
	waitBudget     time.Duration
	unloadDistance int

	statActive   *atomic.Int64
	statBuilt    *atomic.Int64
	statEvicted  *atomic.Int64
	statOrphaned *atomic.Int64
}

// NewLifecycleSystem creates the lifecycle manager around a generator
func NewLifecycleSystem(world *engine.World, gen room.Generator, log *zap.Logger) *LifecycleSystem {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := world.Resources.Config.Lifecycle

	s := &LifecycleSystem{
		world:          world,
		log:            log,
		gen:            gen,
		maxActive:      cfg.MaxActiveRooms,
		waitBudget:     cfg.BuildWaitBudget(),
		unloadDistance: cfg.UnloadDistance,
		statActive:     world.Resources.Status.Ints.Get("lifecycle.active"),
		statBuilt:      world.Resources.Status.Ints.Get("lifecycle.built"),
		statEvicted:    world.Resources.Status.Ints.Get("lifecycle.evicted"),
		statOrphaned:   world.Resources.Status.Ints.Get("lifecycle.orphaned"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *LifecycleSystem) Init() {
	for id := range s.byRoom {
		s.gen.Clear(id)
	}
	s.queue = s.queue[:0]
	s.pending = make(map[int]bool)
	s.current = nil
	s.orphans = nil
	s.active = list.New()
	s.byRoom = make(map[core.RoomID]*list.Element)
	s.statActive.Store(0)
}

// SetPlans installs the session's planned rooms
func (s *LifecycleSystem) SetPlans(plans []layout.RoomPlan) {
	s.plans = plans
}

// Name returns the system's name
func (s *LifecycleSystem) Name() string {
	return "lifecycle"
}

// Priority returns the system's priority
func (s *LifecycleSystem) Priority() int {
	return parameter.PriorityLifecycle
}

// EventTypes returns the event types LifecycleSystem handles
func (s *LifecycleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSessionReset,
		event.EventRequestNextRoom,
		event.EventRoomEntered,
	}
}

// HandleEvent processes streaming requests from the router
func (s *LifecycleSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSessionReset:
		s.Init()

	case event.EventRequestNextRoom:
		if index, ok := event.IndexOf(ev); ok {
			s.Request(index)
		}

	case event.EventRoomEntered:
		if index, ok := event.IndexOf(ev); ok {
			s.touchByPlan(index)
		}
	}
}

// Request queues a plan for construction. Duplicate requests for a plan
// that is already queued, building, or resident are dropped.
func (s *LifecycleSystem) Request(index int) {
	if index < 0 || index >= len(s.plans) {
		s.log.Debug("room request out of range", zap.Int("plan", index))
		return
	}
	if s.pending[index] {
		return
	}
	s.pending[index] = true
	s.queue = append(s.queue, index)
}

// Update advances the drain loop and applies eviction policy
func (s *LifecycleSystem) Update() {
	s.evictDistant()

	if s.current == nil && len(s.queue) > 0 {
		index := s.queue[0]
		s.queue = s.queue[1:]
		s.startBuild(index)
	}

	if s.current != nil {
		s.stepCurrent()
	}

	s.stepOrphans()
	s.statActive.Store(int64(s.active.Len()))
}

// startBuild launches one generator run
// A generator panic is contained here: the plan is dropped and re-armed
func (s *LifecycleSystem) startBuild(index int) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("generator panicked, plan dropped",
				zap.Int("plan", index),
				zap.Any("panic", r))
			delete(s.pending, index)
			s.current = nil
		}
	}()

	task, err := s.gen.Generate(s.plans[index])
	if err != nil {
		s.log.Error("generate failed",
			zap.Int("plan", index),
			zap.Error(err))
		delete(s.pending, index)
		return
	}

	s.current = &buildState{
		planIndex: index,
		task:      task,
		started:   s.world.Resources.Time.GameTime,
	}
}

func (s *LifecycleSystem) stepCurrent() {
	b := s.current

	if b.task.Step() {
		s.current = nil
		s.register(b)
		return
	}

	if s.waitBudget > 0 && s.world.Resources.Time.GameTime.Sub(b.started) > s.waitBudget {
		// The drain moves on; the task keeps stepping but its result
		// will not be registered
		s.log.Warn("build exceeded wait budget, continuing unmanaged",
			zap.Int("plan", b.planIndex),
			zap.Duration("budget", s.waitBudget))
		s.statOrphaned.Add(1)
		s.orphans = append(s.orphans, b)
		s.current = nil
	}
}

// stepOrphans keeps timed-out builds running to completion so their
// entities can be reclaimed. A finished orphan is discarded, never
// registered, and its plan becomes requestable again.
func (s *LifecycleSystem) stepOrphans() {
	remaining := s.orphans[:0]
	for _, b := range s.orphans {
		if b.task.Step() {
			id := b.task.Room()
			s.gen.Clear(id)
			delete(s.pending, b.planIndex)
			s.log.Warn("orphaned build finished late, discarded",
				zap.Int("plan", b.planIndex),
				zap.Uint32("room", uint32(id)))
			continue
		}
		remaining = append(remaining, b)
	}
	s.orphans = remaining
}

// register makes a finished room resident and enforces capacity
func (s *LifecycleSystem) register(b *buildState) {
	id := b.task.Room()
	s.byRoom[id] = s.active.PushFront(id)
	s.statBuilt.Add(1)

	q := s.world.Resources.Event.Queue
	frame := s.world.FrameNumber()
	event.EmitRoom(q, event.EventRoomBuilt, id, frame)
	event.EmitRoom(q, event.EventRoomPopulated, id, frame)
	event.EmitSound(q, core.SoundRoomBuilt, frame)

	s.log.Info("room resident",
		zap.Uint32("room", uint32(id)),
		zap.Int("plan", b.planIndex),
		zap.Int("active", s.active.Len()))

	s.enforceCapacity()
}

// enforceCapacity evicts least-recently-touched rooms above the cap
func (s *LifecycleSystem) enforceCapacity() {
	for s.active.Len() > s.maxActive {
		back := s.active.Back()
		if back == nil {
			return
		}
		s.evict(back.Value.(core.RoomID), "capacity")
	}
}

// evictDistant unloads resident rooms too far from the tracked position
func (s *LifecycleSystem) evictDistant() {
	player := s.world.Resources.Player
	if s.unloadDistance <= 0 || !player.Set {
		return
	}

	var far []core.RoomID
	for e := s.active.Front(); e != nil; e = e.Next() {
		id := e.Value.(core.RoomID)
		inst, ok := s.world.Resources.Rooms.Room(id)
		if !ok {
			far = append(far, id)
			continue
		}
		c := inst.Plan.Center()
		dx := abs(c.X - player.Position.X)
		dz := abs(c.Y - player.Position.Y)
		if max(dx, dz) > s.unloadDistance {
			far = append(far, id)
		}
	}
	for _, id := range far {
		s.evict(id, "distance")
	}
}

func (s *LifecycleSystem) evict(id core.RoomID, reason string) {
	el, ok := s.byRoom[id]
	if !ok {
		return
	}
	s.active.Remove(el)
	delete(s.byRoom, id)

	// Re-arm the plan so the room can be rebuilt on a later visit
	if inst, ok := s.world.Resources.Rooms.Room(id); ok {
		delete(s.pending, inst.Plan.ID)
	}

	s.gen.Clear(id)
	s.statEvicted.Add(1)

	event.EmitRoom(s.world.Resources.Event.Queue, event.EventRoomUnloaded, id, s.world.FrameNumber())
	s.log.Info("room evicted",
		zap.Uint32("room", uint32(id)),
		zap.String("reason", reason))
}

// touchByPlan moves the resident room for a plan to the front of the
// recency order
func (s *LifecycleSystem) touchByPlan(index int) {
	id, ok := s.world.Resources.Rooms.RoomByPlanID(index)
	if !ok {
		return
	}
	if el, ok := s.byRoom[id]; ok {
		s.active.MoveToFront(el)
	}
}

// Resident reports whether the room is registered and managed
func (s *LifecycleSystem) Resident(id core.RoomID) bool {
	_, ok := s.byRoom[id]
	return ok
}

// ResidentCount returns the number of managed rooms
func (s *LifecycleSystem) ResidentCount() int {
	return s.active.Len()
}

// QueueLen returns the number of plans waiting to build
func (s *LifecycleSystem) QueueLen() int {
	return len(s.queue)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
