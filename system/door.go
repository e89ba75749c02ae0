package system

import (
	"errors"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/component"
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/parameter"
	"github.com/lixenwraith/corridor/room"
	"github.com/lixenwraith/corridor/vmath"
)

var (
	ErrUnknownDoor = errors.New("door: unknown door id")
	ErrDoorBusy    = errors.New("door: transition in progress")
	ErrDoorLocked  = errors.New("door: locked")
)

// doorTransition is the single in-flight animation for one door
// At most one exists per door; SetOpen rejects while it runs
type doorTransition struct {
	id      core.DoorID
	opening bool
	elapsed time.Duration
	total   time.Duration

	// yawTargets holds each element's randomized rotation at full shrink
	yawTargets []float64
}

// DoorSystem animates door curtains and owns all door state changes.
// Elements shrink and rotate out with a per-element stagger when
// opening, and grow back to their exact original transforms when
// closing.
type DoorSystem struct {
	world *engine.World
	log   *zap.Logger

	duration time.Duration
	stagger  time.Duration
	guard    time.Duration
	maxYaw   float64

	transitions map[core.DoorID]*doorTransition
	rng         *rand.Rand

	statOpened *atomic.Int64
	statClosed *atomic.Int64
}

// NewDoorSystem creates the door subsystem
func NewDoorSystem(world *engine.World, log *zap.Logger) *DoorSystem {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := world.Resources.Config.Door

	s := &DoorSystem{
		world:      world,
		log:        log,
		duration:   cfg.AnimationDuration(),
		stagger:    cfg.StaggerDelay(),
		guard:      cfg.GuardMargin(),
		maxYaw:     cfg.MaxRandomYaw,
		statOpened: world.Resources.Status.Ints.Get("door.opened"),
		statClosed: world.Resources.Status.Ints.Get("door.closed"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *DoorSystem) Init() {
	s.transitions = make(map[core.DoorID]*doorTransition)
	s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Name returns the system's name
func (s *DoorSystem) Name() string {
	return "door"
}

// Priority returns the system's priority
func (s *DoorSystem) Priority() int {
	return parameter.PriorityDoor
}

// EventTypes returns the event types DoorSystem handles
func (s *DoorSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSessionReset,
		event.EventRoomShouldOpenExit,
	}
}

// HandleEvent processes door requests from the router
func (s *DoorSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSessionReset:
		s.Init()

	case event.EventRoomShouldOpenExit:
		id, ok := event.RoomOf(ev)
		if !ok {
			return
		}
		inst, ok := s.world.Resources.Rooms.Room(id)
		if !ok || inst.ExitDoor == core.NoDoor {
			return
		}
		if err := s.SetOpen(inst.ExitDoor, true); err != nil &&
			!errors.Is(err, ErrDoorBusy) && !errors.Is(err, ErrDoorLocked) {
			s.log.Warn("exit open failed",
				zap.Uint32("room", uint32(id)),
				zap.Error(err))
		}
	}
}

// busyWindow is the full span of a transition: the last element starts
// after every stagger delay and still needs the full duration, plus a
// guard margin before the final snap
func (s *DoorSystem) busyWindow(elements int) time.Duration {
	if elements < 1 {
		return s.guard
	}
	return s.duration + time.Duration(elements-1)*s.stagger + s.guard
}

// SetOpen starts a transition toward the requested state
// Same-state requests are no-ops; a door mid-transition rejects with
// ErrDoorBusy, a locked door opening with ErrDoorLocked
func (s *DoorSystem) SetOpen(id core.DoorID, open bool) error {
	door, ok := s.world.Resources.Rooms.Door(id)
	if !ok {
		return ErrUnknownDoor
	}
	if door.Animating {
		return ErrDoorBusy
	}
	if door.Open == open {
		return nil
	}
	if door.Locked && open {
		return ErrDoorLocked
	}

	n := len(door.Curtain)
	tr := &doorTransition{
		id:         id,
		opening:    open,
		total:      s.busyWindow(n),
		yawTargets: make([]float64, n),
	}
	for i := range tr.yawTargets {
		tr.yawTargets[i] = (s.rng.Float64()*2 - 1) * s.maxYaw
	}

	door.Animating = true
	s.transitions[id] = tr

	if !open {
		// Elements reappear before they start growing
		for _, el := range door.Curtain {
			s.world.Components.Active.Set(el.Entity, component.ActiveComponent{})
		}
	}

	s.log.Debug("door transition started",
		zap.Uint32("door", uint32(id)),
		zap.Bool("opening", open),
		zap.Int("elements", n),
		zap.Duration("window", tr.total))
	return nil
}

// Interact toggles the door the way a player would. A locked door
// refuses with an audible cue; programmatic SetOpen callers get the
// bare error.
func (s *DoorSystem) Interact(id core.DoorID) error {
	door, ok := s.world.Resources.Rooms.Door(id)
	if !ok {
		return ErrUnknownDoor
	}
	err := s.SetOpen(id, !door.Open)
	if errors.Is(err, ErrDoorLocked) {
		event.EmitSound(s.world.Resources.Event.Queue, core.SoundLocked, s.world.FrameNumber())
	}
	return err
}

// Unlock clears the lock flag
func (s *DoorSystem) Unlock(id core.DoorID) error {
	door, ok := s.world.Resources.Rooms.Door(id)
	if !ok {
		return ErrUnknownDoor
	}
	door.Locked = false
	return nil
}

// Lock sets the lock flag; an already-open door stays open
func (s *DoorSystem) Lock(id core.DoorID) error {
	door, ok := s.world.Resources.Rooms.Door(id)
	if !ok {
		return ErrUnknownDoor
	}
	door.Locked = true
	return nil
}

// Reindex rebuilds the door's curtain from the component store, ordered
// by element index. Used after external geometry edits. Rejected while a
// transition runs.
func (s *DoorSystem) Reindex(id core.DoorID) error {
	door, ok := s.world.Resources.Rooms.Door(id)
	if !ok {
		return ErrUnknownDoor
	}
	if door.Animating {
		return ErrDoorBusy
	}

	type indexed struct {
		el    room.CurtainElement
		index int
	}
	var members []indexed

	curtains := s.world.Components.Curtain
	for _, e := range curtains.All() {
		c, _ := curtains.Get(e)
		if c.Door != id {
			continue
		}
		tf := core.IdentityTransform()
		if t, ok := s.world.Components.Transform.Get(e); ok {
			tf = t.Transform
		}
		members = append(members, indexed{
			el:    room.CurtainElement{Entity: e, Original: tf},
			index: c.Index,
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].index < members[j].index })

	door.Curtain = door.Curtain[:0]
	for _, m := range members {
		door.Curtain = append(door.Curtain, m.el)
	}
	return nil
}

// Update advances all running transitions by the tick delta
func (s *DoorSystem) Update() {
	dt := s.world.Resources.Time.DeltaTime
	if dt <= 0 || len(s.transitions) == 0 {
		return
	}

	for id, tr := range s.transitions {
		tr.elapsed += dt
		door, ok := s.world.Resources.Rooms.Door(id)
		if !ok {
			// Door evicted mid-transition
			delete(s.transitions, id)
			continue
		}

		if tr.elapsed >= tr.total {
			s.finish(door, tr)
			delete(s.transitions, id)
			continue
		}

		s.animate(door, tr)
	}
}

// animate writes the eased per-element transforms for one tick.
// Opening staggers from the first element, closing from the last, so the
// curtain visually closes from the far end.
func (s *DoorSystem) animate(door *room.Door, tr *doorTransition) {
	last := len(door.Curtain) - 1
	for i, el := range door.Curtain {
		order := i
		if !tr.opening {
			order = last - i
		}
		start := time.Duration(order) * s.stagger
		var p float64
		switch {
		case tr.elapsed <= start:
			p = 0
		case s.duration <= 0:
			p = 1
		default:
			p = float64(tr.elapsed-start) / float64(s.duration)
			if p > 1 {
				p = 1
			}
		}

		eased := vmath.ToFloat(vmath.EaseSmoothStep(vmath.FromFloat(p)))

		tf := el.Original
		if tr.opening {
			scale := 1 - eased
			tf.Scale = core.Vec3F{
				X: el.Original.Scale.X * scale,
				Y: el.Original.Scale.Y * scale,
				Z: el.Original.Scale.Z * scale,
			}
			tf.Yaw = el.Original.Yaw + eased*tr.yawTargets[i]
			if p >= 1 {
				// Fully shrunk elements leave the scene
				s.world.Components.Active.Remove(el.Entity)
			}
		} else {
			tf.Scale = core.Vec3F{
				X: el.Original.Scale.X * eased,
				Y: el.Original.Scale.Y * eased,
				Z: el.Original.Scale.Z * eased,
			}
			tf.Yaw = el.Original.Yaw + (1-eased)*tr.yawTargets[i]
		}
		s.place(el.Entity, tf)
	}
}

// finish snaps the door to its settled state and announces it
func (s *DoorSystem) finish(door *room.Door, tr *doorTransition) {
	for _, el := range door.Curtain {
		if tr.opening {
			tf := el.Original
			tf.Scale = core.Vec3F{}
			s.place(el.Entity, tf)
			s.world.Components.Active.Remove(el.Entity)
		} else {
			// Exact restoration, no drift from eased frames
			s.place(el.Entity, el.Original)
			s.world.Components.Active.Set(el.Entity, component.ActiveComponent{})
		}
	}

	door.Open = tr.opening
	door.Animating = false

	q := s.world.Resources.Event.Queue
	frame := s.world.FrameNumber()
	event.EmitDoorState(q, tr.id, door.Open, frame)
	if tr.opening {
		s.statOpened.Add(1)
		event.EmitSound(q, core.SoundDoorOpen, frame)
	} else {
		s.statClosed.Add(1)
		event.EmitSound(q, core.SoundDoorClose, frame)
	}

	s.log.Debug("door settled",
		zap.Uint32("door", uint32(tr.id)),
		zap.Bool("open", door.Open))
}

func (s *DoorSystem) place(e core.Entity, tf core.Transform) {
	s.world.Components.Transform.Set(e, component.TransformComponent{Transform: tf})
}
