package engine

import (
	"testing"

	"github.com/lixenwraith/corridor/component"
	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/event"
)

type orderSystem struct {
	name     string
	priority int
	log      *[]string
	types    []event.EventType
}

func (s *orderSystem) Name() string   { return s.name }
func (s *orderSystem) Priority() int  { return s.priority }
func (s *orderSystem) Update()        { *s.log = append(*s.log, "update:"+s.name) }
func (s *orderSystem) HandleEvent(ev event.GameEvent) {
	*s.log = append(*s.log, "event:"+s.name)
}
func (s *orderSystem) EventTypes() []event.EventType { return s.types }

func newTestWorld() *World {
	return NewWorld(NewResource(nil, nil))
}

func TestCreateEntityUnique(t *testing.T) {
	w := newTestWorld()
	seen := make(map[core.Entity]bool)
	for i := 0; i < 100; i++ {
		e := w.CreateEntity()
		if seen[e] {
			t.Fatalf("entity %d issued twice", e)
		}
		seen[e] = true
	}
}

func TestDestroyEntityClearsAllStores(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity()

	w.Components.Transform.Set(e, component.TransformComponent{})
	w.Components.Voxel.Set(e, component.VoxelComponent{Room: 1})
	w.Components.Curtain.Set(e, component.CurtainComponent{Door: 1})
	w.Components.Active.Set(e, component.ActiveComponent{})

	w.DestroyEntity(e)

	if w.Components.Transform.Has(e) || w.Components.Voxel.Has(e) ||
		w.Components.Curtain.Has(e) || w.Components.Active.Has(e) {
		t.Fatal("components survived entity destruction")
	}
}

func TestSystemPriorityOrder(t *testing.T) {
	w := newTestWorld()
	var log []string

	w.AddSystem(&orderSystem{name: "render", priority: 900, log: &log})
	w.AddSystem(&orderSystem{name: "lifecycle", priority: 20, log: &log})
	w.AddSystem(&orderSystem{name: "door", priority: 30, log: &log})

	w.Update()

	want := []string{"update:lifecycle", "update:door", "update:render"}
	if len(log) != len(want) {
		t.Fatalf("ran %d systems, want %d", len(log), len(want))
	}
	for i, name := range want {
		if log[i] != name {
			t.Fatalf("position %d ran %s, want %s", i, log[i], name)
		}
	}
}

func TestPushEventStampsFrame(t *testing.T) {
	w := newTestWorld()
	w.Resources.Event.Frame.Store(42)

	w.PushEvent(event.EventRoomEntered, uint64(7))

	events := w.Resources.Event.Queue.Drain(nil)
	if len(events) != 1 {
		t.Fatalf("queue holds %d events, want 1", len(events))
	}
	if events[0].Frame != 42 {
		t.Fatalf("frame = %d, want 42", events[0].Frame)
	}
	if events[0].Type != event.EventRoomEntered {
		t.Fatalf("type = %v, want room entered", events[0].Type)
	}
}

func TestRouterDispatchBeforeNextEvent(t *testing.T) {
	w := newTestWorld()
	var log []string

	a := &orderSystem{name: "a", log: &log, types: []event.EventType{event.EventRoomBuilt}}
	b := &orderSystem{name: "b", log: &log, types: []event.EventType{event.EventRoomBuilt}}

	router := NewEventRouter(w.Resources.Event.Queue)
	router.Register(a)
	router.Register(b)

	w.PushEvent(event.EventRoomBuilt, uint64(1))
	w.PushEvent(event.EventRoomBuilt, uint64(2))
	router.DispatchAll()

	want := []string{"event:a", "event:b", "event:a", "event:b"}
	if len(log) != len(want) {
		t.Fatalf("dispatched %d handler calls, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, log[i], want[i])
		}
	}
}

func TestSceneHostRoundTrip(t *testing.T) {
	w := newTestWorld()
	h := NewSceneHost(w)

	e := h.CreateEntity()
	tf := core.IdentityTransform()
	tf.Position = core.Vec3F{X: 3, Y: 1, Z: 5}
	h.Place(e, tf)
	h.SetParent(e, 99)
	h.SetActive(e, true)
	h.SetVoxel(e, 2, core.Cell{X: 1, Y: 0, Z: 1})
	h.SetVisual(e, core.FaceTop)
	h.SetCurtain(e, 4, 3)

	if got, _ := w.Components.Transform.Get(e); got.Transform.Position != tf.Position {
		t.Fatalf("transform = %v", got.Transform.Position)
	}
	if got, _ := w.Components.Parent.Get(e); got.Parent != 99 {
		t.Fatalf("parent = %d", got.Parent)
	}
	if !w.Components.Active.Has(e) {
		t.Fatal("active tag missing")
	}
	if got, _ := w.Components.Curtain.Get(e); got.Door != 4 || got.Index != 3 {
		t.Fatalf("curtain = %+v", got)
	}

	h.SetActive(e, false)
	if w.Components.Active.Has(e) {
		t.Fatal("active tag survived deactivation")
	}

	h.Destroy(e)
	if w.Components.Voxel.Has(e) {
		t.Fatal("voxel component survived destroy")
	}
}
