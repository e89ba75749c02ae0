package system

import (
	"testing"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/layout"
	"github.com/lixenwraith/corridor/room"
)

func triggerFixture(t *testing.T) (*TriggerSystem, *engine.World) {
	t.Helper()
	w := engine.NewWorld(engine.NewResource(nil, nil))

	// Two built rooms side by side
	for i := 0; i < 2; i++ {
		w.Resources.Rooms.AddRoom(&room.Instance{
			Plan: layout.RoomPlan{
				ID:     i,
				Origin: core.GridPoint{X: i * 10},
				Size:   core.GridPoint{X: 6, Y: 6},
				Height: 4,
			},
			EntryDoor: core.NoDoor,
			ExitDoor:  core.NoDoor,
			Built:     true,
		})
	}
	return NewTriggerSystem(w, nil), w
}

func TestTriggerIgnoresUnsetPlayer(t *testing.T) {
	s, w := triggerFixture(t)

	s.Update()
	if len(drainEvents(w)) != 0 {
		t.Fatal("events fired without a tracked position")
	}
}

func TestTriggerFiresOnRoomCrossing(t *testing.T) {
	s, w := triggerFixture(t)

	w.Resources.Player.Position = core.GridPoint{X: 2, Y: 2}
	w.Resources.Player.Set = true
	s.Update()

	events := drainEvents(w)
	got := eventTypes(events)
	for _, want := range []event.EventType{
		event.EventRoomEntered,
		event.EventRoomShouldOpenExit,
		event.EventRequestNextRoom,
	} {
		if got[want] != 1 {
			t.Fatalf("event %v fired %d times, want 1", want, got[want])
		}
	}

	for _, ev := range events {
		switch ev.Type {
		case event.EventRoomEntered:
			if index, _ := event.IndexOf(ev); index != 0 {
				t.Fatalf("entered plan %d, want 0", index)
			}
		case event.EventRequestNextRoom:
			if index, _ := event.IndexOf(ev); index != 1 {
				t.Fatalf("requested plan %d, want the next one", index)
			}
		}
	}

	// Staying inside the room fires nothing further
	w.Resources.Player.Position = core.GridPoint{X: 3, Y: 4}
	s.Update()
	if len(drainEvents(w)) != 0 {
		t.Fatal("movement within a room re-fired entry events")
	}
}

func TestTriggerFiresAgainOnNextRoom(t *testing.T) {
	s, w := triggerFixture(t)

	w.Resources.Player.Position = core.GridPoint{X: 2, Y: 2}
	w.Resources.Player.Set = true
	s.Update()
	drainEvents(w)

	w.Resources.Player.Position = core.GridPoint{X: 12, Y: 2}
	s.Update()

	got := eventTypes(drainEvents(w))
	if got[event.EventRoomEntered] != 1 {
		t.Fatal("crossing into the second room fired no entry")
	}
	if w.Resources.Player.Room == core.NoRoom {
		t.Fatal("player room not tracked")
	}
}

func TestTriggerIgnoresGaps(t *testing.T) {
	s, w := triggerFixture(t)

	w.Resources.Player.Position = core.GridPoint{X: 100, Y: 100}
	w.Resources.Player.Set = true
	s.Update()
	if len(drainEvents(w)) != 0 {
		t.Fatal("events fired outside any room")
	}
}
