package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/corridor/event"
)

func TestProcessTickDispatchesThenUpdates(t *testing.T) {
	w := newTestWorld()
	var log []string

	sys := &orderSystem{
		name:  "lifecycle",
		log:   &log,
		types: []event.EventType{event.EventRequestNextRoom},
	}
	w.AddSystem(sys)

	cs := NewClockScheduler(w, NewPausableClock(), 50*time.Millisecond)
	cs.RegisterSystems()

	w.PushEvent(event.EventRequestNextRoom, uint64(0))
	cs.processTick()

	want := []string{"event:lifecycle", "update:lifecycle"}
	if len(log) != len(want) {
		t.Fatalf("tick produced %d calls, want %d: %v", len(log), len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, log[i], want[i])
		}
	}

	if w.Resources.Time.FrameNumber != 1 {
		t.Fatalf("frame = %d after one tick, want 1", w.Resources.Time.FrameNumber)
	}
	if w.Resources.Time.DeltaTime != 50*time.Millisecond {
		t.Fatalf("delta = %v", w.Resources.Time.DeltaTime)
	}

	cs.processTick()
	if w.Resources.Time.FrameNumber != 2 {
		t.Fatalf("frame = %d after two ticks, want 2", w.Resources.Time.FrameNumber)
	}
}

func TestProcessTickRespectsPause(t *testing.T) {
	w := newTestWorld()
	var log []string
	w.AddSystem(&orderSystem{name: "s", log: &log})

	clock := NewPausableClock()
	cs := NewClockScheduler(w, clock, 50*time.Millisecond)

	clock.Pause()
	cs.processTick()
	if len(log) != 0 {
		t.Fatal("systems ran while paused")
	}

	clock.Resume()
	cs.processTick()
	if len(log) != 1 {
		t.Fatalf("systems ran %d times after resume, want 1", len(log))
	}
}

func TestSchedulerLoopTicks(t *testing.T) {
	w := newTestWorld()
	cs := NewClockScheduler(w, NewPausableClock(), 2*time.Millisecond)

	cs.Start()
	defer cs.Stop()

	deadline := time.Now().Add(time.Second)
	for cs.TickCount() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d ticks within a second", cs.TickCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestExecuteResetDiscardsStaleEvents(t *testing.T) {
	w := newTestWorld()
	cs := NewClockScheduler(w, NewPausableClock(), 50*time.Millisecond)

	w.PushEvent(event.EventRoomBuilt, uint64(1))
	w.PushEvent(event.EventRoomEntered, uint64(1))
	cs.tickCount.Store(99)

	cs.executeReset()

	events := w.Resources.Event.Queue.Drain(nil)
	if len(events) != 1 || events[0].Type != event.EventSessionReset {
		t.Fatalf("queue after reset = %v, want single session reset", events)
	}
	if cs.TickCount() != 0 {
		t.Fatalf("tick count = %d after reset, want 0", cs.TickCount())
	}
}

func TestPausableClockFreezes(t *testing.T) {
	clock := NewPausableClock()

	clock.Pause()
	frozen := clock.Now()
	time.Sleep(5 * time.Millisecond)
	if !clock.Now().Equal(frozen) {
		t.Fatal("clock advanced while paused")
	}
	if clock.TotalPauseDuration() <= 0 {
		t.Fatal("pause duration not tracked")
	}

	clock.Resume()
	time.Sleep(5 * time.Millisecond)
	if !clock.Now().After(frozen) {
		t.Fatal("clock did not advance after resume")
	}
}
