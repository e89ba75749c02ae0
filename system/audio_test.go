package system

import (
	"testing"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
)

type recordingPlayer struct {
	played []core.SoundType
}

func (p *recordingPlayer) Play(st core.SoundType) {
	p.played = append(p.played, st)
}

func TestAudioSystemPlaysRequests(t *testing.T) {
	w := engine.NewWorld(engine.NewResource(nil, nil))
	player := &recordingPlayer{}
	s := NewAudioSystem(w, player)

	s.HandleEvent(event.GameEvent{
		Type:    event.EventSoundRequest,
		Payload: uint64(core.SoundDoorOpen),
	})
	s.HandleEvent(event.GameEvent{
		Type:    event.EventSoundRequest,
		Payload: uint64(core.SoundLocked),
	})

	if len(player.played) != 2 {
		t.Fatalf("played %d cues, want 2", len(player.played))
	}
	if player.played[0] != core.SoundDoorOpen || player.played[1] != core.SoundLocked {
		t.Fatalf("played %v in wrong order", player.played)
	}
}

func TestAudioSystemIgnoresForeignPayload(t *testing.T) {
	w := engine.NewWorld(engine.NewResource(nil, nil))
	player := &recordingPlayer{}
	s := NewAudioSystem(w, player)

	s.HandleEvent(event.GameEvent{Type: event.EventSoundRequest, Payload: "bad"})
	if len(player.played) != 0 {
		t.Fatal("foreign payload reached the player")
	}
}

func TestAudioSystemNilPlayer(t *testing.T) {
	w := engine.NewWorld(engine.NewResource(nil, nil))
	s := NewAudioSystem(w, nil)

	// Must not panic when running headless
	s.HandleEvent(event.GameEvent{
		Type:    event.EventSoundRequest,
		Payload: uint64(core.SoundDoorClose),
	})
}
