package system

import (
	"sync/atomic"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/engine"
	"github.com/lixenwraith/corridor/event"
	"github.com/lixenwraith/corridor/parameter"
)

// CuePlayer is the playback surface AudioSystem drives
// Implemented by audio.Manager; faked in tests
type CuePlayer interface {
	Play(st core.SoundType)
}

// AudioSystem routes sound requests to the cue player
type AudioSystem struct {
	world  *engine.World
	player CuePlayer

	statPlayed *atomic.Int64
}

func NewAudioSystem(world *engine.World, player CuePlayer) *AudioSystem {
	return &AudioSystem{
		world:      world,
		player:     player,
		statPlayed: world.Resources.Status.Ints.Get("audio.played"),
	}
}

// Name returns the system's name
func (s *AudioSystem) Name() string {
	return "audio"
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundRequest}
}

// HandleEvent plays requested cues
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if s.player == nil {
		return
	}
	if st, ok := event.SoundOf(ev); ok {
		s.player.Play(st)
		s.statPlayed.Add(1)
	}
}

// Update is a no-op; all work happens in event dispatch
func (s *AudioSystem) Update() {}
