package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityTrigger   = 10  // Player room detection, emits streaming requests
	PriorityLifecycle = 20  // Queue drain, build stepping, eviction
	PriorityDoor      = 30  // Curtain transitions, after builds settle
	PriorityAudio     = 800 // Cue playback, after game logic
	PriorityRender    = 900 // Frontend snapshot, last
)
