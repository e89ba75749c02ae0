package parameter

import "time"

// Door animation defaults
const (
	// DoorAnimationDuration is the per-element scale/rotation transition time
	DoorAnimationDuration = 900 * time.Millisecond

	// DoorStaggerDelay is the start offset between consecutive curtain elements
	DoorStaggerDelay = 50 * time.Millisecond

	// DoorGuardMargin pads the busy window so stragglers settle before
	// the final snap
	DoorGuardMargin = 100 * time.Millisecond

	// DoorMaxRandomYaw bounds the randomized per-element rotation target, radians
	DoorMaxRandomYaw = 1.2
)
