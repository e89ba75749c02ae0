package parameter

import "time"

// Lifecycle manager defaults
const (
	// MaxActiveRooms bounds simultaneously resident rooms
	MaxActiveRooms = 4

	// BuildWaitBudget is how long the drain loop waits for one room build
	// before abandoning the wait and moving on
	BuildWaitBudget = 5 * time.Second

	// BuildTimeBudget is the per-tick wall time a build task may consume
	// before suspending until the next tick
	BuildTimeBudget = 8 * time.Millisecond

	// UnloadDistance is the grid distance from the tracked reference
	// position beyond which a resident room is evicted immediately.
	// Zero disables the distance check.
	UnloadDistance = 64
)

// Pool defaults
const (
	// PoolMaxSize is the default free-stack cap per prefab
	PoolMaxSize = 512

	// PoolPrewarm is the default instance count created at registration
	PoolPrewarm = 64
)
