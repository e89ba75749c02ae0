// Package pool recycles spawned entities per prefab to bound allocation
// churn while rooms stream in and out.
//
// The pool is tick-owned: all mutation happens on the simulation tick, so
// no locking is used or needed. There is no hard-exhaustion failure mode;
// a miss instantiates fresh and only costs time.
package pool

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/status"
)

// PrefabID keys one registered prefab's free stack
type PrefabID int32

// NoPrefab marks an unset or invalid prefab reference
const NoPrefab PrefabID = -1

var (
	ErrUnknownPrefab = errors.New("pool: unknown prefab id")
	ErrForeignEntity = errors.New("pool: entity was not spawned by this pool")
)

// Host is the scene surface the pool drives. Implemented by the engine;
// faked in tests.
type Host interface {
	Place(e core.Entity, t core.Transform)
	SetParent(e core.Entity, parent core.Entity)
	SetActive(e core.Entity, active bool)
	Destroy(e core.Entity)
}

// PrefabRef identifies a prefab and knows how to instantiate one inactive
// instance of it
type PrefabRef interface {
	Name() string
	Instantiate(host Host) (core.Entity, error)
}

// SpawnHook is an optional capability of a PrefabRef, notified around
// activation. BeforeSpawn runs while the entity is still inactive.
type SpawnHook interface {
	BeforeSpawn(host Host, e core.Entity)
	AfterSpawn(host Host, e core.Entity)
}

// DespawnHook is an optional capability of a PrefabRef, notified around
// deactivation. BeforeDespawn runs while the entity is still active.
type DespawnHook interface {
	BeforeDespawn(host Host, e core.Entity)
	AfterDespawn(host Host, e core.Entity)
}

type entry struct {
	ref     PrefabRef
	id      PrefabID
	max     int
	free    []core.Entity // LIFO: push/pop at the tail, trim at the head
	spawn   SpawnHook     // nil when the ref lacks the capability
	despawn DespawnHook
}

// Pool recycles entities per prefab with capacity bounds and lifecycle hooks
type Pool struct {
	host    Host
	holding core.Entity // Parking parent for released entities
	log     *zap.Logger

	entries []*entry
	byName  map[string]PrefabID
	owner   map[core.Entity]PrefabID

	statHits   *atomic.Int64
	statMisses *atomic.Int64
	statTrims  *atomic.Int64
}

// New creates a pool parenting released entities under holding
func New(host Host, holding core.Entity, log *zap.Logger, stats *status.Registry) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		host:       host,
		holding:    holding,
		log:        log,
		byName:     make(map[string]PrefabID),
		owner:      make(map[core.Entity]PrefabID),
		statHits:   stats.Ints.Get("pool.hits"),
		statMisses: stats.Ints.Get("pool.misses"),
		statTrims:  stats.Ints.Get("pool.trims"),
	}
}

// RegisterPrefab registers ref and returns its id. Idempotent: the same
// ref name always yields the same id; capacity settings from the first
// registration win.
func (p *Pool) RegisterPrefab(ref PrefabRef, maxPoolSize, prewarm int) PrefabID {
	if id, ok := p.byName[ref.Name()]; ok {
		return id
	}

	id := PrefabID(len(p.entries))
	e := &entry{
		ref:  ref,
		id:   id,
		max:  maxPoolSize,
		free: make([]core.Entity, 0, maxPoolSize),
	}
	e.spawn, _ = ref.(SpawnHook)
	e.despawn, _ = ref.(DespawnHook)

	p.entries = append(p.entries, e)
	p.byName[ref.Name()] = id

	for i := 0; i < prewarm && i < maxPoolSize; i++ {
		ent, err := ref.Instantiate(p.host)
		if err != nil {
			p.log.Warn("prefab prewarm failed",
				zap.String("prefab", ref.Name()), zap.Error(err))
			break
		}
		p.park(e, ent)
	}

	return id
}

// Get pops a free instance of id (LIFO, for cache locality) or
// instantiates fresh, places it, and runs the spawn hooks around
// activation
func (p *Pool) Get(id PrefabID, t core.Transform, parent core.Entity) (core.Entity, error) {
	if int(id) < 0 || int(id) >= len(p.entries) {
		return core.NoEntity, fmt.Errorf("%w: %d", ErrUnknownPrefab, id)
	}
	e := p.entries[id]

	var ent core.Entity
	if n := len(e.free); n > 0 {
		ent = e.free[n-1]
		e.free = e.free[:n-1]
		p.statHits.Add(1)
	} else {
		var err error
		ent, err = e.ref.Instantiate(p.host)
		if err != nil {
			return core.NoEntity, fmt.Errorf("instantiate %q: %w", e.ref.Name(), err)
		}
		p.statMisses.Add(1)
	}

	p.owner[ent] = id
	p.host.SetParent(ent, parent)
	p.host.Place(ent, t)

	if e.spawn != nil {
		e.spawn.BeforeSpawn(p.host, ent)
	}
	p.host.SetActive(ent, true)
	if e.spawn != nil {
		e.spawn.AfterSpawn(p.host, ent)
	}

	return ent, nil
}

// Release returns ent to its prefab's free stack, running the despawn
// hooks around deactivation. If the stack exceeds its cap the
// oldest-pushed excess is permanently destroyed (trim-on-return).
func (p *Pool) Release(ent core.Entity) error {
	id, ok := p.owner[ent]
	if !ok {
		return fmt.Errorf("%w: %d", ErrForeignEntity, ent)
	}
	e := p.entries[id]
	delete(p.owner, ent)

	if e.despawn != nil {
		e.despawn.BeforeDespawn(p.host, ent)
	}
	p.park(e, ent)
	if e.despawn != nil {
		e.despawn.AfterDespawn(p.host, ent)
	}

	for len(e.free) > e.max {
		oldest := e.free[0]
		e.free = e.free[1:]
		p.host.Destroy(oldest)
		p.statTrims.Add(1)
	}

	return nil
}

// park deactivates and stores ent on the entry's free stack
func (p *Pool) park(e *entry, ent core.Entity) {
	p.host.SetActive(ent, false)
	p.host.SetParent(ent, p.holding)
	e.free = append(e.free, ent)
}

// FreeCount returns the free-stack size for a prefab (testing, diagnostics)
func (p *Pool) FreeCount(id PrefabID) int {
	if int(id) < 0 || int(id) >= len(p.entries) {
		return 0
	}
	return len(p.entries[id].free)
}

// PrefabCount returns the number of registered prefabs
func (p *Pool) PrefabCount() int {
	return len(p.entries)
}
