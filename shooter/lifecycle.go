package shooter

import (
	"reflect"

	"github.com/plus3/shmup/ecs"
	"go.uber.org/zap"
)

// Kind classifies simulated entities.
type Kind uint8

const (
	KindOther Kind = iota
	KindPlayer
	KindBullet
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "enemy"
	default:
		return "other"
	}
}

var (
	playerType = reflect.TypeFor[Player]()
	bulletType = reflect.TypeFor[Bullet]()
	enemyType  = reflect.TypeFor[Enemy]()
)

// KindOf reports the kind of a live entity.
func KindOf(storage *ecs.Storage, id ecs.EntityId) Kind {
	switch {
	case storage.HasComponent(id, playerType):
		return KindPlayer
	case storage.HasComponent(id, bulletType):
		return KindBullet
	case storage.HasComponent(id, enemyType):
		return KindEnemy
	default:
		return KindOther
	}
}

// Lifecycle holds running totals of entities created and destroyed per kind.
type Lifecycle struct {
	Spawned   [4]uint64
	Despawned [4]uint64
}

// Alive returns spawned minus despawned for kind.
func (l Lifecycle) Alive(kind Kind) uint64 {
	return l.Spawned[kind] - l.Despawned[kind]
}

// LifecycleCounter is an ecs.Observer that keeps a Lifecycle and reports creations
// and removals to a logger at debug level.
type LifecycleCounter struct {
	storage *ecs.Storage
	log     *zap.Logger
	totals  Lifecycle
}

func newLifecycleCounter(storage *ecs.Storage, log *zap.Logger) *LifecycleCounter {
	return &LifecycleCounter{storage: storage, log: log}
}

func (c *LifecycleCounter) EntitySpawned(id ecs.EntityId) {
	kind := KindOf(c.storage, id)
	c.totals.Spawned[kind]++
	if kind != KindBullet && c.log.Core().Enabled(zap.DebugLevel) {
		c.log.Debug("entity spawned", zap.Stringer("kind", kind), zap.Uint64("id", uint64(id)))
	}
}

func (c *LifecycleCounter) EntityDeleted(id ecs.EntityId) {
	kind := KindOf(c.storage, id)
	c.totals.Despawned[kind]++
	if kind != KindBullet && c.log.Core().Enabled(zap.DebugLevel) {
		c.log.Debug("entity despawned", zap.Stringer("kind", kind), zap.Uint64("id", uint64(id)))
	}
}

// Totals returns a copy of the running totals.
func (c *LifecycleCounter) Totals() Lifecycle {
	return c.totals
}
