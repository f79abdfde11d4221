package shooter

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/config"
	"github.com/plus3/shmup/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func playerID(t *testing.T, w *World) ecs.EntityId {
	t.Helper()
	view := ecs.NewView[struct {
		ecs.EntityId
		*Player
	}](w.Storage())
	for player := range view.Values() {
		return player.EntityId
	}
	t.Fatal("no player in world")
	return 0
}

func TestNewWorldSetup(t *testing.T) {
	w, _ := newTestWorld(t, nil)

	assert.Equal(t, Counts{Players: 1}, w.Counts())
	assert.Equal(t, 0, w.Score())
	assert.Equal(t, uint64(0), w.Tick())
	assert.Equal(t, uint64(42), w.Seed())

	pose, err := w.Player()
	require.NoError(t, err)
	assert.Equal(t, Pose{}, pose)

	step(t, w, 5)
	assert.Equal(t, uint64(5), w.Tick())
	assert.Equal(t, 0, w.Score(), "score never changes")
}

func TestDefaultWorldHasSeedBullet(t *testing.T) {
	w, err := NewWorld(nil, &heldKeys{})
	require.NoError(t, err)

	counts := w.Counts()
	assert.Equal(t, 1, counts.Players)
	assert.Equal(t, 1, counts.Bullets)
	assert.Equal(t, 0, counts.Enemies)

	seeded := bullets(w)[0]
	assert.Equal(t, mgl64.Vec2{}, seeded.position)
	assert.Equal(t, mgl64.Vec2{0, 1000}, seeded.bullet.Direction.Mul(seeded.bullet.Speed))
	assert.NotZero(t, w.Seed(), "a zero seed is replaced by a random one")
}

func TestMissingPlayerFailsTick(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	require.True(t, w.Storage().Delete(playerID(t, w)))

	err := w.Step(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayerNotUnique)
	assert.ErrorIs(t, err, ecs.ErrNoMatch)
	assert.Equal(t, uint64(0), w.Tick())

	_, err = w.Player()
	assert.ErrorIs(t, err, ErrPlayerNotUnique)
}

func TestDuplicatePlayerFailsTickWithoutSideEffects(t *testing.T) {
	w, _ := newTestWorld(t, func(cfg *config.Config) {
		cfg.Simulation.SeedBullet = true
	})
	step(t, w, 3)
	before := bullets(w)

	w.Storage().Spawn(Pose{}, Player{LinearSpeed: 1}, PlayerSprite)

	err := w.Step(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayerNotUnique)
	assert.ErrorIs(t, err, ecs.ErrMultipleMatches)
	assert.Equal(t, before, bullets(w))
	assert.Equal(t, uint64(3), w.Tick())

	stats := w.Scheduler().GetStats()
	assert.Equal(t, int64(1), stats.Failures)
}

func TestWorldLogsCreation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	newTestWorld(t, nil, WithLogger(zap.New(core)))

	entries := logs.FilterMessage("world created").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(42), fields["seed"])
	assert.Equal(t, false, fields["enemies"])
}

func TestWorldLogsLifecycleAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w, _ := newTestWorld(t, func(cfg *config.Config) {
		cfg.Simulation.Enemies = true
	}, WithLogger(zap.New(core)))

	require.NoError(t, w.Step(500 * time.Millisecond))
	assert.Equal(t, 1, logs.FilterMessage("entity spawned").FilterField(zap.Stringer("kind", KindEnemy)).Len())
	assert.Zero(t, logs.FilterMessage("entity spawned").FilterField(zap.Stringer("kind", KindBullet)).Len(),
		"bullets are too frequent to log individually")
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(func(cfg *config.Config) {
		cfg.Simulation.TickRate = 0
	})

	w, err := NewWorld(cfg, &heldKeys{})
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

type recordingObserver struct {
	spawned, deleted int
}

func (r *recordingObserver) EntitySpawned(ecs.EntityId) { r.spawned++ }
func (r *recordingObserver) EntityDeleted(ecs.EntityId) { r.deleted++ }

func TestWithObserverSeesAllEntities(t *testing.T) {
	rec := &recordingObserver{}
	w, input := newTestWorld(t, nil, WithObserver(rec))
	input.keys = Keys(KeyRotateLeft)

	step(t, w, 120)

	lifecycle := w.Lifecycle()
	var spawned, despawned uint64
	for kind := range lifecycle.Spawned {
		spawned += lifecycle.Spawned[kind]
		despawned += lifecycle.Despawned[kind]
	}
	assert.Equal(t, int(spawned), rec.spawned)
	assert.Equal(t, int(despawned), rec.deleted)
	assert.Equal(t, uint64(w.Counts().Bullets), lifecycle.Alive(KindBullet))
}
