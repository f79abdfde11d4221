package shooter

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/config"
	"github.com/plus3/shmup/ecs"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

// heldKeys is a mutable Input for driving a world tick by tick.
type heldKeys struct {
	keys KeySet
}

func (h *heldKeys) IsHeld(k Key) bool { return h.keys.IsHeld(k) }

func testConfig(mutate func(*config.Config)) *config.Config {
	cfg := config.Default()
	cfg.Simulation.Seed = 42
	cfg.Simulation.Enemies = false
	cfg.Simulation.SeedBullet = false
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func newTestWorld(t *testing.T, mutate func(*config.Config), opts ...Option) (*World, *heldKeys) {
	t.Helper()
	input := &heldKeys{}
	w, err := NewWorld(testConfig(mutate), input, opts...)
	require.NoError(t, err)
	return w, input
}

func step(t *testing.T, w *World, ticks int) {
	t.Helper()
	for range ticks {
		require.NoError(t, w.Step(frame))
	}
}

func playerPose(t *testing.T, w *World) *Pose {
	t.Helper()
	view := ecs.NewView[struct {
		*Pose
		*Player
	}](w.Storage())
	for player := range view.Values() {
		return player.Pose
	}
	t.Fatal("no player in world")
	return nil
}

type bulletSnapshot struct {
	id       ecs.EntityId
	position mgl64.Vec2
	bullet   Bullet
}

func bullets(w *World) []bulletSnapshot {
	view := ecs.NewView[struct {
		ecs.EntityId
		*Pose
		*Bullet
	}](w.Storage())

	var out []bulletSnapshot
	for b := range view.Values() {
		out = append(out, bulletSnapshot{id: b.EntityId, position: b.Pose.Position, bullet: *b.Bullet})
	}
	return out
}

func enemyPositions(w *World) []mgl64.Vec2 {
	view := ecs.NewView[struct {
		*Pose
		*Enemy
	}](w.Storage())

	var out []mgl64.Vec2
	for e := range view.Values() {
		out = append(out, e.Pose.Position)
	}
	return out
}
