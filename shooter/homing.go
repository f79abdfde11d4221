package shooter

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/ecs"
)

// EnemyHomingSystem moves every enemy toward the player's current position.
// An enemy closer than one step lands on the player instead of overshooting, and an
// enemy already on the player stays put. Enemies are never clamped or removed.
type EnemyHomingSystem struct {
	Players ecs.Query[struct {
		*Pose
		*Player
	}]
	Enemies ecs.Query[struct {
		*Pose
		*Enemy
	}]
}

func (s *EnemyHomingSystem) Execute(frame *ecs.UpdateFrame) {
	_, player, err := s.Players.Single()
	if err != nil {
		frame.Fail(playerError(err))
		return
	}
	target := player.Pose.Position

	for enemy := range s.Enemies.Values() {
		enemy.Pose.Position = homeToward(enemy.Pose.Position, target, enemy.Enemy.Speed*frame.DeltaTime)
	}
}

// homeToward moves from toward target by at most step. The zero-length case is
// handled before dividing by the distance.
func homeToward(from, target mgl64.Vec2, step float64) mgl64.Vec2 {
	offset := target.Sub(from)
	dist := offset.Len()
	if dist == 0 {
		return from
	}
	if step >= dist {
		return target
	}
	return from.Add(offset.Mul(step / dist))
}
