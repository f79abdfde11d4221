package shooter

import "github.com/plus3/shmup/ecs"

// ShootingSystem fires one bullet per tick from the player's pose, then advances every
// bullet that existed when the tick started and removes the ones that left the arena.
//
// The bullet fired this tick is queued through Commands and is not part of the snapshot
// the advance pass walks, so it starts moving on the next tick. Removals are queued as
// well and applied after the tick, which keeps the snapshot valid while it is walked.
type ShootingSystem struct {
	Players ecs.Query[struct {
		*Pose
		*Player
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Pose
		*Bullet
	}]
	Arena ecs.Singleton[Arena]

	BulletSpeed  float64
	BulletSprite Sprite

	// Culled is the number of bullets removed by the last completed tick. It is
	// published through Commands, so a tick that fails leaves it untouched.
	Culled int
}

func (s *ShootingSystem) Execute(frame *ecs.UpdateFrame) {
	_, player, err := s.Players.Single()
	if err != nil {
		frame.Fail(playerError(err))
		return
	}

	pose, shot := newBullet(*player.Pose, s.BulletSpeed)
	frame.Commands.Spawn(pose, shot, s.BulletSprite)

	extents := s.Arena.Get().HalfExtents
	dt := frame.DeltaTime

	culled := 0
	for bullet := range s.Bullets.Values() {
		step := bullet.Bullet.Direction.Mul(bullet.Bullet.Speed * dt)
		bullet.Pose.Position = bullet.Pose.Position.Add(step)

		if outside(bullet.Pose.Position, extents) {
			frame.Commands.Delete(bullet.EntityId)
			culled++
		}
	}
	frame.Commands.Defer(func() { s.Culled = culled })
}

// newBullet returns the pose and bullet components of a shot fired from pose.
func newBullet(from Pose, speed float64) (Pose, Bullet) {
	return Pose{Position: from.Position, Rotation: from.Rotation}, Bullet{
		Speed:     speed,
		Direction: from.Heading(),
	}
}
