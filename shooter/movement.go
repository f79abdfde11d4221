package shooter

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/ecs"
)

// MovementSystem turns and moves the player from the held keys and keeps it inside the arena.
//
// Directional keys add unit vectors without normalizing the sum, so diagonal movement
// is √2 times faster than straight movement.
type MovementSystem struct {
	Players ecs.Query[struct {
		*Pose
		*Player
	}]
	Input ecs.Singleton[InputState]
	Arena ecs.Singleton[Arena]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	_, player, err := s.Players.Single()
	if err != nil {
		frame.Fail(playerError(err))
		return
	}

	held := s.Input.Get().Held
	dt := frame.DeltaTime

	var rotationFactor float64
	if held.IsHeld(KeyRotateLeft) {
		rotationFactor += 1
	}
	if held.IsHeld(KeyRotateRight) {
		rotationFactor -= 1
	}

	var axis mgl64.Vec2
	if held.IsHeld(KeyMoveUp) {
		axis = axis.Add(mgl64.Vec2{0, 1})
	}
	if held.IsHeld(KeyMoveDown) {
		axis = axis.Add(mgl64.Vec2{0, -1})
	}
	if held.IsHeld(KeyMoveLeft) {
		axis = axis.Add(mgl64.Vec2{-1, 0})
	}
	if held.IsHeld(KeyMoveRight) {
		axis = axis.Add(mgl64.Vec2{1, 0})
	}

	pose := player.Pose
	pose.Turn(rotationFactor * player.Player.RotationSpeed * dt)
	pose.Position = clampTo(
		pose.Position.Add(axis.Mul(player.Player.LinearSpeed*dt)),
		s.Arena.Get().HalfExtents,
	)
}
