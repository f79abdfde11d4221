package shooter

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/ecs"
)

// EnemySpawnSystem advances the spawn timer by the frame's real elapsed time and,
// when it finishes, places one enemy at a uniformly random angle on a circle around
// the origin.
type EnemySpawnSystem struct {
	Timer ecs.Singleton[SpawnTimer]

	Radius      float64
	EnemySpeed  float64
	EnemySprite Sprite
	Rand        *rand.Rand
}

func (s *EnemySpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Timer.Get().Advance(frame.RealDelta) {
		return
	}

	theta := s.Rand.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(theta)

	frame.Commands.Spawn(
		Pose{Position: mgl64.Vec2{s.Radius * cos, s.Radius * sin}},
		Enemy{Speed: s.EnemySpeed},
		s.EnemySprite,
	)
}
