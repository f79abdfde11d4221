package shooter

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestMovementClampsAtRightEdge(t *testing.T) {
	w, input := newTestWorld(t, nil)
	input.keys = Keys(KeyMoveRight)

	playerPose(t, w).Position = mgl64.Vec2{595, 0}
	step(t, w, 1)

	pose := playerPose(t, w)
	assert.Equal(t, mgl64.Vec2{600, 0}, pose.Position)
}

func TestMovementSingleStepInsideArena(t *testing.T) {
	w, input := newTestWorld(t, nil)
	input.keys = Keys(KeyMoveRight)

	playerPose(t, w).Position = mgl64.Vec2{590, 0}
	step(t, w, 1)

	pose := playerPose(t, w)
	assert.InDelta(t, 590+500.0/60, pose.Position.X(), 1e-9)
	assert.Equal(t, 0.0, pose.Position.Y())

	step(t, w, 1)
	assert.Equal(t, 600.0, playerPose(t, w).Position.X())
}

func TestMovementStaysInBounds(t *testing.T) {
	w, input := newTestWorld(t, nil)
	rng := rand.New(rand.NewPCG(7, 11))
	extents := mgl64.Vec2{600, 320}

	for tick := 0; tick < 3000; tick++ {
		if tick%40 == 0 {
			input.keys = KeySet(rng.UintN(1 << keyCount))
		}
		if tick >= 2500 {
			input.keys = Keys(AllKeys()...)
		}
		step(t, w, 1)

		pos := playerPose(t, w).Position
		if outside(pos, extents) {
			t.Fatalf("tick %d: player at %+v left the arena (keys %s)", tick, pos, input.keys)
		}
	}
}

func TestMovementDiagonalIsFaster(t *testing.T) {
	tests := []struct {
		name string
		keys KeySet
		want float64
	}{
		{"up", Keys(KeyMoveUp), 500.0 / 60},
		{"left", Keys(KeyMoveLeft), 500.0 / 60},
		{"up-right", Keys(KeyMoveUp, KeyMoveRight), 500.0 / 60 * math.Sqrt2},
		{"down-left", Keys(KeyMoveDown, KeyMoveLeft), 500.0 / 60 * math.Sqrt2},
		{"up-down cancels", Keys(KeyMoveUp, KeyMoveDown), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, input := newTestWorld(t, nil)
			input.keys = tt.keys
			step(t, w, 1)

			assert.InDelta(t, tt.want, playerPose(t, w).Position.Len(), 1e-9)
		})
	}
}

func TestMovementRotationComposes(t *testing.T) {
	w, input := newTestWorld(t, nil)

	input.keys = Keys(KeyRotateLeft)
	step(t, w, 15)
	pose := playerPose(t, w)
	assert.InDelta(t, math.Pi/2, pose.Angle(), 1e-9)
	assert.InDelta(t, -1, pose.Heading().X(), 1e-9)
	assert.InDelta(t, 0, pose.Heading().Y(), 1e-9)

	input.keys = Keys(KeyRotateLeft, KeyRotateRight)
	step(t, w, 10)
	assert.InDelta(t, math.Pi/2, playerPose(t, w).Angle(), 1e-9)

	input.keys = Keys(KeyRotateRight)
	step(t, w, 30)
	assert.InDelta(t, -math.Pi/2, playerPose(t, w).Angle(), 1e-9)

	// a full turn wraps instead of growing without bound
	step(t, w, 60)
	assert.InDelta(t, -math.Pi/2, playerPose(t, w).Angle(), 1e-9)
}
