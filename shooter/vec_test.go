package shooter

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPoseZeroValueHeadsUp(t *testing.T) {
	var pose Pose
	assert.Equal(t, mgl64.QuatIdent(), pose.Orientation())
	assert.Equal(t, mgl64.Vec2{0, 1}, pose.Heading())
	assert.Equal(t, 0.0, pose.Angle())

	pose.Turn(0)
	assert.Equal(t, mgl64.Quat{}, pose.Rotation, "a zero turn leaves the pose untouched")
}

func TestPoseTurn(t *testing.T) {
	tests := []struct {
		name    string
		turns   []float64
		angle   float64
		heading mgl64.Vec2
	}{
		{"quarter left", []float64{math.Pi / 2}, math.Pi / 2, mgl64.Vec2{-1, 0}},
		{"quarter right", []float64{-math.Pi / 2}, -math.Pi / 2, mgl64.Vec2{1, 0}},
		{"three eighths", []float64{math.Pi / 2, math.Pi / 4}, 3 * math.Pi / 4, mgl64.Vec2{-math.Sqrt2 / 2, -math.Sqrt2 / 2}},
		{"left then right", []float64{1, -1}, 0, mgl64.Vec2{0, 1}},
		{"full turn wraps", []float64{math.Pi, math.Pi, 0.5}, 0.5, mgl64.Vec2{-math.Sin(0.5), math.Cos(0.5)}},
		{"past half wraps negative", []float64{3 * math.Pi / 2}, -math.Pi / 2, mgl64.Vec2{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pose Pose
			for _, a := range tt.turns {
				pose.Turn(a)
			}

			assert.InDelta(t, tt.angle, pose.Angle(), 1e-9)
			assert.InDelta(t, tt.heading.X(), pose.Heading().X(), 1e-9)
			assert.InDelta(t, tt.heading.Y(), pose.Heading().Y(), 1e-9)
			assert.InDelta(t, 1, pose.Rotation.Len(), 1e-12)
		})
	}
}

func TestClampAndOutside(t *testing.T) {
	extents := mgl64.Vec2{600, 320}

	tests := []struct {
		in      mgl64.Vec2
		clamped mgl64.Vec2
		out     bool
	}{
		{mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, false},
		{mgl64.Vec2{600, -320}, mgl64.Vec2{600, -320}, false},
		{mgl64.Vec2{600.5, 0}, mgl64.Vec2{600, 0}, true},
		{mgl64.Vec2{-700, 400}, mgl64.Vec2{-600, 320}, true},
		{mgl64.Vec2{10, -320.01}, mgl64.Vec2{10, -320}, true},
	}

	for _, tt := range tests {
		if got := clampTo(tt.in, extents); got != tt.clamped {
			t.Errorf("clampTo(%v) = %v, want %v", tt.in, got, tt.clamped)
		}
		if got := outside(tt.in, extents); got != tt.out {
			t.Errorf("outside(%v) = %v, want %v", tt.in, got, tt.out)
		}
	}
}
