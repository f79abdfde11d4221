package shooter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// Up is the heading of an unrotated pose. +X is right, +Y is up.
	Up = mgl64.Vec3{0, 1, 0}

	// rotations happen in the arena plane, around Z
	zAxis = mgl64.Vec3{0, 0, 1}
)

// clampTo limits each component of v to [-extents, +extents].
func clampTo(v, extents mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(v.X(), -extents.X(), extents.X()),
		mgl64.Clamp(v.Y(), -extents.Y(), extents.Y()),
	}
}

// outside reports whether any component of v lies beyond [-extents, +extents].
func outside(v, extents mgl64.Vec2) bool {
	return v.X() > extents.X() || v.X() < -extents.X() || v.Y() > extents.Y() || v.Y() < -extents.Y()
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
