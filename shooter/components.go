package shooter

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose places an entity in the arena. Rotation turns around Z; the zero
// quaternion is treated as the identity, so an unrotated pose heads +Y.
type Pose struct {
	Position mgl64.Vec2
	Rotation mgl64.Quat
}

// Orientation returns Rotation, or the identity for the zero value.
func (p Pose) Orientation() mgl64.Quat {
	if p.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return p.Rotation
}

// Heading is the unit vector the pose faces.
func (p Pose) Heading() mgl64.Vec2 {
	return p.Orientation().Rotate(Up).Vec2()
}

// Angle is the counter-clockwise rotation from +Y in radians, in (-π, π].
func (p Pose) Angle() float64 {
	q := p.Orientation()
	return wrapAngle(2 * math.Atan2(q.V.Z(), q.W))
}

// Turn composes a counter-clockwise rotation of angle radians onto the pose.
func (p *Pose) Turn(angle float64) {
	if angle == 0 {
		return
	}
	p.Rotation = p.Orientation().Mul(mgl64.QuatRotate(angle, zAxis)).Normalize()
}

type Player struct {
	LinearSpeed   float64 // units per second
	RotationSpeed float64 // radians per second
}

// Bullet travels along Direction forever; Direction is fixed when the bullet is fired.
type Bullet struct {
	Speed     float64
	Direction mgl64.Vec2
}

type Enemy struct {
	Speed float64
}

// Sprite carries the visual attributes a renderer needs. It is never read by the simulation.
type Sprite struct {
	Color color.RGBA
	Size  mgl64.Vec2
}

// GameState is the simulation context shared by every system of a world.
type GameState struct {
	Score int
	Tick  uint64
}

// Arena holds the half extents of the playing field centered on the origin.
type Arena struct {
	HalfExtents mgl64.Vec2
}

// SpawnTimer is a repeating timer driven by real elapsed time.
type SpawnTimer struct {
	Period  time.Duration
	Elapsed time.Duration
	Fired   uint64
}

// Advance adds d to the timer and reports whether the timer finished on this call.
// A finished timer restarts from zero, dropping any excess, so it finishes at most
// once per call however large d is.
func (t *SpawnTimer) Advance(d time.Duration) bool {
	t.Elapsed += d
	if t.Elapsed < t.Period {
		return false
	}
	t.Elapsed = 0
	t.Fired++
	return true
}

// Remaining is the time left until the timer finishes.
func (t *SpawnTimer) Remaining() time.Duration {
	return t.Period - t.Elapsed
}

// InputState is the per-tick snapshot of held logical keys.
type InputState struct {
	Held KeySet
}
