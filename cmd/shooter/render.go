package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shmup/ecs"
	"github.com/plus3/shmup/shooter"
)

var background = color.RGBA{230, 230, 225, 255}

// Screen is the render target of the current Draw call.
type Screen struct {
	Image *ebiten.Image
}

// RenderSystem draws every sprite as a rectangle rotated with its pose. The world
// origin is the centre of the screen and +Y points up.
type RenderSystem struct {
	Screen  ecs.Singleton[Screen]
	Bullets ecs.Query[struct {
		*shooter.Pose
		*shooter.Sprite
		*shooter.Bullet
	}]
	Enemies ecs.Query[struct {
		*shooter.Pose
		*shooter.Sprite
		*shooter.Enemy
	}]
	Players ecs.Query[struct {
		*shooter.Pose
		*shooter.Sprite
		*shooter.Player
	}]

	pixel *ebiten.Image
	op    ebiten.DrawImageOptions
}

func newRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel}
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	if screen == nil {
		return
	}
	screen.Fill(background)

	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2

	for b := range s.Bullets.Values() {
		s.draw(screen, cx, cy, b.Pose, b.Sprite)
	}
	for e := range s.Enemies.Values() {
		s.draw(screen, cx, cy, e.Pose, e.Sprite)
	}
	for p := range s.Players.Values() {
		s.draw(screen, cx, cy, p.Pose, p.Sprite)
	}
}

func (s *RenderSystem) draw(screen *ebiten.Image, cx, cy float64, pose *shooter.Pose, sprite *shooter.Sprite) {
	s.op.GeoM.Reset()
	s.op.ColorScale.Reset()

	s.op.GeoM.Scale(sprite.Size.X(), sprite.Size.Y())
	s.op.GeoM.Translate(-sprite.Size.X()/2, -sprite.Size.Y()/2)
	// screen Y points down, so counter-clockwise world rotation is negative here
	s.op.GeoM.Rotate(-pose.Angle())
	s.op.GeoM.Translate(cx+pose.Position.X(), cy-pose.Position.Y())
	s.op.ColorScale.ScaleWithColor(sprite.Color)

	screen.DrawImage(s.pixel, &s.op)
}
