package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shmup/ecs/debugui"
	"github.com/plus3/shmup/shooter"
)

var keyBindings = map[shooter.Key]ebiten.Key{
	shooter.KeyRotateLeft:  ebiten.KeyQ,
	shooter.KeyRotateRight: ebiten.KeyE,
	shooter.KeyMoveUp:      ebiten.KeyArrowUp,
	shooter.KeyMoveDown:    ebiten.KeyArrowDown,
	shooter.KeyMoveLeft:    ebiten.KeyArrowLeft,
	shooter.KeyMoveRight:   ebiten.KeyArrowRight,
}

// keyboard reads logical keys from ebiten. While the debug overlay has keyboard
// focus no key counts as held.
type keyboard struct {
	imgui *debugui.ImguiInputState
}

func (k *keyboard) IsHeld(key shooter.Key) bool {
	if k.imgui != nil && k.imgui.WantCaptureKeyboard {
		return false
	}
	bound, ok := keyBindings[key]
	return ok && ebiten.IsKeyPressed(bound)
}
