package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shmup/shooter"
	"github.com/stretchr/testify/assert"
)

func TestEveryKeyIsBound(t *testing.T) {
	seen := map[ebiten.Key]shooter.Key{}
	for _, key := range shooter.AllKeys() {
		bound, ok := keyBindings[key]
		if !ok {
			t.Errorf("%s has no binding", key)
			continue
		}
		if other, dup := seen[bound]; dup {
			t.Errorf("%s and %s share %s", key, other, bound)
		}
		seen[bound] = key
	}
	assert.Len(t, keyBindings, len(shooter.AllKeys()))
}
