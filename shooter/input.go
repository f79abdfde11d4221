package shooter

import (
	"strings"

	"github.com/plus3/shmup/ecs"
)

// Key is a logical control of the ship.
type Key uint8

const (
	KeyRotateLeft Key = iota
	KeyRotateRight
	KeyMoveUp
	KeyMoveDown
	KeyMoveLeft
	KeyMoveRight

	keyCount
)

var keyNames = [keyCount]string{
	KeyRotateLeft:  "rotate-left",
	KeyRotateRight: "rotate-right",
	KeyMoveUp:      "move-up",
	KeyMoveDown:    "move-down",
	KeyMoveLeft:    "move-left",
	KeyMoveRight:   "move-right",
}

func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// AllKeys lists every logical key.
func AllKeys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input is the host's view of the keyboard.
type Input interface {
	IsHeld(key Key) bool
}

// KeySet is a set of held keys. It implements Input, which makes it usable for
// scripted and test input.
type KeySet uint8

// Keys builds a KeySet from the given keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k Key) KeySet { return s | 1<<k }

func (s KeySet) Without(k Key) KeySet { return s &^ (1 << k) }

func (s KeySet) IsHeld(k Key) bool { return k < keyCount && s&(1<<k) != 0 }

func (s KeySet) String() string {
	var names []string
	for _, k := range AllKeys() {
		if s.IsHeld(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Snapshot reads every key of in once.
func Snapshot(in Input) KeySet {
	var s KeySet
	for _, k := range AllKeys() {
		if in.IsHeld(k) {
			s = s.With(k)
		}
	}
	return s
}

// InputSystem copies the host input into the InputState singleton at the start
// of a tick, so every later system sees the same keys.
type InputSystem struct {
	State ecs.Singleton[InputState]

	Source Input
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if s.Source == nil {
		state.Held = 0
		return
	}
	state.Held = Snapshot(s.Source)
}
