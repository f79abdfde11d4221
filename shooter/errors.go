package shooter

import (
	"errors"
	"fmt"
)

// ErrPlayerNotUnique is returned by a tick when the world does not hold exactly one player.
var ErrPlayerNotUnique = errors.New("shooter: world must contain exactly one player")

func playerError(err error) error {
	return fmt.Errorf("%w: %w", ErrPlayerNotUnique, err)
}
