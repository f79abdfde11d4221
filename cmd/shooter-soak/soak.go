package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/shmup/config"
	"github.com/plus3/shmup/shooter"
	"go.uber.org/zap"
)

// inputPeriod is how many ticks a random key combination stays held.
const inputPeriod = 30

// randomInput holds a random set of keys that changes every inputPeriod ticks.
type randomInput struct {
	rng  *rand.Rand
	held shooter.KeySet
}

func (r *randomInput) IsHeld(key shooter.Key) bool { return r.held.IsHeld(key) }

func (r *randomInput) next() {
	r.held = 0
	for _, key := range shooter.AllKeys() {
		if r.rng.IntN(3) == 0 {
			r.held = r.held.With(key)
		}
	}
}

type WorldResult struct {
	Seed       uint64
	Ticks      uint64
	TickTime   Stats
	Final      shooter.Counts
	MaxBullets int
	MaxEnemies int
	Lifecycle  shooter.Lifecycle
}

// soak steps one world until ticks have run (when positive) or ctx is done.
func soak(ctx context.Context, cfg *config.Config, ticks int, realDelta time.Duration, log *zap.Logger) (WorldResult, error) {
	input := &randomInput{rng: rand.New(rand.NewPCG(cfg.Simulation.Seed, 0))}

	world, err := shooter.NewWorld(cfg, input, shooter.WithLogger(log))
	if err != nil {
		return WorldResult{}, err
	}

	result := WorldResult{Seed: world.Seed()}
	if ticks > 0 {
		result.TickTime.Samples = make([]time.Duration, 0, ticks)
	}

	for tick := 0; ticks <= 0 || tick < ticks; tick++ {
		if ctx.Err() != nil {
			break
		}
		if tick%inputPeriod == 0 {
			input.next()
		}

		start := time.Now()
		err := world.Step(realDelta)
		result.TickTime.Samples = append(result.TickTime.Samples, time.Since(start))
		if err != nil {
			return result, err
		}

		counts := world.Counts()
		result.MaxBullets = max(result.MaxBullets, counts.Bullets)
		result.MaxEnemies = max(result.MaxEnemies, counts.Enemies)
	}

	result.Ticks = world.Tick()
	result.Final = world.Counts()
	result.Lifecycle = world.Lifecycle()
	result.TickTime.Finalize()

	log.Debug("world finished",
		zap.Uint64("ticks", result.Ticks),
		zap.Int("bullets", result.Final.Bullets),
		zap.Int("enemies", result.Final.Enemies),
	)
	return result, nil
}
