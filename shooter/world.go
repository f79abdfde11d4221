// Package shooter is the fixed-timestep simulation of a top-down arena shooter:
// a player ship driven by held keys, an automatic weapon firing one bullet per tick,
// and optionally enemies spawned on a ring that home toward the player.
//
// A World owns one ecs.Storage and runs its systems in a fixed order on every Step:
// input snapshot, movement, shooting, then enemy spawning and homing.
package shooter

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/shmup/config"
	"github.com/plus3/shmup/ecs"
	"go.uber.org/zap"
)

var (
	PlayerSprite = Sprite{Color: color.RGBA{64, 64, 191, 255}, Size: mgl64.Vec2{25, 25}}
	BulletSprite = Sprite{Color: color.RGBA{64, 64, 64, 255}, Size: mgl64.Vec2{5, 5}}
	EnemySprite  = Sprite{Color: color.RGBA{191, 64, 64, 255}, Size: mgl64.Vec2{20, 20}}
)

type worldOptions struct {
	log        *zap.Logger
	rng        *rand.Rand
	observers  []ecs.Observer
	components []func(*ecs.ComponentRegistry)
}

// Option customizes NewWorld.
type Option func(*worldOptions)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *worldOptions) { o.log = log }
}

// WithRand sets the random source used for enemy spawn angles. The default is a PCG
// source seeded from the configuration.
func WithRand(rng *rand.Rand) Option {
	return func(o *worldOptions) { o.rng = rng }
}

// WithObserver registers an extra storage observer, typically a renderer following
// entity creation and removal.
func WithObserver(observer ecs.Observer) Option {
	return func(o *worldOptions) { o.observers = append(o.observers, observer) }
}

// WithComponents lets a host register its own component types (debug widgets,
// render caches) in the world's registry.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(o *worldOptions) { o.components = append(o.components, register) }
}

// World is one running simulation.
type World struct {
	cfg       config.Config
	log       *zap.Logger
	seed      uint64
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	lifecycle *LifecycleCounter
	shooting  *ShootingSystem

	state   *ecs.Singleton[GameState]
	timer   *ecs.Singleton[SpawnTimer]
	players *ecs.View[struct {
		*Pose
		*Player
	}]
	bullets *ecs.View[struct{ *Bullet }]
	enemies *ecs.View[struct{ *Enemy }]
}

// NewWorld validates cfg, sets up the arena with its single player and registers the
// systems. A nil cfg uses config.Default.
func NewWorld(cfg *config.Config, input Input, opts ...Option) (*World, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	o := worldOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Pose](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Sprite](registry)
	for _, register := range o.components {
		register(registry)
	}

	storage := ecs.NewStorage(registry)
	w := &World{
		cfg:       *cfg,
		log:       o.log,
		seed:      seed,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		lifecycle: newLifecycleCounter(storage, o.log),
	}

	storage.Observe(w.lifecycle)
	for _, observer := range o.observers {
		storage.Observe(observer)
	}

	halfW, halfH := cfg.Simulation.HalfExtents()
	w.state = ecs.NewSingleton(storage, GameState{})
	w.timer = ecs.NewSingleton(storage, SpawnTimer{Period: cfg.Enemy.SpawnPeriod})
	ecs.NewSingleton(storage, Arena{HalfExtents: mgl64.Vec2{halfW, halfH}})
	ecs.NewSingleton(storage, InputState{})

	w.players = ecs.NewView[struct {
		*Pose
		*Player
	}](storage)
	w.bullets = ecs.NewView[struct{ *Bullet }](storage)
	w.enemies = ecs.NewView[struct{ *Enemy }](storage)

	w.setup()

	w.shooting = &ShootingSystem{
		BulletSpeed:  cfg.Bullet.Speed,
		BulletSprite: BulletSprite,
	}
	w.scheduler.Register(&InputSystem{Source: input})
	w.scheduler.Register(&MovementSystem{})
	w.scheduler.Register(w.shooting)
	if cfg.Simulation.Enemies {
		w.scheduler.Register(&EnemySpawnSystem{
			Radius:      cfg.Enemy.SpawnRadius,
			EnemySpeed:  cfg.Enemy.Speed,
			EnemySprite: EnemySprite,
			Rand:        o.rng,
		})
		w.scheduler.Register(&EnemyHomingSystem{})
	}

	w.log.Info("world created",
		zap.Uint64("seed", seed),
		zap.Bool("enemies", cfg.Simulation.Enemies),
		zap.Int("tick_rate", cfg.Simulation.TickRate),
		zap.Float64("half_width", halfW),
		zap.Float64("half_height", halfH),
	)

	return w, nil
}

// setup spawns the player at the origin and, if configured, the initial bullet.
func (w *World) setup() {
	w.storage.Spawn(
		Pose{},
		Player{
			LinearSpeed:   w.cfg.Player.Speed,
			RotationSpeed: w.cfg.Player.RotationSpeedRadians(),
		},
		PlayerSprite,
	)

	if w.cfg.Simulation.SeedBullet {
		pose, bullet := newBullet(Pose{}, w.cfg.Bullet.Speed)
		w.storage.Spawn(pose, bullet, BulletSprite)
	}
}

// Step runs one fixed simulation tick. realDelta is the wall-clock time the host
// measured since the previous frame; it only drives the enemy spawn timer.
func (w *World) Step(realDelta time.Duration) error {
	if err := w.scheduler.Once(w.cfg.Simulation.TimeStep(), realDelta); err != nil {
		w.shooting.Culled = 0
		w.log.Error("tick failed", zap.Uint64("tick", w.state.Get().Tick), zap.Error(err))
		return fmt.Errorf("tick %d: %w", w.state.Get().Tick, err)
	}

	state := w.state.Get()
	state.Tick++
	if w.shooting.Culled > 0 && w.log.Core().Enabled(zap.DebugLevel) {
		w.log.Debug("bullets culled", zap.Uint64("tick", state.Tick), zap.Int("count", w.shooting.Culled))
	}
	return nil
}

// Player returns the pose of the single player.
func (w *World) Player() (Pose, error) {
	var (
		pose  Pose
		count int
	)
	for player := range w.players.Values() {
		pose = *player.Pose
		count++
	}
	if count != 1 {
		return Pose{}, fmt.Errorf("%w: found %d", ErrPlayerNotUnique, count)
	}
	return pose, nil
}

// Counts is the number of live entities per kind.
type Counts struct {
	Players int
	Bullets int
	Enemies int
}

func (w *World) Counts() Counts {
	return Counts{
		Players: w.players.Count(),
		Bullets: w.bullets.Count(),
		Enemies: w.enemies.Count(),
	}
}

func (w *World) Score() int { return w.state.Get().Score }

func (w *World) Tick() uint64 { return w.state.Get().Tick }

// SpawnTimer returns a copy of the enemy spawn timer.
func (w *World) SpawnTimer() SpawnTimer { return *w.timer.Get() }

func (w *World) Seed() uint64 { return w.seed }

func (w *World) Config() config.Config { return w.cfg }

func (w *World) Lifecycle() Lifecycle { return w.lifecycle.Totals() }

func (w *World) Storage() *ecs.Storage { return w.storage }

func (w *World) Scheduler() *ecs.Scheduler { return w.scheduler }
