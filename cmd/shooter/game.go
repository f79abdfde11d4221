package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/shmup/config"
	"github.com/plus3/shmup/ecs"
	"github.com/plus3/shmup/ecs/debugui"
	debugui_ebiten "github.com/plus3/shmup/ecs/debugui/ebiten"
	"github.com/plus3/shmup/shooter"
	"go.uber.org/zap"
)

// Game implements ebiten.Game on top of a shooter.World. Update advances the
// simulation one fixed step; Draw runs a separate render scheduler over the
// same storage.
type Game struct {
	world  *shooter.World
	log    *zap.Logger
	width  int
	height int

	render     *ecs.Scheduler
	screen     *ecs.Singleton[Screen]
	lastUpdate time.Time

	// debug overlay, nil unless -debug
	ui      *ecs.Scheduler
	backend *debugui_ebiten.ImguiBackend
	overlay bool // toggled with F3
}

func newGame(cfg *config.Config, log *zap.Logger, debug bool) (*Game, error) {
	kb := &keyboard{}

	opts := []shooter.Option{shooter.WithLogger(log)}
	if debug {
		opts = append(opts, shooter.WithComponents(debugui.RegisterDebugUIComponents))
	}

	world, err := shooter.NewWorld(cfg, kb, opts...)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:  world,
		log:    log,
		width:  int(cfg.Simulation.ArenaWidth),
		height: int(cfg.Simulation.ArenaHeight),
		render: ecs.NewScheduler(world.Storage()),
		screen: ecs.NewSingleton(world.Storage(), Screen{}),
	}
	g.render.Register(newRenderSystem())

	if debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, g.width, g.height)
		g.backend = &backend
		g.overlay = true
		kb.imgui = ecs.NewSingleton(world.Storage(), debugui.ImguiInputState{}).Get()

		g.ui = ecs.NewScheduler(world.Storage())
		g.ui.Register(&debugui.ImguiSystem{})
		debugui.SpawnDebugUI(world.Storage(), world.Scheduler())
		spawnSimulationPanel(world)
	}

	return g, nil
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	realDelta := time.Duration(0)
	if !g.lastUpdate.IsZero() {
		realDelta = now.Sub(g.lastUpdate)
	}
	g.lastUpdate = now

	if g.backend != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
			g.overlay = !g.overlay
			debugui.SetVisible(g.world.Storage(), g.overlay)
		}
		g.backend.BeginFrame()
	}

	if err := g.world.Step(realDelta); err != nil {
		return err
	}

	if g.ui != nil {
		if err := g.ui.Once(0, realDelta); err != nil {
			return err
		}
		g.backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	if err := g.render.Once(0, 0); err != nil {
		g.log.Error("render failed", zap.Error(err))
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d", g.world.Score()))

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
