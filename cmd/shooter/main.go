// Command shooter runs the arena shooter in an ebiten window.
//
// Q and E rotate the ship, the arrow keys move it and Escape quits.
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shmup/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file; defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Seed for enemy spawn angles; 0 keeps the configured seed.")
	basic := flag.Bool("basic", false, "Run the basic variant without enemies.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			zap.NewExample().Fatal("load config", zap.Error(err))
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *basic {
		cfg.Simulation.Enemies = false
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))

	width, height := int(cfg.Simulation.ArenaWidth), int(cfg.Simulation.ArenaHeight)
	ebiten.SetTPS(cfg.Simulation.TickRate)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(int(float64(width)*cfg.Window.Scale), int(float64(height)*cfg.Window.Scale))

	game, err := newGame(cfg, log, *debug)
	if err != nil {
		log.Fatal("create game", zap.Error(err))
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("game exited",
		zap.Uint64("ticks", game.world.Tick()),
		zap.Int("score", game.world.Score()),
	)
}
