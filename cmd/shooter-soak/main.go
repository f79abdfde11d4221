// Command shooter-soak runs headless arena worlds in parallel with random input and
// prints a markdown report of tick timings, entity counts and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/shmup/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file; defaults are used when empty.")
	worlds := flag.Int("worlds", runtime.GOMAXPROCS(0), "Number of independent worlds to run.")
	ticks := flag.Int("ticks", 36000, "Ticks per world; 0 runs until -duration elapses.")
	duration := flag.Duration("duration", 0, "Wall-clock limit for the whole run; 0 means no limit.")
	realDelta := flag.Duration("real-delta", time.Second/60, "Real time reported to the spawn timer each tick.")
	seed := flag.Uint64("seed", 1, "Seed of the first world; world i uses seed+i.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			zap.NewExample().Fatal("load config", zap.Error(err))
		}
		cfg = loaded
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer log.Sync()

	runID := uuid.New()
	log = log.With(zap.Stringer("run", runID))

	if *ticks <= 0 && *duration <= 0 {
		log.Fatal("either -ticks or -duration must be set")
	}

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	report := &Report{
		RunID:     runID,
		Worlds:    *worlds,
		Ticks:     *ticks,
		Duration:  *duration,
		RealDelta: *realDelta,
		Enemies:   cfg.Simulation.Enemies,
		Results:   make([]WorldResult, *worlds),
	}

	log.Info("starting soak", zap.Int("worlds", *worlds), zap.Int("ticks", *ticks), zap.Duration("duration", *duration))
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := range *worlds {
		worldCfg := *cfg
		worldCfg.Simulation.Seed = *seed + uint64(i)

		g.Go(func() error {
			result, err := soak(ctx, &worldCfg, *ticks, *realDelta, log.With(zap.Int("world", i)))
			report.Results[i] = result
			if err != nil {
				return fmt.Errorf("world %d: %w", i, err)
			}
			return nil
		})
	}
	runErr := g.Wait()

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize()

	if runErr != nil {
		log.Error("soak aborted", zap.Error(runErr))
	}

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}

	if runErr != nil {
		os.Exit(1)
	}
	log.Info("soak complete", zap.Duration("elapsed", report.TotalTime))
}
