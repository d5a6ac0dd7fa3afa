// Command momo-stress measures the catalog, pipeline and scheduler under a
// generated workload of many component kinds and systems.
package main

//go:generate go run ../momo-stressgen -components 64 -systems 24 -out generated.go

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/momo/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 50, "Entities destroyed and respawned after every frame.")
	tickRate := flag.Int("tick-rate", 60, "Fixed ticks per second.")
	maxTicks := flag.Int("max-ticks", 5, "Tick budget per frame. 0 means unlimited.")
	seed := flag.Uint64("seed", 1, "Random seed for entity population.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Error("unknown profile mode", "profile", *profileMode)
		os.Exit(2)
	}

	if err := run(log, options{
		duration:       *duration,
		entities:       *entityCount,
		churn:          *churn,
		tickRate:       *tickRate,
		maxTicks:       *maxTicks,
		seed:           *seed,
		gcPauseMetrics: *gcPauseMetrics,
	}); err != nil {
		log.Error("stress test failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	duration       time.Duration
	entities       int
	churn          int
	tickRate       int
	maxTicks       int
	seed           uint64
	gcPauseMetrics bool
}

func run(log *slog.Logger, opts options) error {
	log.Info("starting stress test")

	// 1. Catalog, registry, pipeline and scheduler
	catalog := ecs.NewCatalog(ecs.WithLogger(log))
	registry := ecs.NewRegistry(catalog)
	pipeline := ecs.NewPipeline(registry)
	RegisterAllGeneratedSystems(pipeline)

	cfg := ecs.DefaultSchedulerConfig()
	if opts.tickRate > 0 {
		cfg.TickInterval = time.Second / time.Duration(opts.tickRate)
	}
	cfg.MaxTicksPerFrame = opts.maxTicks
	scheduler, err := ecs.NewScheduler(cfg, ecs.WithSchedulerLogger(log))
	if err != nil {
		return err
	}

	// 2. Population
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	log.Info("populating catalog", "entities", opts.entities)
	live := make([]ecs.Entity, 0, opts.entities)
	for range opts.entities {
		live = append(live, SpawnRandomEntity(registry, rng, rng.IntN(5)+1))
	}
	log.Info("population complete", "stores", catalog.Stats().StoreCount)

	// 3. Simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entities,
		Components:     componentCount,
		Systems:        systemCount,
		TickInterval:   cfg.TickInterval,
		Churn:          opts.churn,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", "duration", opts.duration)
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	startTime := time.Now()
	frameStart := startTime

	present := func(ecs.FrameResult) error {
		// Churn between frames so destroyed ids never come back mid-tick.
		for range min(opts.churn, len(live)) {
			i := rng.IntN(len(live))
			registry.Destroy(live[i])
			live[i] = SpawnRandomEntity(registry, rng, rng.IntN(5)+1)
		}

		now := time.Now()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, now.Sub(frameStart))
		frameStart = now
		return nil
	}

	stop := func() bool {
		return ctx.Err() != nil
	}

	if err := scheduler.RunWithPresenter(pipeline.Tick, stop, present); err != nil {
		return err
	}

	report.TotalTime = time.Since(startTime)
	report.Scheduler = scheduler.Stats()
	report.Pipeline = pipeline.Stats()
	report.Catalog = catalog.Stats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished")

	// 4. Report to console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return err
	}
	fmt.Println("--- End of Report ---")

	log.Info("stress test complete")
	return nil
}
