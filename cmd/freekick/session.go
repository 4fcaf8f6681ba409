package main

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/logger"
	"github.com/brenero/3d-free-kick-game/internal/simulation"
	"github.com/brenero/3d-free-kick-game/internal/telemetry"
)

func sessionAction(c *cli.Context) error {
	log := logger.New("session")
	logger.SetDebug(log, c.Bool("debug"))

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	kicks := c.Int("kicks")
	workers := c.Int("workers")
	if workers < 1 {
		workers = 1
	}
	seed := c.Int64("seed")
	store := telemetry.NewStore()

	// Each worker owns its world; only the store is shared.
	worlds, err := buildWorlds(cfg, seed, workers, log)
	if err != nil {
		return err
	}

	jobs := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w, world := range worlds {
		world := world // per-iteration copy; go directive is 1.21
		rng :=rand.New(rand.NewSource(seed ^ int64(w+1)<<32))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if err := playRound(world, cfg, rng, store, c.Int("frames")); err != nil {
					select {
					case errs <- err:
					default:
					}
				}
			}
		}()
	}
	for i := 0; i < kicks; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return err
	}

	if c.Bool("metrics") {
		return store.WriteMetrics(os.Stdout)
	}
	sum := store.Summary()
	fmt.Printf("session %s\n", store.Session())
	fmt.Printf("  kicks   %d\n", sum.Rounds)
	fmt.Printf("  %s   %d (%.0f%%)\n", chalk.Green.Color("goals"), sum.ByType["goal"], sum.ConversionRate()*100)
	fmt.Printf("  %s   %d\n", chalk.Yellow.Color("saves"), sum.ByType["save"])
	fmt.Printf("  %s   %d\n", chalk.Red.Color("misses"), sum.ByType["miss"])
	fmt.Printf("  woodwork %d  barrier %d\n", sum.ByType["post"], sum.ByType["barrier"])
	return nil
}

// buildWorlds creates one world per worker. It runs before any worker
// goroutine starts, so a failure leaves nothing blocked on the job queue.
func buildWorlds(cfg config.Config, seed int64, workers int, log *logger.Logger) ([]*simulation.World, error) {
	worlds := make([]*simulation.World, workers)
	for w := range worlds {
		world, err := simulation.NewWorld(cfg, seed+int64(w), log.With("worker", w))
		if err != nil {
			return nil, err
		}
		worlds[w] = world
	}
	return worlds, nil
}

// playRound resets the world, takes one random kick and runs it to the end.
func playRound(world *simulation.World, cfg config.Config, rng *rand.Rand, store *telemetry.Store, maxFrames int) error {
	world.Reset()
	store.Ingest(world.Snapshot())

	kick, err := simulation.KickFromAim(cfg.Kick, simulation.Aim{
		Yaw:    mgl64.DegToRad(rng.Float64()*40 - 20),
		Power:  cfg.Kick.MinPower + rng.Float64()*(100-cfg.Kick.MinPower),
		Height: cfg.Kick.MinHeight + rng.Float64()*(cfg.Kick.MaxHeight-cfg.Kick.MinHeight),
		Curve:  rng.Float64()*2 - 1,
	})
	if err != nil {
		return err
	}
	if err := world.Kick(kick); err != nil {
		return err
	}
	store.Ingest(world.Snapshot())

	for frame := 0; frame < maxFrames && world.InFlight(); frame++ {
		world.Tick()
		store.Ingest(world.Snapshot())
	}
	return nil
}
