package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 200, "The initial number of entities to create, at most 256.")
	churn := flag.Float64("churn", 0.05, "Fraction of live entities destroyed and respawned each update.")
	snapshotEvery := flag.Int("snapshot-every", 60, "Updates between snapshot round trips, 0 disables them.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	memProfile := flag.Bool("profile", false, "Write an allocation profile to the working directory.")
	flag.Parse()

	if *memProfile {
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	*entityCount = min(max(*entityCount, 0), ecs.MaxEntities)

	log.Println("Starting ECS stress test...")

	// 1. Setup World and Scheduler
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(1))
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&DriftSystem{})
	scheduler.Register(&SpinCameraSystem{})
	churner := &ChurnSystem{Rate: *churn, Rand: rng}
	scheduler.Register(churner)

	// 2. Populate the World with initial entities
	log.Printf("Populating world with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		if _, err := SpawnRandomEntity(world, rng); err != nil {
			log.Fatalf("Failed to spawn entity %d: %v", i, err)
		}
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:   *duration,
		Entities:   *entityCount,
		Components: int(ecs.KindCount),
		Systems:    scheduler.GetStats().SystemCount,
		RecordSize: scene.RecordSize,

		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()
	restored := ecs.NewWorld()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++

			if *snapshotEvery > 0 && totalUpdates%int64(*snapshotEvery) == 0 {
				if err := roundTrip(world, restored, report); err != nil {
					log.Fatalf("Snapshot round trip failed: %v", err)
				}
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.Respawned = churner.Respawned
	report.Rejected = churner.Rejected
	report.Hidden = churner.Hidden
	report.UpdateTime.Finalize()
	report.EncodeTime.Finalize()
	report.DecodeTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// roundTrip encodes world into a save record, then decodes it into restored,
// timing both halves.
func roundTrip(world, restored *ecs.World, report *Report) error {
	encodeStart := time.Now()
	data, err := scene.Capture(world).MarshalBinary()
	if err != nil {
		return err
	}
	report.EncodeTime.Samples = append(report.EncodeTime.Samples, time.Since(encodeStart))

	decodeStart := time.Now()
	var snap scene.Snapshot
	if err := snap.UnmarshalBinary(data); err != nil {
		return err
	}
	if err := snap.Restore(restored); err != nil {
		return err
	}
	report.DecodeTime.Samples = append(report.DecodeTime.Samples, time.Since(decodeStart))

	if restored.Count() != world.Count() {
		return fmt.Errorf("restored %d entities, captured %d", restored.Count(), world.Count())
	}
	return nil
}
