package ecs

import (
	"context"
	"math"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. Frames on
// which a gated system was switched off count as skips, not executions.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Gate is implemented by systems that only run on some frames.
type Gate interface {
	Enabled() bool
}

type scheduled struct {
	system System
	stats  SystemStats
}

func (s *scheduled) record(d time.Duration) {
	st := &s.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// Scheduler runs systems against one World in registration order.
type Scheduler struct {
	world   *World
	systems []*scheduled
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{world: world}
}

// Register appends a system. Its stats are reported under the type name.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, &scheduled{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(math.MaxInt64),
		},
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Once runs every enabled system with the given delta time, then flushes
// the commands they queued. A Gate is asked before each run.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.world)

	for _, sys := range s.systems {
		if g, ok := sys.system.(Gate); ok && !g.Enabled() {
			sys.stats.SkipCount++
			continue
		}
		start := time.Now()
		sys.system.Execute(frame)
		sys.record(time.Since(start))
	}

	frame.Commands.Flush(s.world)
}

// Run calls Once every interval, with the measured time since the previous
// tick, until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns a copy of the per-system statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, sys := range s.systems {
		stats.Systems[i] = sys.stats
		stats.TotalExecutions += sys.stats.ExecutionCount
	}
	return stats
}
