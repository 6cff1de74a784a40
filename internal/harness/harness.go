// Package harness runs profiling workloads over independent worlds.
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edwinsyarief/recs/internal/config"
	"github.com/edwinsyarief/recs/internal/logging"
)

// Workload is one worker's share of a run. Each worker must build its own
// worlds; nothing is shared between workers.
type Workload func(ctx context.Context, cfg config.WorkloadConfig, log *zap.Logger) error

// Run loads the config named by the environment, starts the configured
// profiler and runs fn once per configured world, in parallel.
func Run(name string, fn Workload) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.Named(name)

	p := profile.Start(profileMode(cfg.Profile.Mode), profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet)
	defer p.Stop()

	return runWorkers(context.Background(), cfg.Workload, log, fn)
}

func runWorkers(ctx context.Context, cfg config.WorkloadConfig, log *zap.Logger, fn Workload) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Worlds {
		wlog := log.With(zap.Int("worker", i))
		g.Go(func() error {
			return fn(ctx, cfg, wlog)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("workload finished",
		zap.Int("worlds", cfg.Worlds),
		zap.Int("rounds", cfg.Rounds),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func profileMode(mode string) func(*profile.Profile) {
	if mode == "mem" {
		return profile.MemProfileAllocs
	}
	return profile.CPUProfile
}
