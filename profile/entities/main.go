// Profiling:
// go build ./profile/entities
// RECS_PROFILE_CONFIG=profile.yaml ./entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/edwinsyarief/recs"
	"github.com/edwinsyarief/recs/internal/config"
	"github.com/edwinsyarief/recs/internal/harness"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	if err := harness.Run("entities", run); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.WorkloadConfig, log *zap.Logger) error {
	entities := make([]recs.Entity, 0, cfg.Entities)
	for range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		w := recs.NewWorld(recs.WithInitialCapacity(cfg.Entities), recs.WithLogger(log))
		batch := recs.NewBuilder[comp1](w)

		for range cfg.Iterations {
			for _, e := range batch.NewEntities(cfg.Entities) {
				if err := recs.AssignDefault[comp2](w, e); err != nil {
					return err
				}
			}
			entities = entities[:0]
			for e, c := range recs.View[recs.Cons[comp1, recs.Cons[comp2, recs.Nil]]](w) {
				entities = append(entities, e)
				c.Head.V += c.Tail.Head.V
				c.Head.W += c.Tail.Head.W
			}
			for _, e := range entities {
				if err := w.DestroyEntity(e); err != nil {
					return err
				}
			}
		}
		if n := w.Len(); n != 0 {
			return fmt.Errorf("round left %d live entities", n)
		}
	}
	return nil
}
