// Profiling:
// go build ./profile/query
// RECS_PROFILE_CONFIG=profile.toml ./query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

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

type comp3 struct {
	V int64
	W int64
}

type view3 = recs.Cons[comp1, recs.Cons[comp2, recs.Cons[comp3, recs.Nil]]]

func main() {
	if err := harness.Run("query", run); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.WorkloadConfig, log *zap.Logger) error {
	for round := range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		w := recs.NewWorld(recs.WithInitialCapacity(cfg.Entities), recs.WithLogger(log))
		b := recs.NewBuilder[comp1](w)
		for i, e := range b.NewEntities(cfg.Entities) {
			if err := recs.Assign(w, e, comp2{V: 1, W: 1}); err != nil {
				return err
			}
			// a third of the entities lack comp3, so the view has to probe
			if i%3 != 0 {
				if err := recs.Assign(w, e, comp3{V: 2, W: 2}); err != nil {
					return err
				}
			}
		}

		q := recs.NewQuery[view3](w)
		for range cfg.Iterations {
			q.Reset()
			for q.Next() {
				c := q.Get()
				c1, c2, c3 := c.Head, c.Tail.Head, c.Tail.Tail.Head
				c1.V += c2.V * c3.V
				c1.W += c2.W * c3.W
			}
		}
		log.Debug("round done", zap.Int("round", round), zap.Int("matched", q.Count()))
	}
	return nil
}
