package sim

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"main/src/journal"
	"main/src/metrics"
	"main/src/model"
	"main/src/scheduler"
)

// Each loading/crossing duration unit maps to this much wall time.
const DefaultTimeUnit = 100 * time.Millisecond

type Config struct {
	// TimeUnit overrides DefaultTimeUnit; tests use a sub-millisecond unit.
	TimeUnit time.Duration
	Journal  *journal.Journal
	// Metrics is optional; nil disables collection.
	Metrics *metrics.Collector
	Logger  *zap.SugaredLogger
}

// Runner drives one simulation: a goroutine per train plus the dispatcher,
// all sharing one scheduler core.
type Runner struct {
	trains []model.Train
	core   *scheduler.Core
	cfg    Config
	start  time.Time
}

func NewRunner(trains []model.Train, cfg Config) *Runner {
	if cfg.TimeUnit <= 0 {
		cfg.TimeUnit = DefaultTimeUnit
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	return &Runner{
		trains: trains,
		core:   scheduler.NewCore(len(trains)),
		cfg:    cfg,
	}
}

// Run executes the simulation to completion: every train loads, is
// dispatched across the track exactly once, and finishes. Cancelling ctx
// aborts the run early.
func (r *Runner) Run(ctx context.Context) error {
	r.start = time.Now()
	if r.cfg.Journal != nil {
		r.cfg.Journal.Start(r.start)
	}

	g, gctx := errgroup.WithContext(ctx)

	// Cancellation (external or a failed worker) must unblock the
	// dispatcher too.
	stop := context.AfterFunc(gctx, r.core.Stop)
	defer stop()

	g.Go(func() error {
		r.core.Run()
		return nil
	})
	for _, t := range r.trains {
		train := t
		g.Go(func() error {
			return r.runTrain(gctx, train)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	r.cfg.Logger.Infof("run complete: %d trains crossed in %v", r.core.Finished(), time.Since(r.start))
	return nil
}

// runTrain is the lifecycle of a single train: load, announce readiness,
// queue up for the track, cross, hand the track back.
func (r *Runner) runTrain(ctx context.Context, t model.Train) error {
	r.sleep(t.Loading)

	// The ready stamp is captured once; dispatch order is decided by these
	// captured values, never re-sampled.
	readyNS := time.Since(r.start).Nanoseconds()
	if r.cfg.Journal != nil {
		r.cfg.Journal.Ready(t.ID, t.Dir)
	}

	grant := r.core.Enqueue(t.ID, t.Dir, t.Priority, readyNS)
	select {
	case <-grant:
	case <-ctx.Done():
		return ctx.Err()
	}

	if r.cfg.Metrics != nil {
		wait := time.Since(r.start) - time.Duration(readyNS)
		r.cfg.Metrics.OnDispatch(t.Dir, t.Priority, wait)
	}
	if r.cfg.Journal != nil {
		r.cfg.Journal.Enter(t.ID, t.Dir)
	}

	// The crossing happens with no lock held; exclusion comes from the
	// dispatcher never granting while the track flag is set.
	r.sleep(t.Crossing)

	if r.cfg.Journal != nil {
		r.cfg.Journal.Leave(t.ID, t.Dir)
	}
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.OnCrossed(t.Dir, t.Priority, time.Duration(t.Crossing)*r.cfg.TimeUnit)
	}

	r.core.Release(t.Dir)
	return nil
}

func (r *Runner) sleep(units int) {
	time.Sleep(time.Duration(units) * r.cfg.TimeUnit)
}
