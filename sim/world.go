// Package sim is a demonstration host for the aoi index: it spawns walkers
// that wander to random destinations and reports what each of them sees.
package sim

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tutumagi/sweepaoi/aoi"
	"github.com/tutumagi/sweepaoi/config"
	"github.com/tutumagi/sweepaoi/metrics"
	"github.com/tutumagi/sweepaoi/utils"
	"go.uber.org/zap"
)

// metric names reported by Step
const (
	MetricEntities    = "sim_entities"
	MetricStepSeconds = "sim_step_seconds"
	MetricEvents      = "sim_events"
)

// World owns one index and drives it tick by tick.
//	not safe for concurrent use, Run is the only goroutine touching it
type World struct {
	cfg   *config.SimConfig
	runID uuid.UUID
	index *aoi.Index
	rand  *rand.Rand

	walkers []aoi.ID
	tick    uint64

	handler  EventHandler
	reporter metrics.Reporter
	log      *zap.Logger
}

// Option configures a World
type Option func(*World)

// WithHandler receives the events of every Step
func WithHandler(h EventHandler) Option {
	return func(w *World) {
		w.handler = h
	}
}

// WithReporter reports index and step statistics
func WithReporter(r metrics.Reporter) Option {
	return func(w *World) {
		w.reporter = r
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// NewWorld with an empty index sized by cfg.Capacity
func NewWorld(cfg *config.SimConfig, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:   cfg,
		runID: uuid.New(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.String("run", w.runID.String()))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w.rand = rand.New(rand.NewSource(seed))

	indexOpts := []aoi.Option{aoi.WithLogger(w.log)}
	if w.reporter != nil {
		indexOpts = append(indexOpts, aoi.WithReporter(w.reporter))
	}
	index, err := aoi.New(cfg.Capacity, indexOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create index of %d", cfg.Capacity)
	}
	w.index = index
	return w, nil
}

// RunID identifies this world in logs and journals
func (w *World) RunID() uuid.UUID {
	return w.runID
}

// Index the world drives
func (w *World) Index() *aoi.Index {
	return w.index
}

// Tick number of steps done
func (w *World) Tick() uint64 {
	return w.tick
}

// Walkers ids in spawn order
func (w *World) Walkers() []aoi.ID {
	out := make([]aoi.ID, len(w.walkers))
	copy(out, w.walkers)
	return out
}

// Populate spawns cfg.Population walkers
func (w *World) Populate() error {
	for i := 0; i < w.cfg.Population; i++ {
		if _, err := w.Spawn(); err != nil {
			return errors.Wrapf(err, "spawn walker %d", i)
		}
	}
	return nil
}

// Spawn a walker with a random speed somewhere in the spawn square
func (w *World) Spawn() (aoi.ID, error) {
	id, err := w.index.Enter(nil)
	if err != nil {
		return aoi.InvalidID, err
	}
	speed := utils.RandomInt32(w.rand, w.cfg.MinSpeed, w.cfg.MaxSpeed)
	x := utils.RandomInt32(w.rand, w.cfg.SpawnMin, w.cfg.SpawnMax)
	y := utils.RandomInt32(w.rand, w.cfg.SpawnMin, w.cfg.SpawnMax)
	w.index.SetSpeed(id, speed)
	w.index.Locate(id, aoi.Coord(x), aoi.Coord(y))
	w.walkers = append(w.walkers, id)

	w.log.Debug("walker spawned", zap.Int32("id", int32(id)), zap.Int32("speed", speed), zap.Int32("x", x), zap.Int32("y", y))
	return id, nil
}

// Despawn removes the walker, unknown ids are ignored.
//	safe to call from a handler during Step, the walkers of that Step are
//	still visited once each
func (w *World) Despawn(id aoi.ID) {
	for i, wid := range w.walkers {
		if wid == id {
			// copy instead of shifting in place, Step may be ranging over the old array
			w.walkers = append(w.walkers[:i:i], w.walkers[i+1:]...)
			break
		}
	}
	w.index.Leave(id)
}

// Step advances every walker by one tick: a standing walker picks a new
// destination, a moving one moves and triggers. Returns the number of events
// dispatched.
func (w *World) Step() int {
	start := time.Now()
	w.tick++
	dispatched := 0

	for _, id := range w.walkers {
		if !w.index.IsMoving(id) {
			x, y := utils.RandomPoint(w.rand, w.cfg.Width, w.cfg.Height)
			w.index.Move(id, aoi.Coord(x), aoi.Coord(y))
			continue
		}

		w.index.Update(id, 1)
		events, err := w.index.Trigger(id, aoi.Coord(w.cfg.EnterRadius), aoi.Coord(w.cfg.LeaveRadius))
		if err != nil {
			w.log.Error("trigger failed", zap.Int32("id", int32(id)), zap.Error(err))
			continue
		}
		// events alias the index buffer, consume them before the next trigger
		for _, e := range events {
			w.dispatch(id, e)
			dispatched++
		}
	}

	w.report(time.Since(start), dispatched)
	return dispatched
}

func (w *World) dispatch(observer aoi.ID, e aoi.Event) {
	if w.handler == nil {
		return
	}
	sx, sy, _ := w.index.Pos(observer)
	tx, ty, _ := w.index.Pos(e.ID)
	dx, dy := float64(sx-tx), float64(sy-ty)
	o := Observation{
		Tick:     w.tick,
		Observer: observer,
		Target:   e.ID,
		Kind:     e.Kind,
		From:     aoi.Point{X: sx, Y: sy},
		To:       aoi.Point{X: tx, Y: ty},
		Distance: int(math.Sqrt(dx*dx + dy*dy)),
	}
	utils.RunPanicless(w.log, func() {
		w.handler.OnEvent(o)
	})
}

func (w *World) report(elapsed time.Duration, events int) {
	if w.reporter == nil {
		return
	}
	if err := w.reporter.ReportGauge(MetricEntities, nil, float64(w.index.Len())); err != nil {
		w.log.Debug("report entities failed", zap.Error(err))
	}
	if err := w.reporter.ReportSummary(MetricStepSeconds, nil, elapsed.Seconds()); err != nil {
		w.log.Debug("report step failed", zap.Error(err))
	}
	if events > 0 {
		if err := w.reporter.ReportCount(MetricEvents, nil, float64(events)); err != nil {
			w.log.Debug("report events failed", zap.Error(err))
		}
	}
}

// Run steps every cfg.TickInterval until ctx is done
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.TickInterval)
	defer ticker.Stop()

	w.log.Info("world running",
		zap.Int("walkers", len(w.walkers)),
		zap.Int32("enter_radius", w.cfg.EnterRadius),
		zap.Int32("leave_radius", w.cfg.LeaveRadius),
		zap.Duration("tick", w.cfg.TickInterval),
	)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("world stopped", zap.Uint64("ticks", w.tick))
			return ctx.Err()
		case <-ticker.C:
			w.Step()
		}
	}
}

// CheckSorted verifies both axis lists are in ascending order
func (w *World) CheckSorted() error {
	for _, axis := range []aoi.Axis{aoi.AxisX, aoi.AxisY} {
		var (
			prev  aoi.Coord
			first = true
			err   error
		)
		w.index.Walk(axis, func(id aoi.ID, p aoi.Point) bool {
			c := p.X
			if axis == aoi.AxisY {
				c = p.Y
			}
			if !first && c < prev {
				err = errors.Errorf("%s list out of order at id %d: %d after %d", axis, id, c, prev)
				return false
			}
			first = false
			prev = c
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
