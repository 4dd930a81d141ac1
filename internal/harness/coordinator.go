// Package harness drives a benchmark run: it loads the input once and runs
// each container component in a fixed order, isolating their failures.
package harness

import (
	"context"
	"datebench/internal/bench"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"datebench/internal/report"
	"datebench/internal/store"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Component is one demonstration run by the coordinator.
type Component struct {
	Name    string
	Section string
	Run     func(ctx context.Context, target dates.Date, snapshot []dates.Date) error
}

// Outcome is the result of one component. Err is nil on success.
type Outcome struct {
	Name string
	Err  error
}

// DefaultComponents returns the list, queue and set components in run order.
// Each writes its sorted array through saver to dest and reports to sink.
func DefaultComponents(saver bench.Saver, sink bench.Sink, dest string) []Component {
	return []Component{
		{
			Name:    string(bench.ContainerList),
			Section: "PROCESSING DATA USING LIST",
			Run: func(ctx context.Context, target dates.Date, snapshot []dates.Date) error {
				return bench.NewListOperations(target, snapshot, sink).Execute(ctx, saver, dest)
			},
		},
		{
			Name:    string(bench.ContainerQueue),
			Section: "PROCESSING DATA USING QUEUE",
			Run: func(ctx context.Context, target dates.Date, snapshot []dates.Date) error {
				return bench.NewQueueOperations(target, snapshot, sink).Execute(ctx, saver, dest)
			},
		},
		{
			Name:    string(bench.ContainerSet),
			Section: "PROCESSING DATA USING SET",
			Run: func(ctx context.Context, target dates.Date, snapshot []dates.Date) error {
				return bench.NewSetOperations(target, snapshot, sink).Execute(ctx, saver, dest)
			},
		},
	}
}

// Coordinator owns one benchmark run.
type Coordinator struct {
	gateway    store.Gateway
	printer    *report.Printer
	source     string
	dest       string
	components []Component
	runID      string
	logger     *zap.Logger
}

// New creates a coordinator reading source and writing sorted arrays to dest.
// Without explicit components it runs DefaultComponents.
func New(gateway store.Gateway, printer *report.Printer, source, dest string, components ...Component) *Coordinator {
	if len(components) == 0 {
		components = DefaultComponents(gateway, printer, dest)
	}
	runID := uuid.New().String()
	return &Coordinator{
		gateway:    gateway,
		printer:    printer,
		source:     source,
		dest:       dest,
		components: components,
		runID:      runID,
		logger:     logging.Get(logging.CategoryHarness).With(zap.String("run_id", runID)),
	}
}

// RunID identifies this run in log output.
func (c *Coordinator) RunID() string {
	return c.runID
}

// Run loads the input and executes every component against it. A load
// failure is reported and returned before any component starts. Component
// failures are reported and collected in the outcomes; they never stop the
// run and never make Run return an error.
func (c *Coordinator) Run(ctx context.Context, target dates.Date) ([]Outcome, error) {
	start := time.Now()
	c.logger.Info("run started",
		zap.Stringer("target", target),
		zap.String("source", c.source),
		zap.String("dest", c.dest))

	c.printer.Opening(target)

	snapshot, err := c.gateway.Load(ctx, c.source)
	if err != nil {
		c.logger.Error("failed to load input", zap.String("source", c.source), zap.Error(err))
		c.printer.LoadError(c.source, err)
		return nil, fmt.Errorf("failed to load %s: %w", c.source, err)
	}
	c.logger.Debug("input loaded", zap.Int("count", len(snapshot)))

	outcomes := make([]Outcome, 0, len(c.components))
	for i, comp := range c.components {
		if i > 0 {
			c.printer.Between()
		}
		c.printer.Section(comp.Section)

		err := c.runIsolated(ctx, comp, target, snapshot)
		if err != nil {
			c.logger.Warn("component failed", zap.String("component", comp.Name), zap.Error(err))
			c.printer.ComponentError(comp.Name, err)
		}
		outcomes = append(outcomes, Outcome{Name: comp.Name, Err: err})
	}

	c.printer.Summary()
	c.printer.Closing()

	c.logger.Info("run finished",
		zap.Int("components", len(outcomes)),
		zap.Duration("elapsed", time.Since(start)))
	return outcomes, nil
}

func (c *Coordinator) runIsolated(ctx context.Context, comp Component, target dates.Date, snapshot []dates.Date) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return comp.Run(ctx, target, snapshot)
}
