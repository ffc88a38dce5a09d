// Package runner schedules the host×source cross product under a global
// concurrency gate and merges completed batches into one output stream.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"subgather/internal/apperr"
	"subgather/internal/sources"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultConcurrency = 200
	DefaultTimeout     = 15 * time.Second
)

// Batch is the list of names produced by one completed task. Batches carry no
// ordering guarantee relative to other batches; the stream yields them in
// completion order.
type Batch struct {
	Source string
	Host   string
	Names  []string
}

// task pairs one root host with one enabled source.
type task struct {
	host   string
	source sources.Source
}

// Runner executes the cross product of hosts and enabled sources. Configuration
// is fixed at construction and immutable once Run starts.
type Runner struct {
	registry    *sources.Registry
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
	excluded    []string
	allSources  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency caps the number of tasks simultaneously awaiting network I/O
// across the entire run, not per host.
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.concurrency = n }
}

// WithTimeout sets the per-task deadline. A task that exceeds it is cancelled
// and treated exactly like a source failure.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithExcluded removes the named sources from the enabled set regardless of mode.
func WithExcluded(names ...string) Option {
	return func(r *Runner) { r.excluded = append(r.excluded, names...) }
}

// WithAllSources enables the keyed sources in addition to the free set.
func WithAllSources(enabled bool) Option {
	return func(r *Runner) { r.allSources = enabled }
}

// New creates a Runner over the given registry.
func New(registry *sources.Registry, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		registry:    registry,
		logger:      logger,
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run schedules one task per (deduplicated host, enabled source) pair and
// returns the merge stream. The returned channel yields batches in completion
// order and closes only after every task has finished — succeeded, failed, or
// timed out. Run fails only on invalid configuration; zero hosts or zero
// enabled sources yield an immediately-closed stream. Once running, the stream
// always completes with whatever partial results accumulated, even if every
// task failed.
func (r *Runner) Run(ctx context.Context, hosts []string) (<-chan Batch, error) {
	if r.concurrency < 1 {
		return nil, fmt.Errorf("%w: concurrency must be at least 1, got %d", apperr.ErrInvalidInput, r.concurrency)
	}
	if r.timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %s", apperr.ErrInvalidInput, r.timeout)
	}

	enabled := r.registry.Enabled(r.allSources, r.excluded)
	roots := dedupe(hosts)
	tasks := buildTasks(roots, enabled)

	results := make(chan Batch)
	if len(tasks) == 0 {
		close(results)
		return results, nil
	}

	r.logger.Debug("run starting",
		"hosts", len(roots),
		"sources", len(enabled),
		"tasks", len(tasks),
		"concurrency", r.concurrency,
		"timeout", r.timeout,
	)

	queue := make(chan task)
	go func() {
		defer close(queue)
		for _, t := range tasks {
			select {
			case queue <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	workers := r.concurrency
	if len(tasks) < workers {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, queue, results)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

// worker drains the task queue. A task's outcome never affects any other
// task's scheduling, execution, or result: failures and timeouts are logged
// and dropped here, inside the task boundary.
func (r *Runner) worker(ctx context.Context, queue <-chan task, results chan<- Batch) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-queue:
			if !ok {
				return
			}
			names, err := r.execute(ctx, t)
			if err != nil {
				r.logger.Warn("source failed", "source", t.source.Name(), "host", t.host, "err", err)
				continue
			}
			if len(names) == 0 {
				continue
			}
			select {
			case results <- Batch{Source: t.source.Name(), Host: t.host, Names: names}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// execute races the source's fetch against the per-task deadline.
func (r *Runner) execute(ctx context.Context, t task) ([]string, error) {
	taskCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names, err := t.source.Run(taskCtx, t.host)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %s: %w", r.timeout, err)
		}
		return nil, err
	}
	return names, nil
}

// buildTasks expands the cross product. Task ordering is insignificant.
func buildTasks(hosts []string, enabled []sources.Source) []task {
	tasks := make([]task, 0, len(hosts)*len(enabled))
	for _, host := range hosts {
		for _, src := range enabled {
			tasks = append(tasks, task{host: host, source: src})
		}
	}
	return tasks
}

// dedupe removes duplicate hosts, preserving first-seen order.
func dedupe(hosts []string) []string {
	seen := make(map[string]struct{}, len(hosts))
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
