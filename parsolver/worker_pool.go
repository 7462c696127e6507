// Package parsolver implements the parallel solver (spec.md §4.6, §4.7,
// C6+C7): a unit scheduler that walks a partition.PartitionInfo's fusion
// tree level by level, solving every unit's induced subgraph independently
// and concurrently within a level, only starting a unit once both its
// children are done.
//
// spec.md separates the parallel dual module (C6) and parallel primal
// module (C7), but this package merges them: the scheduler below is the
// only thing either would need, and splitting it across two packages would
// just relocate the same types across an artificial boundary. See
// DESIGN.md's "package parsolver" entry for the fusion-step simplification
// this implementation makes.
package parsolver

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// PoolConfig configures the worker pool's worker count and task buffer
// size; it has no thread-pinning option.
//
// Adapted (trimmed) from junjiewwang-perf-analysis/pkg/parallel/
// worker_pool.go: kept the generic Task/WorkerPool pair and PoolConfig/
// DefaultPoolConfig; dropped ChunkProcessor, MapReduce, ForEach,
// ParallelAggregate, and ProgressTracker, none of which gained a caller
// here — the scheduler only ever needs "run these independent unit-solves
// concurrently, collect results".
type PoolConfig struct {
	MaxWorkers     int
	TaskBufferSize int
}

// DefaultPoolConfig returns a default pool configuration.
func DefaultPoolConfig() PoolConfig {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers < 2 {
		workers = 2
	}
	return PoolConfig{MaxWorkers: workers, TaskBufferSize: workers * 2}
}

// Task is a unit of work the pool can execute.
type Task[T any, R any] interface {
	Execute(ctx context.Context) (R, error)
	Input() T
}

// TaskFunc adapts a plain function into a Task.
type TaskFunc[T any, R any] struct {
	input   T
	execute func(ctx context.Context, input T) (R, error)
}

// NewTask builds a TaskFunc from input and fn.
func NewTask[T any, R any](input T, fn func(ctx context.Context, input T) (R, error)) *TaskFunc[T, R] {
	return &TaskFunc[T, R]{input: input, execute: fn}
}

// Execute runs the wrapped function.
func (t *TaskFunc[T, R]) Execute(ctx context.Context) (R, error) { return t.execute(ctx, t.input) }

// Input returns the task's input.
func (t *TaskFunc[T, R]) Input() T { return t.input }

// TaskResult holds one task's outcome, including the wall-clock time it
// took (fed to the profiler, C9, as a per-unit timed event).
type TaskResult[T any, R any] struct {
	Input    T
	Result   R
	Error    error
	Duration time.Duration
}

// WorkerPool runs a batch of same-shaped tasks with bounded concurrency.
type WorkerPool[T any, R any] struct {
	config PoolConfig
}

// NewWorkerPool builds a pool with config, filling in defaults for
// zero-valued fields.
func NewWorkerPool[T any, R any](config PoolConfig) *WorkerPool[T, R] {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultPoolConfig().MaxWorkers
	}
	if config.TaskBufferSize <= 0 {
		config.TaskBufferSize = config.MaxWorkers * 2
	}
	return &WorkerPool[T, R]{config: config}
}

// Execute runs every task, returning results in task order once all
// complete (one scheduling level is one Execute call).
func (p *WorkerPool[T, R]) Execute(ctx context.Context, tasks []Task[T, R]) []TaskResult[T, R] {
	if len(tasks) == 0 {
		return nil
	}

	results := make([]TaskResult[T, R], len(tasks))
	taskCh := make(chan int, p.config.TaskBufferSize)

	var wg sync.WaitGroup
	numWorkers := p.config.MaxWorkers
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-taskCh:
					if !ok {
						return
					}
					task := tasks[idx]
					start := time.Now()
					result, err := task.Execute(ctx)
					results[idx] = TaskResult[T, R]{
						Input:    task.Input(),
						Result:   result,
						Error:    err,
						Duration: time.Since(start),
					}
				}
			}
		}()
	}

	go func() {
		for i := range tasks {
			select {
			case <-ctx.Done():
				break
			case taskCh <- i:
			}
		}
		close(taskCh)
	}()

	wg.Wait()
	return results
}

// ExecuteFunc is a convenience wrapper that builds TaskFuncs from inputs.
func (p *WorkerPool[T, R]) ExecuteFunc(ctx context.Context, inputs []T, fn func(ctx context.Context, input T) (R, error)) []TaskResult[T, R] {
	tasks := make([]Task[T, R], len(inputs))
	for i, input := range inputs {
		tasks[i] = NewTask(input, fn)
	}
	return p.Execute(ctx, tasks)
}
