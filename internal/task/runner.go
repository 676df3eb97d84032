package task

import (
	"context"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for a TaskRunner.
type RunnerConfig struct {
	// QueueSize bounds the number of tasks waiting for a worker.
	QueueSize int
	// WorkerCount is the number of concurrent workers.
	WorkerCount int
}

// DefaultRunnerConfig returns the default queue and pool sizes.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{QueueSize: 100, WorkerCount: 2}
}

// TaskRunner owns a TaskQueue and the WorkerPool that drains it.
type TaskRunner struct {
	queue  TaskQueueWriter
	pool   *WorkerPool
	logger *slog.Logger

	stopOnce sync.Once
}

var _ Submitter = (*TaskRunner)(nil)

// NewTaskRunner creates a runner. Call Start before submitting work.
func NewTaskRunner(config RunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler registers a callback for tasks that return an error or
// panic. It forwards to the underlying pool and must be called before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start launches the worker pool.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Submit enqueues a task without blocking. It returns ErrQueueFull or
// ErrQueueClosed when the task is rejected.
func (r *TaskRunner) Submit(task Task) error {
	return r.queue.Enqueue(task)
}

// Stop closes the queue and lets the workers drain it. If ctx expires
// first, running tasks are cancelled and the remaining queue is abandoned;
// ctx.Err() is returned in that case.
func (r *TaskRunner) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		r.queue.Close()

		drained := make(chan struct{})
		go func() {
			r.pool.Wait()
			close(drained)
		}()

		select {
		case <-drained:
			r.logger.Info("task runner drained")
		case <-ctx.Done():
			r.logger.Warn("task runner drain timed out, cancelling tasks",
				"abandoned", r.queue.Len())
			err = ctx.Err()
		}
		r.pool.Stop()
	})
	return err
}
