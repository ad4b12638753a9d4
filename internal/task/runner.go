// Package task runs the asynchronous persistence pipeline. The tutoring
// service emits persist events; this package queues them and writes
// them to the store on background workers. Writes are best-effort:
// a failed write is logged and dropped, never retried into the hot path.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the persistence runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers drain the queue.
	WorkerCount int

	// QueueSize is the buffer size of the in-memory job queue.
	QueueSize int

	// WriteTimeout bounds each store write. Zero means 10 seconds.
	WriteTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:  2,
		QueueSize:    100,
		WriteTimeout: 10 * time.Second,
	}
}

// Job is one unit of background work.
type Job func(ctx context.Context) error

// Runner drains a bounded queue of persistence jobs with a fixed pool
// of workers.
type Runner struct {
	jobs       chan namedJob
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger

	mu      sync.RWMutex
	stopped bool
}

type namedJob struct {
	name string
	run  Job
}

// NewRunner creates a runner. Call Start before submitting jobs.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultRunnerConfig().WriteTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		jobs:       make(chan namedJob, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
	}
}

// Submit queues a job. Returns an error when the queue is full or the
// runner has been stopped; the caller decides whether dropping matters.
func (r *Runner) Submit(name string, job Job) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return fmt.Errorf("runner is stopped")
	}

	select {
	case r.jobs <- namedJob{name: name, run: job}:
		return nil
	default:
		return fmt.Errorf("job queue is full")
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("persistence runner started",
		"worker_count", r.config.WorkerCount,
		"queue_size", r.config.QueueSize)
}

// Stop drains queued jobs and waits for in-flight work to finish.
// Submissions after Stop are rejected.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.jobs)
	r.wg.Wait()
	r.cancelFunc()
	r.logger.Info("persistence runner stopped")
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()
	log := r.logger.With(slog.Int("worker_id", id))

	for job := range r.jobs {
		ctx, cancel := context.WithTimeout(r.ctx, r.config.WriteTimeout)
		if err := job.run(ctx); err != nil {
			log.Error("background job failed",
				"job", job.name,
				"error", err)
		}
		cancel()
	}
}
