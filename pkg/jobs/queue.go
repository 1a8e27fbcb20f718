package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is a lightweight in-memory job dispatcher backed by goroutines.
type Queue struct {
	name    string
	handler Handler

	workers    int
	bufferSize int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Start launches the worker pool. Subsequent calls are no-ops.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Stop drains the queue and waits for in-flight jobs.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.started = false
	q.cancel()
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

// Enqueue submits a job for processing.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	started := q.started
	q.mu.Unlock()
	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now()
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("queue %s is full", q.name)
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	log := q.logger.Sugar().With("queue", q.name, "worker", id)
	for job := range q.jobs {
		if q.ctx.Err() != nil {
			return
		}
		if err := q.process(job); err != nil {
			log.Warnw("job failed permanently", "job_id", job.ID, "type", job.Type, "error", err)
		}
	}
}

func (q *Queue) process(job Job) error {
	var err error
	for attempt := 1; attempt <= q.maxRetries; attempt++ {
		job.Attempt = attempt
		if err = q.handler(q.ctx, job); err == nil {
			return nil
		}
		if q.ctx.Err() != nil {
			return err
		}
		select {
		case <-q.ctx.Done():
			return err
		case <-time.After(q.retryDelay):
		}
	}
	return err
}
