// Package dispatch runs notification jobs off the request path. A quote
// submission enqueues a job and returns; a worker goroutine drains the
// queue with bounded retries. Failures are logged, never surfaced to the
// submitting client; the record is already durably stored by then.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"go.uber.org/zap"
)

// Job identifies one persisted quote whose notifications should go out.
type Job struct {
	QuoteID   uuid.UUID
	ImageURLs []string
}

// HandlerFunc processes one job. A nil return marks the job done.
type HandlerFunc func(ctx context.Context, job Job) error

// Queue is a bounded in-process notification queue.
type Queue struct {
	jobs        chan Job
	handler     HandlerFunc
	maxAttempts int

	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

// NewQueue creates a queue holding up to size pending jobs. Each job is
// attempted up to maxAttempts times with exponential backoff.
func NewQueue(size, maxAttempts int, handler HandlerFunc) *Queue {
	if size <= 0 {
		size = 64
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Queue{
		jobs:        make(chan Job, size),
		handler:     handler,
		maxAttempts: maxAttempts,
		stopCh:      make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go q.run(ctx)
	logger.Info("Notification dispatch queue started", zap.Int("capacity", cap(q.jobs)))
}

// Stop signals the worker to finish the in-flight job and exit. Jobs still
// waiting in the queue are dropped and logged.
func (q *Queue) Stop() {
	q.once.Do(func() { close(q.stopCh) })

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Notification dispatch queue stopped")
	case <-time.After(10 * time.Second):
		logger.Warn("Notification dispatch queue shutdown timeout exceeded")
	}

	if pending := len(q.jobs); pending > 0 {
		logger.Warn("Dropping undispatched notification jobs", zap.Int("count", pending))
	}
}

// Enqueue submits a job without blocking. When the queue is full the job
// is dropped and logged; the caller's response is never delayed.
func (q *Queue) Enqueue(job Job) bool {
	select {
	case q.jobs <- job:
		metrics.DispatchQueueDepth.Set(float64(len(q.jobs)))
		return true
	default:
		logger.Error("Notification dispatch queue full, dropping job",
			zap.String("quote_id", job.QuoteID.String()))
		return false
	}
}

func (q *Queue) run(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-q.stopCh:
			return
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			metrics.DispatchQueueDepth.Set(float64(len(q.jobs)))
			q.process(ctx, job)
		}
	}
}

func (q *Queue) process(ctx context.Context, job Job) {
	backoff := time.Second

	for attempt := 1; attempt <= q.maxAttempts; attempt++ {
		err := q.handler(ctx, job)
		if err == nil {
			return
		}

		logger.Warn("Notification dispatch attempt failed",
			zap.String("quote_id", job.QuoteID.String()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", q.maxAttempts),
			zap.Error(err))

		if attempt == q.maxAttempts {
			logger.Error("Notification dispatch abandoned",
				zap.String("quote_id", job.QuoteID.String()),
				zap.Error(err))
			return
		}

		select {
		case <-time.After(backoff):
		case <-q.stopCh:
			return
		case <-ctx.Done():
			return
		}
		backoff *= 2
	}
}
