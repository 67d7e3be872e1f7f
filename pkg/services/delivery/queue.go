package delivery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	ErrQueueFull   = errors.New("delivery queue is full")
	ErrQueueClosed = errors.New("delivery queue is closed")
)

const (
	DefaultQueueSize   = 64
	DefaultMaxAttempts = 3
	DefaultBackoff     = 30 * time.Second
)

type Job struct {
	ID      string
	Message Message
}

type Settings struct {
	Size        int
	MaxAttempts int
	// Backoff grows linearly with the attempt number. Zero selects
	// DefaultBackoff.
	Backoff       time.Duration
	RatePerMinute int
	// Journal records job status changes; nil disables it.
	Journal Journal
}

func (s Settings) withDefaults() Settings {
	if s.Size <= 0 {
		s.Size = DefaultQueueSize
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.Backoff <= 0 {
		s.Backoff = DefaultBackoff
	}
	if s.Journal == nil {
		s.Journal = noopJournal{}
	}
	return s
}

// Queue sends report emails from a single background worker. Delivery is
// best effort: failed jobs are journaled after the last attempt and dropped.
type Queue struct {
	mailer   Mailer
	settings Settings
	journal  Journal
	limiter  *rate.Limiter
	jobs     chan Job

	mu     sync.RWMutex
	closed bool
	quit   chan struct{}
	done   chan struct{}
}

func NewQueue(mailer Mailer, settings Settings) *Queue {
	settings = settings.withDefaults()

	limit := rate.Inf
	if settings.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(settings.RatePerMinute))
	}

	return &Queue{
		mailer:   mailer,
		settings: settings,
		journal:  settings.Journal,
		limiter:  rate.NewLimiter(limit, 1),
		jobs:     make(chan Job, settings.Size),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Enqueue never blocks; a full buffer yields ErrQueueFull.
func (q *Queue) Enqueue(ctx context.Context, msg Message) (string, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return "", ErrQueueClosed
	}

	job := Job{ID: uuid.NewString(), Message: msg}
	q.record(ctx, job)

	select {
	case q.jobs <- job:
		return job.ID, nil
	default:
		q.update(ctx, job.ID, domain.DeliveryStatusFailed, 0, ErrQueueFull)
		return "", ErrQueueFull
	}
}

// Start runs the worker until ctx is cancelled or Stop is called. A cancelled
// ctx closes the queue and journals the jobs left in it as cancelled.
func (q *Queue) Start(ctx context.Context) {
	go func() {
		defer close(q.done)
		logger := zerolog.Ctx(ctx)
		logger.Info().Int("size", q.settings.Size).Msg("delivery worker started")

		for {
			select {
			case <-ctx.Done():
				q.abandon(ctx)
				return
			case <-q.quit:
				q.drain(ctx)
				return
			case job := <-q.jobs:
				q.process(ctx, job)
			}
		}
	}()
}

// Stop refuses new jobs and lets the worker flush what is already queued.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.quit)
}

func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// abandon closes the queue and marks every job still buffered as cancelled.
func (q *Queue) abandon(ctx context.Context) {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.quit)
	}
	q.mu.Unlock()

	for {
		select {
		case job := <-q.jobs:
			zerolog.Ctx(ctx).Warn().Str("job_id", job.ID).Msg("delivery cancelled before sending")
			q.update(ctx, job.ID, domain.DeliveryStatusCancelled, 0, ctx.Err())
		default:
			return
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case job := <-q.jobs:
			q.process(ctx, job)
		default:
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, job Job) {
	logger := zerolog.Ctx(ctx).With().
		Str("job_id", job.ID).
		Strs("to", job.Message.To).
		Logger()
	ctx = logger.WithContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= q.settings.MaxAttempts; attempt++ {
		if err := q.limiter.Wait(ctx); err != nil {
			logger.Warn().Err(err).Msg("delivery cancelled")
			q.update(ctx, job.ID, domain.DeliveryStatusCancelled, attempt-1, err)
			return
		}

		lastErr = q.mailer.Send(ctx, job.Message)
		if lastErr == nil {
			q.update(ctx, job.ID, domain.DeliveryStatusSent, attempt, nil)
			return
		}

		if ctx.Err() != nil {
			logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("delivery cancelled")
			q.update(ctx, job.ID, domain.DeliveryStatusCancelled, attempt, ctx.Err())
			return
		}

		logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("delivery attempt failed")
		if attempt == q.settings.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			q.update(ctx, job.ID, domain.DeliveryStatusCancelled, attempt, ctx.Err())
			return
		case <-time.After(time.Duration(attempt) * q.settings.Backoff):
		}
	}

	logger.Error().Int("attempts", q.settings.MaxAttempts).Msg("report delivery failed")
	q.update(ctx, job.ID, domain.DeliveryStatusFailed, q.settings.MaxAttempts, lastErr)
}

func (q *Queue) record(ctx context.Context, job Job) {
	entry := domain.DeliveryJob{
		ID:         job.ID,
		AccountID:  job.Message.AccountID,
		Family:     job.Message.Family,
		Recipients: job.Message.To,
		Status:     domain.DeliveryStatusPending,
	}
	if job.Message.Attachment != nil {
		entry.Filename = job.Message.Attachment.Filename
	}
	if err := q.journal.Record(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("job_id", job.ID).Msg("failed to journal delivery job")
	}
}

// update writes through cancellation so a stopped worker still leaves a final status.
func (q *Queue) update(ctx context.Context, id string, status domain.DeliveryStatus, attempts int, cause error) {
	if err := q.journal.Update(context.WithoutCancel(ctx), id, status, attempts, cause); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("job_id", id).Str("status", string(status)).
			Msg("failed to update delivery job")
	}
}
