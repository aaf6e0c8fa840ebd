package application

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/robfig/cron/v3"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
	"tablemate/internal/ports/output"
)

// RunnerConfig controls the central runner.
type RunnerConfig struct {
	// ResyncSchedule is a cron spec for reloading active events from storage.
	ResyncSchedule  string
	RetryMaxElapsed time.Duration
	RetryMaxTries   uint
	// NewBackOff builds the retry policy for transient storage failures.
	NewBackOff func() backoff.BackOff
}

func (c RunnerConfig) normalized() RunnerConfig {
	if c.ResyncSchedule == "" {
		c.ResyncSchedule = "@every 5m"
	}
	if c.RetryMaxElapsed <= 0 {
		c.RetryMaxElapsed = 30 * time.Second
	}
	if c.RetryMaxTries == 0 {
		c.RetryMaxTries = 5
	}
	if c.NewBackOff == nil {
		c.NewBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}
	return c
}

// Runner drives time-based transitions centrally, so events progress even
// when nobody is looking at them. Events are queued by the next instant at
// which their status can change.
type Runner struct {
	events output.EventRepository
	gate   *Gate
	clock  output.Clock
	cfg    RunnerConfig
	log    *slog.Logger

	mu    sync.Mutex
	queue thresholdQueue
	index map[uint]*thresholdItem
	wake  chan struct{}
}

func NewRunner(
	events output.EventRepository,
	gate *Gate,
	clock output.Clock,
	cfg RunnerConfig,
	log *slog.Logger,
) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		events: events,
		gate:   gate,
		clock:  clock,
		cfg:    cfg.normalized(),
		log:    log,
		index:  make(map[uint]*thresholdItem),
		wake:   make(chan struct{}, 1),
	}
}

// Track schedules e at its next threshold, or forgets it when terminal.
func (r *Runner) Track(e entities.Event) {
	at, ok := lifecycle.NextThreshold(e)

	r.mu.Lock()
	item, tracked := r.index[e.ID]
	switch {
	case !ok && tracked:
		heap.Remove(&r.queue, item.index)
		delete(r.index, e.ID)
	case !ok:
	case tracked:
		item.at = at
		heap.Fix(&r.queue, item.index)
	default:
		item = &thresholdItem{eventID: e.ID, at: at}
		heap.Push(&r.queue, item)
		r.index[e.ID] = item
	}
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of tracked events.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queue.Len()
}

// NextDue returns the earliest tracked threshold.
func (r *Runner) NextDue() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if head := r.queue.peek(); head != nil {
		return head.at, true
	}
	return time.Time{}, false
}

// Resync reloads every active event from storage.
func (r *Runner) Resync(ctx context.Context) error {
	events, err := r.events.FindActive(ctx)
	if err != nil {
		return fmt.Errorf("find active events: %w", err)
	}
	for i := range events {
		r.Track(events[i])
	}
	r.log.Info("runner resynced", "active_events", len(events))
	return nil
}

// RunDue processes every event whose threshold is at or before now and
// returns how many were processed.
func (r *Runner) RunDue(ctx context.Context) int {
	now := r.clock.Now()

	r.mu.Lock()
	var due []uint
	for {
		head := r.queue.peek()
		if head == nil || head.at.After(now) {
			break
		}
		heap.Pop(&r.queue)
		delete(r.index, head.eventID)
		due = append(due, head.eventID)
	}
	r.mu.Unlock()

	for _, id := range due {
		if err := ctx.Err(); err != nil {
			return 0
		}
		r.process(ctx, id)
	}
	return len(due)
}

func (r *Runner) process(ctx context.Context, eventID uint) {
	event, err := r.readWithRetry(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			r.log.Warn("tracked event disappeared", "event_id", eventID)
			return
		}
		r.log.Error("read event", "event_id", eventID, "error", err)
		r.requeueLater(eventID)
		return
	}

	target := lifecycle.Calculate(*event, r.clock.Now())
	if target == event.Status {
		r.Track(*event)
		return
	}

	res, err := r.attemptWithRetry(ctx, TransitionRequest{
		EventID:  eventID,
		Expected: event.Status,
		Target:   target,
	})
	if err != nil {
		r.log.Error("time transition failed", "event_id", eventID, "target", target, "error", err)
		r.requeueLater(eventID)
		return
	}

	switch res.Kind {
	case ResultApplied, ResultConflict:
		if res.Event != nil {
			r.Track(*res.Event)
		}
	case ResultNoOp:
		r.Track(*event)
	default:
		r.log.Error("runner dropped event", "event_id", eventID, "result", res.Kind, "reason", res.Reason)
	}
}

// requeueLater keeps an event whose processing failed so the next loop turn
// retries it.
func (r *Runner) requeueLater(eventID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[eventID]; ok {
		return
	}
	item := &thresholdItem{eventID: eventID, at: r.clock.Now().Add(r.cfg.RetryMaxElapsed)}
	heap.Push(&r.queue, item)
	r.index[eventID] = item
}

func (r *Runner) retryOptions() []backoff.RetryOption {
	return []backoff.RetryOption{
		backoff.WithBackOff(r.cfg.NewBackOff()),
		backoff.WithMaxElapsedTime(r.cfg.RetryMaxElapsed),
		backoff.WithMaxTries(r.cfg.RetryMaxTries),
	}
}

func (r *Runner) readWithRetry(ctx context.Context, eventID uint) (*entities.Event, error) {
	return backoff.Retry(ctx, func() (*entities.Event, error) {
		event, err := r.events.FindByID(ctx, eventID)
		if err != nil && errors.Is(err, domain.ErrEventNotFound) {
			return nil, backoff.Permanent(err)
		}
		return event, err
	}, r.retryOptions()...)
}

func (r *Runner) attemptWithRetry(ctx context.Context, req TransitionRequest) (Result, error) {
	return backoff.Retry(ctx, func() (Result, error) {
		res, err := r.gate.AttemptTransition(ctx, req)
		if err != nil && !domain.IsTransient(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, r.retryOptions()...)
}

// Run resyncs, then processes thresholds as they come due until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Resync(ctx); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(r.cfg.ResyncSchedule, func() {
		if err := r.Resync(ctx); err != nil {
			r.log.Error("scheduled resync", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule resync %q: %w", r.cfg.ResyncSchedule, err)
	}
	c.Start()
	defer c.Stop()

	for {
		r.RunDue(ctx)

		var timer *time.Timer
		var fire <-chan time.Time
		if at, ok := r.NextDue(); ok {
			timer = time.NewTimer(max(at.Sub(r.clock.Now()), 0))
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-fire:
		case <-r.wake:
			if timer != nil {
				timer.Stop()
			}
		}
	}
}
