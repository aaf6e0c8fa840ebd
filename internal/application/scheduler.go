package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
	"tablemate/internal/ports/output"
)

const defaultRecalcInterval = time.Minute

// StatusUpdate is published to subscribers whenever the cached status of a
// watched event moves forward.
type StatusUpdate struct {
	EventID uint
	From    domain.Status
	To      domain.Status
	Event   entities.Event
}

// Scheduler keeps the status of the events a client is looking at fresh. Each
// watched event gets its own periodic trigger that re-reads the stored record,
// so changes made by other clients show up on the next tick. Manual confirm and
// cancel go through the same per-event serialization so they never overlap a
// tick.
type Scheduler struct {
	gate     *Gate
	events   output.EventRepository
	clock    output.Clock
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger

	mu          sync.Mutex
	watches     map[uint]*watch
	subscribers []func(StatusUpdate)
}

type watch struct {
	id uint

	// inFlight serializes transition attempts for this event.
	inFlight sync.Mutex
	closing  atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}

	stateMu sync.RWMutex
	event   entities.Event
}

func (w *watch) snapshot() entities.Event {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.event
}

func NewScheduler(
	gate *Gate,
	events output.EventRepository,
	clock output.Clock,
	interval time.Duration,
	log *slog.Logger,
) *Scheduler {
	if interval <= 0 {
		interval = defaultRecalcInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		gate:     gate,
		events:   events,
		clock:    clock,
		interval: interval,
		timeout:  gate.timeout,
		log:      log,
		watches:  make(map[uint]*watch),
	}
}

// Subscribe registers fn for status updates of every watched event. fn runs on
// the goroutine that observed the change and must not block.
func (s *Scheduler) Subscribe(fn func(StatusUpdate)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Watch loads the event and starts its periodic recalculation. Watching an
// event twice is a no-op.
func (s *Scheduler) Watch(ctx context.Context, eventID uint) error {
	s.mu.Lock()
	if _, ok := s.watches[eventID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	event, err := s.fetch(ctx, eventID)
	if err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w := &watch{
		id:     eventID,
		cancel: cancel,
		done:   make(chan struct{}),
		event:  *event,
	}

	s.mu.Lock()
	if _, ok := s.watches[eventID]; ok {
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.watches[eventID] = w
	s.mu.Unlock()

	go s.loop(loopCtx, w)
	return nil
}

// Unwatch stops the periodic trigger of eventID and waits for its loop to
// exit. A transition attempt already issued is allowed to finish; no new one
// starts once Unwatch has been called.
func (s *Scheduler) Unwatch(eventID uint) {
	s.mu.Lock()
	w, ok := s.watches[eventID]
	if ok {
		w.closing.Store(true)
		delete(s.watches, eventID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	w.cancel()
	<-w.done
}

// Close unwatches every event.
func (s *Scheduler) Close() {
	s.mu.Lock()
	ids := make([]uint, 0, len(s.watches))
	for id := range s.watches {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Unwatch(id)
	}
}

// Status returns the cached status of a watched event.
func (s *Scheduler) Status(eventID uint) (domain.Status, bool) {
	w := s.lookup(eventID)
	if w == nil {
		return "", false
	}
	return w.snapshot().Status, true
}

// Confirm manually confirms an open event on behalf of actorID.
func (s *Scheduler) Confirm(ctx context.Context, eventID uint, actorID string) (Result, error) {
	return s.manual(ctx, eventID, actorID, domain.StatusConfirmed, "")
}

// Cancel manually cancels an open or confirmed event on behalf of actorID.
func (s *Scheduler) Cancel(ctx context.Context, eventID uint, actorID, reason string) (Result, error) {
	return s.manual(ctx, eventID, actorID, domain.StatusCancelled, reason)
}

// Recalculate runs one tick for a watched event right away. It reports false
// when the tick was skipped because another attempt was in flight or the
// event is not watched.
func (s *Scheduler) Recalculate(ctx context.Context, eventID uint) bool {
	w := s.lookup(eventID)
	if w == nil {
		return false
	}
	return s.tick(ctx, w)
}

func (s *Scheduler) loop(ctx context.Context, w *watch) {
	defer close(w.done)
	s.tick(ctx, w)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, w)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, w *watch) bool {
	if !w.inFlight.TryLock() {
		s.log.Debug("tick skipped, attempt in flight", "event_id", w.id)
		return false
	}
	defer w.inFlight.Unlock()
	if w.closing.Load() {
		return false
	}

	if stored, err := s.fetch(context.WithoutCancel(ctx), w.id); err != nil {
		s.log.Warn("refresh failed, using cached record", "event_id", w.id, "error", err)
	} else {
		s.adopt(w, *stored)
	}

	current := w.snapshot()
	target := lifecycle.Calculate(current, s.clock.Now())
	if target == current.Status {
		return true
	}

	res, err := s.gate.AttemptTransition(context.WithoutCancel(ctx), TransitionRequest{
		EventID:  w.id,
		Expected: current.Status,
		Target:   target,
	})
	if err != nil {
		s.log.Warn("recalculation failed", "event_id", w.id, "target", target, "error", err)
		return true
	}
	s.reconcile(ctx, w, res)
	return true
}

func (s *Scheduler) manual(ctx context.Context, eventID uint, actorID string, target domain.Status, reason string) (Result, error) {
	req := TransitionRequest{
		EventID: eventID,
		Target:  target,
		Manual:  true,
		ActorID: actorID,
		Reason:  reason,
	}
	if w := s.lookup(eventID); w != nil {
		w.inFlight.Lock()
		if !w.closing.Load() {
			defer w.inFlight.Unlock()
			req.Expected = w.snapshot().Status
			res, err := s.gate.AttemptTransition(ctx, req)
			if err != nil {
				return Result{}, err
			}
			s.reconcile(ctx, w, res)
			return res, nil
		}
		// torn down while waiting: act as if the event was never watched
		w.inFlight.Unlock()
	}

	event, err := s.fetch(ctx, eventID)
	if err != nil {
		return Result{}, err
	}
	req.Expected = event.Status
	return s.gate.AttemptTransition(ctx, req)
}

// reconcile adopts the record returned by the gate. On conflict the
// authoritative record replaces the local one and the original transition is
// not retried; the next tick starts from the corrected baseline.
func (s *Scheduler) reconcile(ctx context.Context, w *watch, res Result) {
	switch res.Kind {
	case ResultApplied:
		if res.Event != nil {
			s.adopt(w, *res.Event)
		}
	case ResultConflict:
		event := res.Event
		if event == nil {
			fetched, err := s.fetch(context.WithoutCancel(ctx), w.id)
			if err != nil {
				s.log.Warn("re-read after conflict", "event_id", w.id, "error", err)
				return
			}
			event = fetched
		}
		s.adopt(w, *event)
	}
}

// adopt replaces the cached record unless it would move the status backward,
// which only a stale read can cause.
func (s *Scheduler) adopt(w *watch, event entities.Event) {
	w.stateMu.Lock()
	prev := w.event.Status
	if event.Status.Order() < prev.Order() {
		w.stateMu.Unlock()
		s.log.Debug("ignoring stale record", "event_id", w.id, "cached", prev, "stored", event.Status)
		return
	}
	w.event = event
	w.stateMu.Unlock()

	if prev == event.Status {
		return
	}
	s.mu.Lock()
	subs := append([]func(StatusUpdate){}, s.subscribers...)
	s.mu.Unlock()
	update := StatusUpdate{EventID: w.id, From: prev, To: event.Status, Event: event}
	for _, fn := range subs {
		fn(update)
	}
}

func (s *Scheduler) lookup(eventID uint) *watch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watches[eventID]
}

func (s *Scheduler) fetch(ctx context.Context, eventID uint) (*entities.Event, error) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	event, err := s.events.FindByID(rctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read event %d: %w", domain.ErrPersistenceUnavailable, eventID, err)
	}
	return event, nil
}
