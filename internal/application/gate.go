package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
	"tablemate/internal/ports/output"
)

const defaultPersistenceTimeout = 5 * time.Second

// ResultKind is the typed outcome of a transition attempt.
type ResultKind int

const (
	ResultApplied ResultKind = iota
	ResultNoOp
	ResultConflict
	ResultInvalidTransition
	ResultNotAuthorized
)

func (k ResultKind) String() string {
	switch k {
	case ResultApplied:
		return "applied"
	case ResultNoOp:
		return "noop"
	case ResultConflict:
		return "conflict"
	case ResultInvalidTransition:
		return "invalid_transition"
	case ResultNotAuthorized:
		return "not_authorized"
	default:
		return "unknown"
	}
}

// Result is returned by Gate.AttemptTransition. Event holds the stored record
// after the call for Applied and Conflict, and may be nil otherwise.
type Result struct {
	Kind   ResultKind
	Event  *entities.Event
	Reason string
	cause  error
}

// Err maps the result to a domain error, nil for Applied and NoOp.
func (r Result) Err() error {
	if r.cause != nil {
		return r.cause
	}
	switch r.Kind {
	case ResultConflict:
		return domain.ErrConflict
	case ResultInvalidTransition:
		return domain.ErrInvalidTransition
	case ResultNotAuthorized:
		return domain.ErrNotAuthorized
	default:
		return nil
	}
}

// TransitionRequest asks the gate to move EventID from Expected to Target.
type TransitionRequest struct {
	EventID  uint
	Expected domain.Status
	Target   domain.Status
	Manual   bool
	ActorID  string // required when Manual
	Reason   string // cancel reason
}

// Gate decides whether a transition is legal and persists it with a
// conditional write. It holds no lock: the storage compare-and-swap is the
// only arbiter between concurrent callers.
type Gate struct {
	events   output.EventRepository
	clock    output.Clock
	notifier output.Notifier
	timeout  time.Duration
	log      *slog.Logger
}

func NewGate(
	events output.EventRepository,
	clock output.Clock,
	notifier output.Notifier,
	timeout time.Duration,
	log *slog.Logger,
) *Gate {
	if timeout <= 0 {
		timeout = defaultPersistenceTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		events:   events,
		clock:    clock,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

// AttemptTransition returns a typed Result for conflicts, illegal edges and
// authorization failures. The error is reserved for storage failures, which
// wrap domain.ErrPersistenceUnavailable, and for unknown events.
func (g *Gate) AttemptTransition(ctx context.Context, req TransitionRequest) (Result, error) {
	decision := lifecycle.Decide(req.Expected, req.Target, req.Manual)
	switch decision.Verdict {
	case lifecycle.VerdictNoOp:
		return Result{Kind: ResultNoOp}, nil
	case lifecycle.VerdictInvalid:
		g.log.Error("invalid transition requested",
			"event_id", req.EventID,
			"from", req.Expected,
			"to", req.Target,
			"manual", req.Manual,
			"reason", decision.Reason)
		return Result{Kind: ResultInvalidTransition, Reason: decision.Reason}, nil
	}

	reason := strings.TrimSpace(req.Reason)
	if req.Target == domain.StatusCancelled && reason == "" {
		return Result{Kind: ResultInvalidTransition, Reason: "missing cancel reason", cause: domain.ErrCancelReasonRequired}, nil
	}

	if decision.Edge.Trigger == lifecycle.TriggerManual {
		event, err := g.findEvent(ctx, req.EventID)
		if err != nil {
			return Result{}, err
		}
		if !event.IsCreator(req.ActorID) {
			g.log.Warn("manual transition denied",
				"event_id", req.EventID,
				"actor", req.ActorID,
				"to", req.Target)
			return Result{Kind: ResultNotAuthorized, Event: event}, nil
		}
	}

	change := entities.StatusChange{
		Status:    req.Target,
		ChangedAt: g.clock.Now(),
	}
	if req.Target == domain.StatusCancelled {
		change.CancelReason = reason
	}

	wctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	applied, current, err := g.events.ConditionalUpdateStatus(wctx, req.EventID, req.Expected, change)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: update status of event %d: %w", domain.ErrPersistenceUnavailable, req.EventID, err)
	}
	if !applied {
		g.log.Info("transition conflict",
			"event_id", req.EventID,
			"expected", req.Expected,
			"to", req.Target,
			"stored", storedStatus(current))
		return Result{Kind: ResultConflict, Event: current}, nil
	}

	g.log.Info("transition applied",
		"event_id", req.EventID,
		"from", req.Expected,
		"to", req.Target,
		"manual", req.Manual)
	g.notify(ctx, entities.Transition{
		Event:  derefEvent(current),
		From:   req.Expected,
		To:     req.Target,
		Manual: decision.Edge.Trigger == lifecycle.TriggerManual,
		Actor:  req.ActorID,
	})
	return Result{Kind: ResultApplied, Event: current}, nil
}

func (g *Gate) findEvent(ctx context.Context, id uint) (*entities.Event, error) {
	rctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	event, err := g.events.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read event %d: %w", domain.ErrPersistenceUnavailable, id, err)
	}
	return event, nil
}

func (g *Gate) notify(ctx context.Context, t entities.Transition) {
	if g.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()
	if err := g.notifier.NotifyTransition(nctx, t); err != nil {
		g.log.Warn("notify transition", "event_id", t.Event.ID, "to", t.To, "error", err)
	}
}

func storedStatus(e *entities.Event) domain.Status {
	if e == nil {
		return ""
	}
	return e.Status
}

func derefEvent(e *entities.Event) entities.Event {
	if e == nil {
		return entities.Event{}
	}
	return *e
}
