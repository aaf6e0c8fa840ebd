// Package memory provides in-process implementations of the storage ports.
// They honour the same conditional-write contract as PostgreSQL and back the
// "memory" storage mode and the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/ports/output"
)

var (
	_ output.EventRepository         = (*Store)(nil)
	_ output.ParticipationRepository = (*ParticipationStore)(nil)
)

// Store keeps events and participations behind a single mutex, which makes
// every conditional update atomic.
type Store struct {
	mu             sync.Mutex
	events         map[uint]entities.Event
	participations map[uint]entities.Participation
	nextEventID    uint
	nextPartID     uint
	now            func() time.Time
}

func NewStore() *Store {
	return &Store{
		events:         make(map[uint]entities.Event),
		participations: make(map[uint]entities.Participation),
		now:            time.Now,
	}
}

// Participations exposes the participation side of the store.
func (s *Store) Participations() *ParticipationStore {
	return &ParticipationStore{s: s}
}

func (s *Store) Create(ctx context.Context, event *entities.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEventID++
	now := s.now()
	event.ID = s.nextEventID
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Status == "" {
		event.Status = domain.StatusOpen
	}
	if event.StatusChangedAt.IsZero() {
		event.StatusChangedAt = now
	}
	event.ConfirmedParticipantCount = 0
	s.events[event.ID] = *event
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.eventLocked(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (s *Store) FindByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error) {
	return s.filter(ctx, func(e entities.Event) bool { return e.CreatorID == creatorID })
}

func (s *Store) FindActive(ctx context.Context) ([]entities.Event, error) {
	return s.filter(ctx, func(e entities.Event) bool { return !e.Status.IsTerminal() })
}

func (s *Store) ConditionalUpdateStatus(ctx context.Context, id uint, expected domain.Status, change entities.StatusChange) (bool, *entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.eventLocked(id)
	if !ok {
		return false, nil, domain.ErrEventNotFound
	}
	if e.Status != expected {
		return false, &e, nil
	}
	e.Status = change.Status
	e.StatusChangedAt = change.ChangedAt
	e.CancelReason = ""
	if change.Status == domain.StatusCancelled {
		e.CancelReason = change.CancelReason
	}
	e.UpdatedAt = s.now()
	s.events[id] = e
	return true, &e, nil
}

// Put stores e as is, replacing any event with the same id.
func (s *Store) Put(e entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID > s.nextEventID {
		s.nextEventID = e.ID
	}
	s.events[e.ID] = e
}

func (s *Store) filter(ctx context.Context, keep func(entities.Event) bool) ([]entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Event, 0)
	for id := range s.events {
		e, _ := s.eventLocked(id)
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// eventLocked returns the event with its derived participant count.
func (s *Store) eventLocked(id uint) (entities.Event, bool) {
	e, ok := s.events[id]
	if !ok {
		return entities.Event{}, false
	}
	count := 0
	for _, p := range s.participations {
		if p.EventID == id && p.Status == domain.ParticipationApproved {
			count++
		}
	}
	e.ConfirmedParticipantCount = count
	return e, true
}
