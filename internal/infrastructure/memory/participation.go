package memory

import (
	"context"
	"sort"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

// ParticipationStore shares the lock and data of its parent Store so that
// presence confirmation can check the event status atomically.
type ParticipationStore struct {
	s *Store
}

func (ps *ParticipationStore) Create(ctx context.Context, participation *entities.Participation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[participation.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	if _, ok := ps.activeLocked(participation.EventID, participation.UserID); ok {
		return domain.ErrParticipationExists
	}
	s.nextPartID++
	now := s.now()
	participation.ID = s.nextPartID
	participation.CreatedAt = now
	participation.UpdatedAt = now
	if participation.Status == "" {
		participation.Status = domain.ParticipationPending
	}
	s.participations[participation.ID] = *participation
	return nil
}

func (ps *ParticipationStore) FindByID(ctx context.Context, id uint) (*entities.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	p, ok := ps.s.participations[id]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	return &p, nil
}

func (ps *ParticipationStore) FindByEventID(ctx context.Context, eventID uint) ([]entities.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	out := make([]entities.Participation, 0)
	for _, p := range ps.s.participations {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (ps *ParticipationStore) FindByEventIDAndUserID(ctx context.Context, eventID uint, userID string) (*entities.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	p, ok := ps.activeLocked(eventID, userID)
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	return &p, nil
}

func (ps *ParticipationStore) UpdateStatus(ctx context.Context, id uint, expected, next domain.ParticipationStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	p, ok := ps.s.participations[id]
	if !ok {
		return false, domain.ErrParticipationNotFound
	}
	if p.Status != expected {
		return false, nil
	}
	p.Status = next
	p.UpdatedAt = ps.s.now()
	ps.s.participations[id] = p
	return true, nil
}

func (ps *ParticipationStore) ConfirmPresence(ctx context.Context, id uint, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	p, ok := ps.s.participations[id]
	if !ok {
		return false, domain.ErrParticipationNotFound
	}
	e, ok := ps.s.events[p.EventID]
	if !ok {
		return false, domain.ErrEventNotFound
	}
	if p.Status != domain.ParticipationApproved || p.PresenceConfirmed {
		return false, nil
	}
	if e.Status != domain.StatusConfirmed && e.Status != domain.StatusInProgress {
		return false, nil
	}
	p.PresenceConfirmed = true
	p.PresenceConfirmedAt = at
	p.UpdatedAt = ps.s.now()
	ps.s.participations[id] = p
	return true, nil
}

func (ps *ParticipationStore) CountByEventIDAndStatus(ctx context.Context, eventID uint, status domain.ParticipationStatus) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	var n int64
	for _, p := range ps.s.participations {
		if p.EventID == eventID && p.Status == status {
			n++
		}
	}
	return n, nil
}

func (ps *ParticipationStore) activeLocked(eventID uint, userID string) (entities.Participation, bool) {
	for _, p := range ps.s.participations {
		if p.EventID == eventID && p.UserID == userID && p.Status != domain.ParticipationRejected {
			return p, true
		}
	}
	return entities.Participation{}, false
}
