package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

func seed(t *testing.T, s *Store, status domain.Status) *entities.Event {
	t.Helper()
	start := time.Now().Add(time.Hour)
	e := &entities.Event{
		CreatorID:          "creator",
		Title:              "Dinner",
		ScheduledStart:     start,
		ScheduledEnd:       start.Add(2 * time.Hour),
		EvaluationDeadline: start.Add(26 * time.Hour),
		MinParticipants:    2,
		Status:             status,
	}
	require.NoError(t, s.Create(context.Background(), e))
	return e
}

func TestStore_ConditionalUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply when the stored status matches", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		at := time.Now()

		applied, current, err := s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed, ChangedAt: at})

		req.NoError(err)
		req.True(applied)
		req.Equal(domain.StatusConfirmed, current.Status)
		req.Equal(at, current.StatusChangedAt)
		req.Empty(current.CancelReason)
	})

	t.Run("should return the stored record when the status moved", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusConfirmed)

		applied, current, err := s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed})

		req.NoError(err)
		req.False(applied)
		req.Equal(domain.StatusConfirmed, current.Status)
	})

	t.Run("should only keep the cancel reason on cancellation", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)

		_, current, err := s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed, CancelReason: "stray"})
		req.NoError(err)
		req.Empty(current.CancelReason)

		_, current, err = s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusConfirmed, entities.StatusChange{Status: domain.StatusCancelled, CancelReason: "no-show risk"})
		req.NoError(err)
		req.Equal("no-show risk", current.CancelReason)
	})

	t.Run("should fail on unknown events", func(t *testing.T) {
		_, _, err := NewStore().ConditionalUpdateStatus(ctx, 42, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed})
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("should let exactly one of concurrent writers win", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)

		const writers = 16
		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				applied, _, err := s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed, ChangedAt: time.Now()})
				if err == nil && applied {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		req.Equal(int32(1), wins.Load())
	})

	t.Run("should honour a cancelled context", func(t *testing.T) {
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := s.ConditionalUpdateStatus(cctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_Queries(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	s := NewStore()
	open := seed(t, s, domain.StatusOpen)
	seed(t, s, domain.StatusCancelled)
	finished := seed(t, s, domain.StatusFinished)

	active, err := s.FindActive(ctx)
	req.NoError(err)
	req.Len(active, 2)
	req.Equal(open.ID, active[0].ID)
	req.Equal(finished.ID, active[1].ID)

	mine, err := s.FindByCreatorID(ctx, "creator")
	req.NoError(err)
	req.Len(mine, 3)

	_, err = s.FindByID(ctx, 99)
	req.ErrorIs(err, domain.ErrEventNotFound)
}

func TestParticipationStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should refuse a second active participation", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		ps := s.Participations()

		req.NoError(ps.Create(ctx, &entities.Participation{EventID: e.ID, UserID: "guest"}))
		req.ErrorIs(ps.Create(ctx, &entities.Participation{EventID: e.ID, UserID: "guest"}), domain.ErrParticipationExists)
	})

	t.Run("should allow applying again after a rejection", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		ps := s.Participations()
		p := &entities.Participation{EventID: e.ID, UserID: "guest"}
		req.NoError(ps.Create(ctx, p))

		ok, err := ps.UpdateStatus(ctx, p.ID, domain.ParticipationPending, domain.ParticipationRejected)
		req.NoError(err)
		req.True(ok)

		_, err = ps.FindByEventIDAndUserID(ctx, e.ID, "guest")
		req.ErrorIs(err, domain.ErrParticipationNotFound)
		req.NoError(ps.Create(ctx, &entities.Participation{EventID: e.ID, UserID: "guest"}))
	})

	t.Run("should derive the confirmed participant count", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		ps := s.Participations()
		for _, user := range []string{"a", "b", "c"} {
			p := &entities.Participation{EventID: e.ID, UserID: user}
			req.NoError(ps.Create(ctx, p))
			if user != "c" {
				_, err := ps.UpdateStatus(ctx, p.ID, domain.ParticipationPending, domain.ParticipationApproved)
				req.NoError(err)
			}
		}

		got, err := s.FindByID(ctx, e.ID)
		req.NoError(err)
		req.Equal(2, got.ConfirmedParticipantCount)

		n, err := ps.CountByEventIDAndStatus(ctx, e.ID, domain.ParticipationPending)
		req.NoError(err)
		req.Equal(int64(1), n)
	})

	t.Run("should only confirm presence while the event is confirmed or in progress", func(t *testing.T) {
		req := require.New(t)
		s := NewStore()
		e := seed(t, s, domain.StatusOpen)
		ps := s.Participations()
		p := &entities.Participation{EventID: e.ID, UserID: "guest", Status: domain.ParticipationApproved}
		req.NoError(ps.Create(ctx, p))

		ok, err := ps.ConfirmPresence(ctx, p.ID, time.Now())
		req.NoError(err)
		req.False(ok)

		_, _, err = s.ConditionalUpdateStatus(ctx, e.ID, domain.StatusOpen, entities.StatusChange{Status: domain.StatusConfirmed})
		req.NoError(err)

		ok, err = ps.ConfirmPresence(ctx, p.ID, time.Now())
		req.NoError(err)
		req.True(ok)

		ok, err = ps.ConfirmPresence(ctx, p.ID, time.Now())
		req.NoError(err)
		req.False(ok)
	})
}
