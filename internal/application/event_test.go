package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tablemate/internal/domain"
	"tablemate/internal/infrastructure/clock"
	"tablemate/internal/mocks"
)

func validDraft() EventDraft {
	return EventDraft{
		CreatorID:          "creator",
		Title:              "  Sushi night  ",
		ScheduledStart:     base.Add(24 * time.Hour),
		ScheduledEnd:       base.Add(26 * time.Hour),
		EvaluationDeadline: base.Add(50 * time.Hour),
		MinParticipants:    3,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("should store an open event and schedule it", func(t *testing.T) {
		req := require.New(t)
		e := newEnv(t)
		tracker := &recordingTracker{}
		svc := NewEventService(e.store, e.store.Participations(), e.clock, tracker)

		event, err := svc.CreateEvent(ctx, validDraft())

		req.NoError(err)
		req.NotZero(event.ID)
		req.Equal("Sushi night", event.Title)
		req.Equal(domain.KindSocial, event.Kind)
		req.Equal(domain.StatusOpen, event.Status)
		req.Equal(base, event.StatusChangedAt)
		req.Len(tracker.tracked, 1)
		req.Equal(event.ID, tracker.tracked[0].ID)

		stored, err := svc.GetEventByID(ctx, event.ID)
		req.NoError(err)
		req.Equal(event.Title, stored.Title)

		mine, err := svc.GetEventsByCreatorID(ctx, "creator")
		req.NoError(err)
		req.Len(mine, 1)
	})

	t.Run("should reject invalid drafts before touching storage", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*EventDraft)
		}{
			{"missing creator", func(d *EventDraft) { d.CreatorID = "" }},
			{"blank title", func(d *EventDraft) { d.Title = "   " }},
			{"unknown kind", func(d *EventDraft) { d.Kind = "party" }},
			{"missing end", func(d *EventDraft) { d.ScheduledEnd = time.Time{} }},
			{"no participants", func(d *EventDraft) { d.MinParticipants = 0 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := require.New(t)
				ctrl := gomock.NewController(t)
				events := mocks.NewMockEventRepository(ctrl)
				events.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				svc := NewEventService(events, mocks.NewMockParticipationRepository(ctrl), clock.NewManual(base), nil)

				draft := validDraft()
				tt.mutate(&draft)
				_, err := svc.CreateEvent(ctx, draft)

				req.ErrorIs(err, domain.ErrInvalidEvent)
				req.Equal("invalid_event", domain.Code(err))
			})
		}
	})
}

func TestEventService_CreateEvent_Schedule(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EventDraft)
	}{
		{"end before start", func(d *EventDraft) { d.ScheduledEnd = d.ScheduledStart.Add(-time.Minute) }},
		{"end equals start", func(d *EventDraft) { d.ScheduledEnd = d.ScheduledStart }},
		{"deadline before end", func(d *EventDraft) { d.EvaluationDeadline = d.ScheduledEnd.Add(-time.Minute) }},
		{"deadline equals end", func(d *EventDraft) { d.EvaluationDeadline = d.ScheduledEnd }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			events := mocks.NewMockEventRepository(ctrl)
			events.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			svc := NewEventService(events, mocks.NewMockParticipationRepository(ctrl), clock.NewManual(base), nil)

			draft := validDraft()
			tt.mutate(&draft)
			_, err := svc.CreateEvent(context.Background(), draft)

			req.ErrorIs(err, domain.ErrInvalidSchedule)
			req.NotErrorIs(err, domain.ErrInvalidEvent)
			req.Equal("invalid_schedule", domain.Code(err))
		})
	}
}

func TestEventService_DescribeEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("should base actions on the stored status even when a transition is due", func(t *testing.T) {
		req := require.New(t)
		e := newEnv(t)
		e.store.Put(fixture(1, domain.StatusConfirmed))
		e.clock.Set(base.Add(2 * time.Hour))
		svc := NewEventService(e.store, e.store.Participations(), e.clock, nil)

		view, err := svc.DescribeEvent(ctx, 1)

		req.NoError(err)
		req.Equal(domain.StatusConfirmed, view.Event.Status)
		req.Equal(domain.StatusInProgress, view.Derived)
		req.True(view.Actions.CanCancel)
		req.False(view.MeetsMinimum)
	})

	t.Run("should fail on unknown events", func(t *testing.T) {
		e := newEnv(t)
		svc := NewEventService(e.store, e.store.Participations(), e.clock, nil)
		_, err := svc.DescribeEvent(ctx, 3)
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}
