package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound           = errors.New("event not found")
	ErrInvalidEvent            = errors.New("invalid event")
	ErrInvalidSchedule         = errors.New("scheduled start, end and evaluation deadline must be strictly increasing")
	ErrInvalidTransition       = errors.New("transition is not reachable from the current status")
	ErrConflict                = errors.New("event status changed concurrently")
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrNotAuthorized           = errors.New("only the creator can perform this action")
	ErrCancelReasonRequired    = errors.New("a cancel reason is required")
	ErrEventNotActive          = errors.New("event is no longer active")
	ErrParticipationNotFound   = errors.New("participation not found")
	ErrParticipationExists     = errors.New("participation already exists")
	ErrParticipationNotPending = errors.New("participation is not pending")
	ErrCreatorCannotApply      = errors.New("the creator cannot apply to their own event")
	ErrPresenceNotAllowed      = errors.New("presence can only be confirmed once the event is confirmed or in progress")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventNotFound, "event_not_found"},
	{ErrInvalidSchedule, "invalid_schedule"},
	{ErrInvalidEvent, "invalid_event"},
	{ErrInvalidTransition, "invalid_transition"},
	{ErrConflict, "conflict"},
	{ErrPersistenceUnavailable, "persistence_unavailable"},
	{ErrNotAuthorized, "not_authorized"},
	{ErrCancelReasonRequired, "cancel_reason_required"},
	{ErrEventNotActive, "event_not_active"},
	{ErrParticipationNotFound, "participation_not_found"},
	{ErrParticipationExists, "participation_exists"},
	{ErrParticipationNotPending, "participation_not_pending"},
	{ErrCreatorCannotApply, "creator_cannot_apply"},
	{ErrPresenceNotAllowed, "presence_not_allowed"},
}

// Code returns the stable code of the first domain error found in err's
// chain, or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	return errors.Is(err, ErrPersistenceUnavailable)
}
