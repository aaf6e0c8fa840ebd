package lifecycle

import (
	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

// Reasons returned by ChatAvailability.
const (
	ChatReasonCreator           = "creator"
	ChatReasonApproved          = "approved"
	ChatReasonNotParticipant    = "not_participant"
	ChatReasonPendingApproval   = "pending_approval"
	ChatReasonRejected          = "rejected"
	ChatReasonOrgApprovalNeeded = "org_approval_pending"
)

// Chat is the answer of ChatAvailability.
type Chat struct {
	Available bool
	Reason    string
}

// ChatAvailability tells whether a caller can use the event chat. It only
// depends on the caller's role and participation, never on the event status,
// so a recalculation race cannot toggle it.
func ChatAvailability(e entities.Event, p *entities.Participation, isCreator bool) Chat {
	if isCreator {
		return Chat{Available: true, Reason: ChatReasonCreator}
	}
	if p == nil {
		return Chat{Reason: ChatReasonNotParticipant}
	}
	switch p.Status {
	case domain.ParticipationApproved:
	case domain.ParticipationPending:
		return Chat{Reason: ChatReasonPendingApproval}
	default:
		return Chat{Reason: ChatReasonRejected}
	}
	if e.Kind == domain.KindInstitutional && !p.OrgApproved {
		return Chat{Reason: ChatReasonOrgApprovalNeeded}
	}
	return Chat{Available: true, Reason: ChatReasonApproved}
}

// Actions lists what the UI may offer for an event in a given status.
type Actions struct {
	CanConfirm         bool
	CanCancel          bool
	NeedsEvaluation    bool
	IsActive           bool
	CanConfirmPresence bool
}

func ActionsFor(s domain.Status) Actions {
	return Actions{
		CanConfirm:         s == domain.StatusOpen,
		CanCancel:          s == domain.StatusOpen || s == domain.StatusConfirmed,
		NeedsEvaluation:    s == domain.StatusFinished,
		IsActive:           !s.IsTerminal(),
		CanConfirmPresence: s == domain.StatusConfirmed || s == domain.StatusInProgress,
	}
}

// MeetsMinimum is informational; reaching the minimum never confirms an event.
func MeetsMinimum(e entities.Event) bool {
	return e.ConfirmedParticipantCount >= e.MinParticipants
}
