package domain

// Status is the life-cycle state of an event.
type Status string

const (
	StatusOpen       Status = "open"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Rank orders statuses along the time axis. Open and Confirmed share a rank
// since time alone never moves an event from one to the other. Cancelled is
// absorbing and ranks above everything.
func (s Status) Rank() int {
	switch s {
	case StatusOpen, StatusConfirmed:
		return 0
	case StatusInProgress:
		return 1
	case StatusFinished:
		return 2
	case StatusCompleted:
		return 3
	case StatusCancelled:
		return 4
	default:
		return -1
	}
}

// Order is the strict progression order used to reject stale reads: a
// confirmed event comes after an open one even though time did not move it.
func (s Status) Order() int {
	switch s {
	case StatusOpen:
		return 0
	case StatusConfirmed:
		return 1
	case StatusInProgress:
		return 2
	case StatusFinished:
		return 3
	case StatusCompleted:
		return 4
	case StatusCancelled:
		return 5
	default:
		return -1
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) Valid() bool {
	return s.Rank() >= 0
}

func (s Status) String() string {
	return string(s)
}

// ParticipationStatus is the approval state of a participation.
type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "pending"
	ParticipationApproved ParticipationStatus = "approved"
	ParticipationRejected ParticipationStatus = "rejected"
)

// EventKind distinguishes plain social events from institutional ones, which
// need an extra organisation-level approval.
type EventKind string

const (
	KindSocial        EventKind = "social"
	KindInstitutional EventKind = "institutional"
)
