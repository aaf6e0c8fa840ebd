package lifecycle

import "tablemate/internal/domain"

// Trigger tells who may drive an edge.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerTime   Trigger = "time"
)

// Edge is a single allowed transition of the state machine.
type Edge struct {
	From    domain.Status
	To      domain.Status
	Trigger Trigger
}

// Time edges include forward jumps over missed thresholds: a client asleep
// during the whole event must be able to go straight to completed.
var edges = []Edge{
	// Manual
	{From: domain.StatusOpen, To: domain.StatusConfirmed, Trigger: TriggerManual},
	{From: domain.StatusOpen, To: domain.StatusCancelled, Trigger: TriggerManual},
	{From: domain.StatusConfirmed, To: domain.StatusCancelled, Trigger: TriggerManual},

	// Time
	{From: domain.StatusConfirmed, To: domain.StatusInProgress, Trigger: TriggerTime},
	{From: domain.StatusInProgress, To: domain.StatusFinished, Trigger: TriggerTime},
	{From: domain.StatusFinished, To: domain.StatusCompleted, Trigger: TriggerTime},

	// Time, skipped thresholds
	{From: domain.StatusOpen, To: domain.StatusInProgress, Trigger: TriggerTime},
	{From: domain.StatusOpen, To: domain.StatusFinished, Trigger: TriggerTime},
	{From: domain.StatusOpen, To: domain.StatusCompleted, Trigger: TriggerTime},
	{From: domain.StatusConfirmed, To: domain.StatusFinished, Trigger: TriggerTime},
	{From: domain.StatusConfirmed, To: domain.StatusCompleted, Trigger: TriggerTime},
	{From: domain.StatusInProgress, To: domain.StatusCompleted, Trigger: TriggerTime},
}

// EdgeFor returns the allowed edge from -> to.
func EdgeFor(from, to domain.Status) (Edge, bool) {
	for _, e := range edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// Verdict is the outcome of checking a requested transition.
type Verdict int

const (
	VerdictInvalid Verdict = iota
	VerdictNoOp
	VerdictAllowed
)

// Decision records whether a transition may be persisted and why not.
type Decision struct {
	Verdict Verdict
	Edge    Edge
	Reason  string
}

// Decide checks from -> to for a caller that is (or is not) performing a
// manual action. Staying in the same status is a no-op; nothing ever leaves
// a terminal status.
func Decide(from, to domain.Status, manual bool) Decision {
	if from == to {
		return Decision{Verdict: VerdictNoOp}
	}
	if from.IsTerminal() {
		return Decision{Verdict: VerdictInvalid, Reason: "status " + from.String() + " is terminal"}
	}
	edge, ok := EdgeFor(from, to)
	if !ok {
		return Decision{Verdict: VerdictInvalid, Reason: "no edge from " + from.String() + " to " + to.String()}
	}
	if edge.Trigger == TriggerManual && !manual {
		return Decision{Verdict: VerdictInvalid, Edge: edge, Reason: "edge requires a manual action"}
	}
	return Decision{Verdict: VerdictAllowed, Edge: edge}
}
