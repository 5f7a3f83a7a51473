package core

// Outcome reports what a controller operation did. Failures are outcomes,
// not errors: callers only ever see notifications.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeBusy
	OutcomeCompleted
	OutcomeAwaitingApproval
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeBusy:
		return "busy"
	case OutcomeCompleted:
		return "completed"
	case OutcomeAwaitingApproval:
		return "awaiting_approval"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
