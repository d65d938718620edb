package session

import "errors"

// Outcome discriminates the three ways a login or registration can resolve.
// Pending is not a failure: the account exists but onboarding payment is
// still owed, and the caller must route to payment completion.
type Outcome int

const (
	OutcomeFailure Outcome = iota
	OutcomeSuccess
	OutcomePending
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePending:
		return "pending"
	default:
		return "failure"
	}
}

// Sentinel reasons carried on failure results, checkable with errors.Is.
var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("identifier and credential are required")
	// ErrUnsupportedRole marks a login that succeeded at the server for a
	// role this client does not serve.
	ErrUnsupportedRole = errors.New("role not supported on this platform")
)

// Result is the discriminated outcome of Login and Register. Callers branch
// on Outcome explicitly; session manager operations never panic or return
// raw transport errors.
type Result struct {
	Outcome Outcome

	// User is the authenticated profile on success, or the provisional
	// profile on pending.
	User *User

	// Message is human readable: the server's payload message when one was
	// present, otherwise a generic fallback.
	Message string

	// Reason carries a sentinel on failures (ErrValidation,
	// ErrUnsupportedRole) or the underlying request error. Nil on success
	// and pending.
	Reason error

	// Fee is the outstanding onboarding fee on pending registration results.
	Fee int
}

func failure(message string, reason error) Result {
	return Result{Outcome: OutcomeFailure, Message: message, Reason: reason}
}
