package checkout

import "errors"

const (
	MsgMissingFields = "Missing plan or userId"
	MsgInvalidPlan   = "Invalid plan"
)

var (
	ErrUpstream             = errors.New("checkout upstream failure")
	ErrProviderUnconfigured = errors.New("payment processor not configured")
)

// ValidationError is a rejected checkout request. Message is shown to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
