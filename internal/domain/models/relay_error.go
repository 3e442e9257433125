package models

import "fmt"

// RelayErrorKind tags why a relay call failed.
type RelayErrorKind int

const (
	UnknownFailure RelayErrorKind = iota
	NetworkFailure
	UpstreamFailure
)

func (k RelayErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return OutcomeNetworkFailure
	case UpstreamFailure:
		return OutcomeUpstreamFailure
	default:
		return OutcomeUnknown
	}
}

// RelayError is a classified upstream failure. Status is set for UpstreamFailure only.
type RelayError struct {
	Kind   RelayErrorKind
	Status int
	Err    error
}

func (e *RelayError) Error() string {
	switch e.Kind {
	case UpstreamFailure:
		return fmt.Sprintf("upstream failure: status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *RelayError) Unwrap() error { return e.Err }
