package llm

import "fmt"

// UpstreamUnavailableError indicates the model endpoint could not be reached
// or did not answer in time (network failure, timeout, 5xx).
type UpstreamUnavailableError struct {
	Message string
	Cause   error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model unavailable: %s", e.Message)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Cause
}

// UpstreamRejectedError indicates the model endpoint answered but declined
// the request (quota exhausted, policy block, invalid request).
type UpstreamRejectedError struct {
	Message string
	Cause   error
}

func (e *UpstreamRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model rejected request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model rejected request: %s", e.Message)
}

func (e *UpstreamRejectedError) Unwrap() error {
	return e.Cause
}
