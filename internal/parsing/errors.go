package parsing

import "fmt"

// MalformedResponseError indicates the model response could not be
// interpreted as structured data at all. Partial or oddly-shaped responses
// never produce this error; only a top-level decode failure does.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
