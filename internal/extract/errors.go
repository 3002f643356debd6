package extract

import "fmt"

// DocumentParseError indicates the supplied bytes are not a readable PDF
// (or exceed the configured size limit).
type DocumentParseError struct {
	Message string
	Cause   error
}

func (e *DocumentParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document parse error: %s", e.Message)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Cause
}
