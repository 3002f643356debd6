package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/extract"
	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/parsing"
)

// ErrorKind classifies a pipeline failure. Every stage error is mapped to
// exactly one kind at the orchestrator boundary; raw lower-level errors never
// reach the caller unwrapped.
type ErrorKind string

// Pipeline error kinds.
const (
	// KindNoInput: neither uploaded bytes nor a stored-resume reference.
	KindNoInput ErrorKind = "no_input"
	// KindDocumentParse: the bytes are not a readable PDF.
	KindDocumentParse ErrorKind = "document_parse"
	// KindEmptyDocument: readable PDF with no extractable text.
	KindEmptyDocument ErrorKind = "empty_document"
	// KindUpstreamUnavailable: could not reach the model.
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// KindUpstreamRejected: the model declined the request.
	KindUpstreamRejected ErrorKind = "upstream_rejected"
	// KindMalformedResponse: the model output is not structured data.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// Error is the single error type surfaced by the pipeline. Message is
// suitable for direct display to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the pipeline error kind, or "" for non-pipeline errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// classify maps stage-specific errors into the pipeline taxonomy.
func classify(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	var docErr *extract.DocumentParseError
	if errors.As(err, &docErr) {
		return &Error{
			Kind:    KindDocumentParse,
			Message: "Could not read the uploaded resume. Please upload a valid PDF.",
			Cause:   err,
		}
	}

	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return &Error{
			Kind:    KindDocumentParse,
			Message: "Could not retrieve the stored resume file.",
			Cause:   err,
		}
	}

	var unavailErr *llm.UpstreamUnavailableError
	if errors.As(err, &unavailErr) {
		return &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "The extraction service is temporarily unavailable. Please try again.",
			Cause:   err,
		}
	}

	var rejectedErr *llm.UpstreamRejectedError
	if errors.As(err, &rejectedErr) {
		return &Error{
			Kind:    KindUpstreamRejected,
			Message: "The extraction service declined the request.",
			Cause:   err,
		}
	}

	var malformedErr *parsing.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return &Error{
			Kind:    KindMalformedResponse,
			Message: "Could not extract structured data from the resume. Please fill the form manually.",
			Cause:   err,
		}
	}

	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: "Resume extraction failed. Please try again or fill the form manually.",
		Cause:   err,
	}
}
