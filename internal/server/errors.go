package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
// Input problems are the client's fault; upstream problems are gateway
// conditions.
func HTTPStatus(err error) int {
	switch pipeline.KindOf(err) {
	case pipeline.KindNoInput:
		return http.StatusBadRequest
	case pipeline.KindDocumentParse, pipeline.KindEmptyDocument, pipeline.KindMalformedResponse:
		return http.StatusUnprocessableEntity
	case pipeline.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case pipeline.KindUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// displayMessage returns the user-facing message for a pipeline error, or a
// generic fallback for anything else.
func displayMessage(err error) string {
	var pe *pipeline.Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return "Could not extract the resume. Please fill the form manually."
}
