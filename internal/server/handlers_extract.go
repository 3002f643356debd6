package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-builder/internal/pipeline"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// maxUploadBytes caps multipart upload size before the extractor's own limit.
const maxUploadBytes = 12 << 20

// ExtractResponse represents the response for a successful extraction.
type ExtractResponse struct {
	Portfolio types.PortfolioData `json:"portfolio"`
	Length    string              `json:"length"`
	Model     string              `json:"model"`
}

// handleExtract runs the extraction pipeline. The request is either multipart
// form data with a "resume" file, or a JSON body referencing a stored resume
// by ID or URL. Concurrent submissions for the same user share a single run.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, fileBytes, status, errMsg := s.parseExtractRequest(r)
	if errMsg != "" {
		s.errorResponse(w, status, errMsg)
		return
	}

	// A second submission while one is in flight must not start a second
	// model call against the same portfolio; it joins the first run instead.
	result, err, _ := s.extractions.Do(req.UserID, func() (any, error) {
		return s.runExtraction(r, req, fileBytes)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), displayMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// parseExtractRequest normalizes the two request forms into an
// ExtractRequest plus optional uploaded bytes.
func (s *Server) parseExtractRequest(r *http.Request) (*types.ExtractRequest, []byte, int, string) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, nil, http.StatusBadRequest, "Invalid multipart form: " + err.Error()
		}

		req := &types.ExtractRequest{
			UserID: r.FormValue("user_id"),
			Query:  r.FormValue("query"),
			Length: r.FormValue("length"),
		}

		var fileBytes []byte
		if file, _, err := r.FormFile("resume"); err == nil {
			defer func() { _ = file.Close() }()
			fileBytes, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if err != nil {
				return nil, nil, http.StatusBadRequest, "Failed to read uploaded file"
			}
		}

		if err := req.Validate(); err != nil {
			return nil, nil, http.StatusBadRequest, "Invalid request: " + err.Error()
		}
		return req, fileBytes, 0, ""
	}

	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, http.StatusBadRequest, "Invalid request body: " + err.Error()
	}
	if err := req.Validate(); err != nil {
		return nil, nil, http.StatusBadRequest, "Invalid request: " + err.Error()
	}
	return &req, nil, 0, ""
}

// effectiveLength applies the configured default length when the request
// omits a hint. The pipeline still falls back to medium if neither is set.
func (s *Server) effectiveLength(requested string) prompts.Length {
	if requested != "" {
		return prompts.Length(requested)
	}
	return prompts.Length(s.defaultLength)
}

// runExtraction resolves the stored-resume reference, loads the user's
// current portfolio, and executes the pipeline.
func (s *Server) runExtraction(r *http.Request, req *types.ExtractRequest, fileBytes []byte) (*ExtractResponse, error) {
	ctx := r.Context()

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, &pipeline.Error{Kind: pipeline.KindNoInput, Message: "Invalid user ID."}
	}

	// A stored resume ID resolves to bytes directly; a URL is fetched by the
	// pipeline. Uploaded bytes always win.
	if len(fileBytes) == 0 && req.ResumeID != "" {
		resumeID, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return nil, &pipeline.Error{Kind: pipeline.KindNoInput, Message: "Invalid resume ID."}
		}
		resume, err := s.db.GetResume(ctx, resumeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load stored resume: %w", err)
		}
		if resume == nil || resume.UserID != userID {
			return nil, &pipeline.Error{Kind: pipeline.KindNoInput, Message: "Stored resume not found."}
		}
		fileBytes = resume.Content
	}

	current, err := s.db.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		FileBytes:        fileBytes,
		ResumeURL:        req.ResumeURL,
		Query:            req.Query,
		Length:           s.effectiveLength(req.Length),
		Current:          current,
		Client:           s.llmClient,
		MaxDocumentBytes: s.maxDocumentBytes,
	})
	if err != nil {
		return nil, err
	}

	return &ExtractResponse{
		Portfolio: result.Portfolio,
		Length:    string(result.Length),
		Model:     result.Model,
	}, nil
}
