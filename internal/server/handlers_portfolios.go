package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// maxPortfolioBytes caps a saved portfolio document.
const maxPortfolioBytes = 1 << 20

// handleGetPortfolio loads a user's saved portfolio, or a fresh blank one
// when nothing has been saved yet.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	portfolio, err := s.db.GetPortfolio(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load portfolio: "+err.Error())
		return
	}
	if portfolio == nil {
		blank := types.NewPortfolioData()
		portfolio = &blank
	}

	s.jsonResponse(w, http.StatusOK, portfolio)
}

// handleSavePortfolio validates and persists a portfolio document.
func (s *Server) handleSavePortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPortfolioBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Schema validation guards the persistence boundary; the editors rely on
	// every stored document satisfying the canonical shape.
	if err := schemas.ValidatePortfolioJSON(body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid portfolio: "+err.Error())
		return
	}

	var portfolio types.PortfolioData
	if err := json.Unmarshal(body, &portfolio); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid portfolio JSON: "+err.Error())
		return
	}

	if err := s.db.SavePortfolio(r.Context(), userID, &portfolio); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save portfolio: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleRecordVisit increments the public-page visit counter.
func (s *Server) handleRecordVisit(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.RecordVisit(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to record visit: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// handleGetVisits returns the visit count for a user's public page.
func (s *Server) handleGetVisits(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	count, err := s.db.GetVisitCount(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load visits: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int64{"visits": count})
}

// pathUUID parses a UUID path value, writing a 400 on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
