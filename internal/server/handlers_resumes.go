package server

import (
	"io"
	"net/http"
)

// handleUploadResume stores an uploaded resume PDF for later extraction runs.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A 'resume' file is required")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	if len(content) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	id, err := s.db.SaveResume(r.Context(), userID, header.Filename, content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store resume: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"id":       id.String(),
		"filename": header.Filename,
	})
}

// handleListResumes returns stored resume metadata for a user.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes})
}

// handleGetResume serves a stored resume document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load resume: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+resume.Filename+`"`)
	if _, err := w.Write(resume.Content); err != nil {
		// Client went away mid-download; nothing to do.
		return
	}
}
