package server

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/pipeline"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/server/ratelimit"
)

const testUserID = "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee"

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no input", err: &pipeline.Error{Kind: pipeline.KindNoInput}, want: http.StatusBadRequest},
		{name: "document parse", err: &pipeline.Error{Kind: pipeline.KindDocumentParse}, want: http.StatusUnprocessableEntity},
		{name: "empty document", err: &pipeline.Error{Kind: pipeline.KindEmptyDocument}, want: http.StatusUnprocessableEntity},
		{name: "malformed response", err: &pipeline.Error{Kind: pipeline.KindMalformedResponse}, want: http.StatusUnprocessableEntity},
		{name: "upstream unavailable", err: &pipeline.Error{Kind: pipeline.KindUpstreamUnavailable}, want: http.StatusServiceUnavailable},
		{name: "upstream rejected", err: &pipeline.Error{Kind: pipeline.KindUpstreamRejected}, want: http.StatusBadGateway},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	pe := &pipeline.Error{Kind: pipeline.KindEmptyDocument, Message: "No readable text."}
	assert.Equal(t, "No readable text.", displayMessage(pe))

	wrapped := errors.Join(errors.New("context"), pe)
	assert.Equal(t, "No readable text.", displayMessage(wrapped))

	assert.Contains(t, displayMessage(errors.New("boom")), "fill the form manually")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "remote addr", remoteAddr: "10.0.0.1:51234", want: "10.0.0.1"},
		{name: "forwarded single", remoteAddr: "10.0.0.1:51234", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "forwarded chain", remoteAddr: "10.0.0.1:51234", forwarded: "203.0.113.7, 10.0.0.2", want: "203.0.113.7"},
		{name: "no port", remoteAddr: "10.0.0.1", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestWithCORS(t *testing.T) {
	s := &Server{}
	called := false
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	called = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/health", nil))
	assert.False(t, called, "preflight short-circuits")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/extract", Method: "POST", Limit: 20, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	s := &Server{rateLimiter: limiter}
	handler := s.withRateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	newReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/extract", nil)
		r.RemoteAddr = "10.0.0.1:51234"
		return r
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newReq())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newReq())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestHandleHealth(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestEffectiveLength(t *testing.T) {
	configured := &Server{defaultLength: "descriptive"}
	assert.Equal(t, prompts.LengthDescriptive, configured.effectiveLength(""), "configured default applies when the request omits length")
	assert.Equal(t, prompts.LengthShort, configured.effectiveLength("short"), "request length wins over the configured default")

	unconfigured := &Server{}
	assert.Equal(t, prompts.Length(""), unconfigured.effectiveLength(""), "pipeline's medium fallback handles the fully-unset case")
}

func TestParseExtractRequest_JSON(t *testing.T) {
	s := &Server{}

	body := `{"user_id": "` + testUserID + `", "resume_url": "https://example.com/resume.pdf", "length": "short"}`
	r := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	req, fileBytes, _, errMsg := s.parseExtractRequest(r)
	require.Empty(t, errMsg)
	assert.Equal(t, testUserID, req.UserID)
	assert.Equal(t, "https://example.com/resume.pdf", req.ResumeURL)
	assert.Equal(t, "short", req.Length)
	assert.Nil(t, fileBytes)
}

func TestParseExtractRequest_JSONInvalid(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not json`},
		{name: "missing user id", body: `{"resume_url": "https://example.com/r.pdf"}`},
		{name: "bad length", body: `{"user_id": "` + testUserID + `", "length": "huge"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")

			_, _, status, errMsg := s.parseExtractRequest(r)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, errMsg)
		})
	}
}

func TestParseExtractRequest_Multipart(t *testing.T) {
	s := &Server{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_id", testUserID))
	require.NoError(t, mw.WriteField("query", "focus on backend"))
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	req, fileBytes, _, errMsg := s.parseExtractRequest(r)
	require.Empty(t, errMsg)
	assert.Equal(t, testUserID, req.UserID)
	assert.Equal(t, "focus on backend", req.Query)
	assert.Equal(t, []byte("%PDF-1.4 fake"), fileBytes)
}

func TestParseExtractRequest_MultipartWithoutFile(t *testing.T) {
	s := &Server{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_id", testUserID))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	req, fileBytes, _, errMsg := s.parseExtractRequest(r)
	require.Empty(t, errMsg)
	assert.Equal(t, testUserID, req.UserID)
	assert.Nil(t, fileBytes)
}
