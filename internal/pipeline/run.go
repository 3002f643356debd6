// Package pipeline orchestrates the resume extraction flow: PDF bytes to
// plain text, text to prompt, prompt to model response, response to candidate
// object, candidate reconciled into canonical portfolio data.
package pipeline

import (
	"context"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/extract"
	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/reconcile"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// State identifies the orchestrator's position in the extraction flow.
type State string

// Pipeline states. Failed is terminal and reachable from every state.
const (
	StateIdle           State = "idle"
	StateExtractingText State = "extracting_text"
	StateBuildingPrompt State = "building_prompt"
	StateAwaitingModel  State = "awaiting_model"
	StateParsing        State = "parsing"
	StateReconciling    State = "reconciling"
	StateComplete       State = "complete"
	StateFailed         State = "failed"
)

// maxPromptRunes bounds the resume text forwarded to the model. Text beyond
// the budget is truncated; two pages of resume fit comfortably below it.
const maxPromptRunes = 24000

// ProgressEvent reports a state transition during a run.
type ProgressEvent struct {
	State   State  `json:"state"`
	Message string `json:"message"`
}

// ProgressCallback is invoked on every state transition.
type ProgressCallback func(event ProgressEvent)

// Fetcher retrieves stored resume bytes by URL. The default implementation
// uses internal/fetch; tests inject fakes.
type Fetcher interface {
	Binary(ctx context.Context, url string) ([]byte, error)
}

// httpFetcher adapts internal/fetch to the Fetcher interface.
type httpFetcher struct{}

func (httpFetcher) Binary(ctx context.Context, url string) ([]byte, error) {
	return fetch.Binary(ctx, url, nil)
}

// RunOptions configures a single extraction run.
type RunOptions struct {
	// FileBytes is an uploaded resume document. When both FileBytes and
	// ResumeURL are set, the uploaded file wins.
	FileBytes []byte
	// ResumeURL references a previously stored resume document.
	ResumeURL string
	// Query is optional free-text guidance forwarded to the model.
	Query string
	// Length is the response-length hint; empty means medium.
	Length prompts.Length
	// Current is the canonical portfolio the result is reconciled against.
	// Nil means a fresh creation-flow portfolio (blank placeholders).
	Current *types.PortfolioData
	// Client is the model client. Required.
	Client llm.Client
	// Tier selects the model tier; empty means standard.
	Tier llm.ModelTier
	// Fetcher retrieves ResumeURL documents; nil means HTTP.
	Fetcher Fetcher
	// MaxDocumentBytes caps accepted document size; zero means the extract
	// package default.
	MaxDocumentBytes int
	// OnProgress, when set, receives state transition events.
	OnProgress ProgressCallback
}

// Result is the outcome of a successful run.
type Result struct {
	// Portfolio is the fully reconciled canonical object. Reconciliation
	// never mutates the caller's current portfolio; the result is committed
	// in one step or not at all.
	Portfolio types.PortfolioData
	// Length is the response-length category actually used.
	Length prompts.Length
	// Model is the model name the response came from.
	Model string
}

// Run executes the extraction pipeline once. There is no retry: the model is
// called exactly once per invocation, and every failure is returned as a
// *Error with a display-ready message. The caller's portfolio is never
// partially mutated; on failure the canonical data is untouched.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	emit := func(state State, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{State: state, Message: message})
		}
	}

	fail := func(err error) (*Result, error) {
		mapped := classify(err)
		emit(StateFailed, mapped.Message)
		return nil, mapped
	}

	// Resolve input: uploaded bytes take precedence over a stored reference.
	content := opts.FileBytes
	if len(content) == 0 && opts.ResumeURL != "" {
		fetcher := opts.Fetcher
		if fetcher == nil {
			fetcher = httpFetcher{}
		}
		fetched, err := fetcher.Binary(ctx, opts.ResumeURL)
		if err != nil {
			return fail(err)
		}
		content = fetched
	}
	if len(content) == 0 {
		return fail(&Error{
			Kind:    KindNoInput,
			Message: "No resume provided. Upload a PDF or select an existing resume.",
		})
	}

	emit(StateExtractingText, "Extracting text from resume")
	text, err := extract.Text(content, &extract.Options{MaxDocumentBytes: opts.MaxDocumentBytes})
	if err != nil {
		return fail(err)
	}
	if strings.TrimSpace(text) == "" {
		return fail(&Error{
			Kind:    KindEmptyDocument,
			Message: "Could not read any text from the resume. Scanned images are not supported.",
		})
	}
	text = truncateRunes(text, maxPromptRunes)

	emit(StateBuildingPrompt, "Preparing extraction request")
	length := opts.Length
	if !length.Valid() {
		length = prompts.LengthMedium
	}
	prompt := prompts.BuildExtractionPrompt(text, opts.Query, length)

	emit(StateAwaitingModel, "Waiting for the extraction model")
	tier := opts.Tier
	if tier == "" {
		tier = llm.TierStandard
	}
	response, err := opts.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return fail(err)
	}

	emit(StateParsing, "Parsing extracted data")
	cand, err := parsing.ParseCandidate(response)
	if err != nil {
		return fail(err)
	}

	emit(StateReconciling, "Normalizing portfolio data")
	current := types.NewPortfolioData()
	if opts.Current != nil {
		current = *opts.Current
	}
	merged := reconcile.Merge(current, cand)

	emit(StateComplete, "Extraction complete")
	return &Result{
		Portfolio: merged,
		Length:    length,
		Model:     opts.Client.GetModel(tier),
	}, nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
