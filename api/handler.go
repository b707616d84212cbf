package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/document"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/listener/middleware"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/prompt"
)

// ExamineResponse is the body of a successful examine request.
type ExamineResponse struct {
	OK       bool          `json:"ok"`
	Outcomes engine.Report `json:"outcomes"`
}

// FixRequest is the body of a fix request. Document is YAML text.
type FixRequest struct {
	Document string   `json:"document"`
	Answers  []string `json:"answers"`
}

// FixResponse carries the fixed document, its report and the questions
// that were answered.
type FixResponse struct {
	Document  string            `json:"document"`
	OK        bool              `json:"ok"`
	Outcomes  engine.Report     `json:"outcomes"`
	Questions []prompt.Question `json:"questions"`
}

// FixError is the 422 body of a fix that could not finish.
type FixError struct {
	Error     string            `json:"error"`
	Questions []prompt.Question `json:"questions"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithParallelism is passed to engine.WithParallelism.
func WithParallelism(limit int) Option {
	return func(h *Handler) {
		h.parallelism = limit
	}
}

// WithMaxAttempts is passed to engine.WithMaxAttempts.
func WithMaxAttempts(attempts int) Option {
	return func(h *Handler) {
		h.maxAttempts = attempts
	}
}

// Handler serves the examiner routes for one rule set.
type Handler struct {
	rules       []engine.Rule
	logger      *slog.Logger
	parallelism int
	maxAttempts int
	mux         *http.ServeMux
}

// NewHandler returns a handler checking documents against rules.
func NewHandler(rules []engine.Rule, opts ...Option) *Handler {
	h := &Handler{
		rules:       rules,
		logger:      slog.Default(),
		parallelism: 1,
		mux:         http.NewServeMux(),
	}

	for _, apply := range opts {
		apply(h)
	}

	h.mux.HandleFunc("POST /v1/examine", h.examine)
	h.mux.HandleFunc("POST /v1/fix", h.fix)
	h.mux.HandleFunc("GET /healthz", healthz)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) examine(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	root, err := document.Decode(body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())

		return
	}

	report, ok := h.report(w, r, root)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ExamineResponse{OK: report.OK(), Outcomes: report})
}

func (h *Handler) fix(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req FixRequest

	err := json.Unmarshal(body, &req)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid fix request: %v", err))

		return
	}

	root, err := document.Decode([]byte(req.Document))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())

		return
	}

	answers := prompt.NewScripted(req.Answers...)

	fixed, err := engine.Fix(r.Context(), answers, h.rules, root,
		engine.WithLogger(h.logger),
		engine.WithMaxAttempts(h.maxAttempts),
	)

	switch {
	case errors.Is(err, prompt.ErrNoMoreAnswers), errors.Is(err, engine.ErrMaxAttempts):
		writeJSON(w, http.StatusUnprocessableEntity, FixError{Error: err.Error(), Questions: answers.Transcript()})

		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "fix failed",
			"error", err, "request_id", middleware.GetRequestID(r.Context()))
		middleware.WriteError(w, http.StatusInternalServerError, "fix failed")

		return
	}

	report, ok := h.report(w, r, fixed)
	if !ok {
		return
	}

	out, err := document.Encode(fixed)
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, FixResponse{
		Document:  string(out),
		OK:        report.OK(),
		Outcomes:  report,
		Questions: answers.Transcript(),
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request, root node.Node) (engine.Report, bool) {
	report, err := engine.Examine(r.Context(), h.rules, root, engine.WithParallelism(h.parallelism))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "examine failed",
			"error", err, "request_id", middleware.GetRequestID(r.Context()))
		middleware.WriteError(w, http.StatusInternalServerError, "examine failed")

		return nil, false
	}

	if report == nil {
		report = engine.Report{}
	}

	return report, true
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readBody reads the request body, answering 413 when a body limit set by
// middleware.MaxRequestSize is exceeded.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))

		return nil, false
	}

	middleware.WriteError(w, http.StatusBadRequest, "reading request body failed")

	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
