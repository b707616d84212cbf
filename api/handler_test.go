package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/api"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/cms"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/config"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/listener/middleware"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/logging"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `backend:
  name: github
  repo: octocat/demo
collections:
  - name: posts
    label: Posts
    folder: content/posts
`

func newHandler() *api.Handler {
	logger := logging.Discard()

	return api.NewHandler(cms.Rules(cms.WithLogger(logger)), api.WithLogger(logger))
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())

	return out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec := serve(t, newHandler(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Examine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		ok       bool
		failures []string
	}{
		{
			name:     "empty document",
			body:     "",
			failures: []string{cms.RuleBackendExists, cms.RuleCollectionsExist},
		},
		{
			name:     "unknown backend",
			body:     "backend:\n  name: bogus\ncollections: []\n",
			failures: []string{cms.RuleCollectionsExist, cms.RuleValidBackend},
		},
		{
			name: "valid",
			body: validConfig,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, newHandler(), http.MethodPost, "/v1/examine", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode[struct {
				OK       bool `json:"ok"`
				Outcomes []struct {
					Name   string `json:"name"`
					Passed bool   `json:"passed"`
					Path   []any  `json:"path"`
				} `json:"outcomes"`
			}](t, rec)

			assert.Equal(t, tt.ok, resp.OK)
			assert.NotNil(t, resp.Outcomes)

			var failed []string

			for _, o := range resp.Outcomes {
				if !o.Passed {
					failed = append(failed, o.Name)
				}
			}

			assert.Equal(t, tt.failures, failed)
		})
	}
}

func TestHandler_Examine_PathsAreArrays(t *testing.T) {
	t.Parallel()

	rec := serve(t, newHandler(), http.MethodPost, "/v1/examine", validConfig)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `"path":["collections",0]`)
	assert.Contains(t, rec.Body.String(), `"path":[]`)
}

func TestHandler_Examine_BadDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "sequence root", body: "- a\n- b\n"},
		{name: "scalar root", body: "just text"},
		{name: "broken yaml", body: "backend: [github\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, newHandler(), http.MethodPost, "/v1/examine", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[middleware.ErrorBody](t, rec).Error)
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(t, newHandler(), http.MethodGet, "/v1/examine", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_Fix(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(api.FixRequest{
		Document: "# empty\n",
		Answers:  []string{"github", "octocat/demo", "posts", "Posts", "folder", "content/posts"},
	})
	require.NoError(t, err)

	rec := serve(t, newHandler(), http.MethodPost, "/v1/fix", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[api.FixResponse](t, rec)

	assert.True(t, resp.OK)
	assert.Len(t, resp.Questions, 6)
	assert.Equal(t, "Please choose a backend:", resp.Questions[0].Prompt)
	assert.Equal(t, cms.BackendNames(), resp.Questions[0].Options)
	assert.Contains(t, resp.Document, "repo: octocat/demo")
	assert.Contains(t, resp.Document, "folder: content/posts")
	assert.Less(t, strings.Index(resp.Document, "backend:"), strings.Index(resp.Document, "collections:"))
}

func TestHandler_Fix_NeedsMoreAnswers(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(api.FixRequest{Answers: []string{"github"}})
	require.NoError(t, err)

	rec := serve(t, newHandler(), http.MethodPost, "/v1/fix", string(body))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[api.FixError](t, rec)

	assert.Contains(t, resp.Error, prompt.ErrNoMoreAnswers.Error())
	assert.Contains(t, resp.Error, "GitHub repo")
	assert.Equal(t, []prompt.Question{
		{Prompt: "Please choose a backend:", Options: cms.BackendNames(), Answer: "github"},
	}, resp.Questions)
}

func TestHandler_Fix_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "backend: github"},
		{name: "document not a mapping", body: `{"document": "- a\n"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, newHandler(), http.MethodPost, "/v1/fix", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_RuleErrorIsInternal(t *testing.T) {
	t.Parallel()

	broken := engine.NewRule("broken", func(context.Context, node.Node, node.Path) (*engine.Outcome, error) {
		return nil, errors.New("lookup exploded")
	})

	h := api.NewHandler([]engine.Rule{broken}, api.WithLogger(logging.Discard()))

	rec := serve(t, h, http.MethodPost, "/v1/examine", "a: 1\n")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "examine failed", decode[middleware.ErrorBody](t, rec).Error)
}

func TestHandler_Fix_MaxAttempts(t *testing.T) {
	t.Parallel()

	stubborn := engine.NewRule("stubborn", func(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
		if !path.IsRoot() {
			return engine.Inapplicable()
		}

		return engine.Fail("never satisfied", func(context.Context, engine.InputProvider) (node.Node, error) {
			return n, nil
		})
	})

	h := api.NewHandler([]engine.Rule{stubborn}, api.WithLogger(logging.Discard()), api.WithMaxAttempts(3))

	rec := serve(t, h, http.MethodPost, "/v1/fix", `{"document": ""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[api.FixError](t, rec).Error, engine.ErrMaxAttempts.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	serveSettings := config.Defaults().Serve
	serveSettings.MaxBodyBytes = 16

	h := api.Wrap(newHandler(), serveSettings, logging.Discard())

	t.Run("request id", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, h, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("body limit", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, h, http.MethodPost, "/v1/examine", validConfig)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "request body exceeds 16 bytes", decode[middleware.ErrorBody](t, rec).Error)
	})
}

func TestWrap_RecoversPanics(t *testing.T) {
	t.Parallel()

	panicky := engine.NewRule("panicky", func(context.Context, node.Node, node.Path) (*engine.Outcome, error) {
		panic("boom")
	})

	serveSettings := config.Defaults().Serve
	serveSettings.Timeout = 5 * time.Second

	h := api.Wrap(api.NewHandler([]engine.Rule{panicky}), serveSettings, logging.Discard())

	rec := serve(t, h, http.MethodPost, "/v1/examine", "a: 1\n")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
