package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeout_Exceeded(t *testing.T) {
	t.Parallel()

	_, logger := capture()

	handler := Timeout(20*time.Millisecond, logger)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/examine", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"request timed out"}`, rec.Body.String())
}

func TestTimeout_WithinDeadline(t *testing.T) {
	t.Parallel()

	_, logger := capture()

	rec := httptest.NewRecorder()
	Timeout(time.Second, logger)(statusHandler(http.StatusCreated)).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestTimeout_NonPositiveUsesDefault(t *testing.T) {
	t.Parallel()

	h, logger := capture()

	rec := httptest.NewRecorder()
	Timeout(0, logger)(statusHandler(http.StatusOK)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, h.all(), 1)
}
