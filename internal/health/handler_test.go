// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(context.Context) error {
	return s.err
}

func TestRoot(t *testing.T) {
	t.Parallel()

	h := NewHandler(&stubChecker{}, &stubChecker{})

	w := httptest.NewRecorder()
	h.Root(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lalon Store Server is running..!", w.Body.String())
}

func TestTest(t *testing.T) {
	t.Parallel()

	h := NewHandler(&stubChecker{}, &stubChecker{})

	w := httptest.NewRecorder()
	h.Test(w, httptest.NewRequest("GET", "/test", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Server working....!", body["message"])
}

func TestReadiness_AllHealthy(t *testing.T) {
	t.Parallel()

	h := NewHandler(&stubChecker{}, &stubChecker{})

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 2)
}

func TestReadiness_DegradedWhenDatabaseDown(t *testing.T) {
	t.Parallel()

	h := NewHandler(
		&stubChecker{err: errors.New("connection refused")},
		&stubChecker{},
	)

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
}

func TestLiveness_DuringShutdown(t *testing.T) {
	t.Parallel()

	h := NewHandler(&stubChecker{}, &stubChecker{})
	h.SetShutdown(true)

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest("GET", "/health/live", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
