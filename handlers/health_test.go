package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "alice", "pw")

	rr := app.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[map[string]any](t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["users"])
	assert.Equal(t, float64(0), body["notes"])
	assert.NotEmpty(t, body["lastCheck"])
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Close())

	rr := app.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	body := decode[map[string]any](t, rr)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Database unavailable", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthTest(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/health/test", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[map[string]any](t, rr)
	for _, stage := range []string{"connection", "read", "write", "delete", "allTestsPassed"} {
		assert.Equal(t, true, body[stage], stage)
	}
	assert.Nil(t, body["error"])

	rr = app.do(t, http.MethodGet, "/api/users", nil)
	assert.JSONEq(t, `[]`, rr.Body.String(), "probe user must be removed")
}

func TestHealthTestDatabaseDown(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Close())

	rr := app.do(t, http.MethodGet, "/health/test", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	body := decode[map[string]any](t, rr)
	assert.Equal(t, false, body["connection"])
	assert.Equal(t, false, body["allTestsPassed"])
	assert.NotEmpty(t, body["error"])
}
