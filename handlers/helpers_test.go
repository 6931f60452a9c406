package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"notes-api/db"
	"notes-api/db/dbtest"
	"notes-api/handlers"
	"notes-api/health"
	"notes-api/middleware"
)

var testSecret = []byte("handlers-test-secret")

type testApp struct {
	store  *db.Store
	router http.Handler
}

func newTestApp(t *testing.T, configure ...func(*handlers.RouterConfig)) *testApp {
	t.Helper()

	store := dbtest.NewStore(t)
	cfg := handlers.RouterConfig{
		Store:      store,
		Probe:      health.NewProbe(store, zerolog.Nop()),
		Classifier: middleware.NewClassifier(nil, false),
		Logger:     zerolog.Nop(),
		JWTSecret:  testSecret,
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	return &testApp{store: store, router: handlers.NewRouter(cfg)}
}

func (a *testApp) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["message"]
}

func (a *testApp) createUser(t *testing.T, username, password string) int {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/users", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return int(decode[map[string]any](t, rr)["id"].(float64))
}

func (a *testApp) createNote(t *testing.T, titre, contenu string, userID int) int {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/notes", map[string]any{"titre": titre, "contenu": contenu, "userId": userID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return int(decode[map[string]any](t, rr)["id"].(float64))
}
