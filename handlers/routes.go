package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"notes-api/health"
	"notes-api/middleware"
)

type RouterConfig struct {
	Store      Store
	Probe      *health.Probe
	Classifier *middleware.Classifier
	Logger     zerolog.Logger

	JWTSecret     []byte
	RequireAuth   bool
	HashPasswords bool
}

// NewRouter binds every handler to its path. Failures returned by handlers
// are rendered by a single ErrorHandler.
func NewRouter(cfg RouterConfig) http.Handler {
	errs := middleware.NewErrorHandler(cfg.Classifier)
	h := errs.Handle

	users := &UserHandler{Store: cfg.Store, HashPasswords: cfg.HashPasswords}
	notes := &NoteHandler{Store: cfg.Store}
	login := &AuthHandler{Users: cfg.Store, Secret: cfg.JWTSecret}
	probe := &HealthHandler{Probe: cfg.Probe}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method Not Allowed"})
	})

	r.Post("/api/login", h(login.Login))

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h(users.List))
		r.Post("/", h(users.Create))
		r.Get("/{id}", h(users.Get))
		r.Put("/{id}", h(users.Update))
		r.Delete("/{id}", h(users.Delete))
	})

	r.Route("/api/notes", func(r chi.Router) {
		if cfg.RequireAuth {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))
		}
		r.Get("/", h(notes.List))
		r.Post("/", h(notes.Create))
		r.Get("/user/{userId}", h(notes.ListByUser))
		r.Get("/{id}", h(notes.Get))
		r.Put("/{id}", h(notes.Update))
		r.Delete("/{id}", h(notes.Delete))
	})

	r.Get("/health", h(probe.Check))
	r.Get("/health/test", h(probe.Test))

	return r
}
