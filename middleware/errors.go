package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"notes-api/db"
)

const (
	MsgUserNotFound   = "User not found"
	MsgNoteNotFound   = "Note not found"
	MsgAlreadyExists  = "Resource already exists"
	MsgInvalidRef     = "Invalid reference"
	MsgInvalidData    = "Invalid data provided"
	MsgInternalServer = "Internal Server Error"
)

// HTTPError is an error that carries its own response status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string   { return e.Message }
func (e *HTTPError) StatusCode() int { return e.Status }

func BadRequest(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message}
}

type statusCoder interface {
	StatusCode() int
}

// DefaultNotFoundMessages is the write-path not-found message per table.
// Both tables answer "User not found" on update and delete.
func DefaultNotFoundMessages() map[db.Resource]string {
	return map[db.Resource]string{
		db.Users: MsgUserNotFound,
		db.Notes: MsgUserNotFound,
	}
}

// Classifier maps a failed request's error to a status code and a message
// safe to show to the client.
type Classifier struct {
	NotFound map[db.Resource]string
	// HideInternal replaces the message of unclassified errors with a
	// generic one.
	HideInternal bool
}

func NewClassifier(notFound map[db.Resource]string, hideInternal bool) *Classifier {
	if notFound == nil {
		notFound = DefaultNotFoundMessages()
	}
	return &Classifier{NotFound: notFound, HideInternal: hideInternal}
}

func (c *Classifier) Classify(err error) (int, string) {
	var storeErr *db.Error
	if errors.As(err, &storeErr) {
		switch storeErr.Kind {
		case db.NotFound:
			if msg, ok := c.NotFound[storeErr.Resource]; ok {
				return http.StatusNotFound, msg
			}
			return http.StatusNotFound, MsgUserNotFound
		case db.UniqueViolation:
			return http.StatusConflict, MsgAlreadyExists
		case db.ForeignKeyViolation:
			return http.StatusBadRequest, MsgInvalidRef
		case db.ValidationFailed:
			return http.StatusBadRequest, MsgInvalidData
		}
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() != 0 {
		status = sc.StatusCode()
	}

	msg := MsgInternalServer
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.Message != "":
		msg = httpErr.Message
	case !c.HideInternal && err.Error() != "":
		msg = err.Error()
	}
	return status, msg
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler is the last-resort handler: every error a HandlerFunc
// returns is logged, classified and rendered as {"message": ...}.
type ErrorHandler struct {
	Classifier *Classifier
}

func NewErrorHandler(c *Classifier) *ErrorHandler {
	return &ErrorHandler{Classifier: c}
}

func (h *ErrorHandler) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Render(w, r, err)
		}
	}
}

func (h *ErrorHandler) Render(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := h.Classifier.Classify(err)

	logger := hlog.FromRequest(r)
	event := logger.Error()
	if status < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event.Err(err).
		Str("kind", db.KindOf(err).String()).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")

	JSON(w, status, map[string]string{"message": msg})
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
