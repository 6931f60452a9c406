package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"notes-api/middleware"
	"notes-api/models"
)

// UserStore is the data access the user handlers depend on.
type UserStore interface {
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserWithNotes, error)
	GetUser(ctx context.Context, id int) (*models.UserWithNotes, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int, in models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int) (*models.User, error)
}

// NoteStore is the data access the note handlers depend on.
type NoteStore interface {
	CreateNote(ctx context.Context, in models.NoteInput) (*models.NoteWithUser, error)
	ListNotes(ctx context.Context) ([]models.NoteWithUser, error)
	GetNote(ctx context.Context, id int) (*models.NoteWithUser, error)
	ListNotesByUser(ctx context.Context, userID int) ([]models.NoteWithUser, error)
	UpdateNote(ctx context.Context, id int, in models.NoteInput) (*models.NoteWithUser, error)
	DeleteNote(ctx context.Context, id int) (*models.Note, error)
}

type Store interface {
	UserStore
	NoteStore
}

const maxBodyBytes = 1 << 20

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, middleware.BadRequest(middleware.MsgInvalidData)
	}
	return id, nil
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return middleware.BadRequest(middleware.MsgInvalidData)
	}
	return nil
}
