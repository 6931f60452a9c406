package handlers

import (
	"net/http"

	"notes-api/middleware"
	"notes-api/models"
)

type NoteHandler struct {
	Store NoteStore
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in models.NoteInput
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}

	note, err := h.Store.CreateNote(r.Context(), in)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusCreated, note)
	return nil
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) error {
	notes, err := h.Store.ListNotes(r.Context())
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, notes)
	return nil
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	note, err := h.Store.GetNote(r.Context(), id)
	if err != nil {
		return err
	}
	if note == nil {
		middleware.JSON(w, http.StatusNotFound, map[string]string{"message": middleware.MsgNoteNotFound})
		return nil
	}
	middleware.JSON(w, http.StatusOK, note)
	return nil
}

// ListByUser answers an empty array for users without notes, including
// users that do not exist.
func (h *NoteHandler) ListByUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return err
	}

	notes, err := h.Store.ListNotesByUser(r.Context(), userID)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, notes)
	return nil
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var in models.NoteInput
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}

	note, err := h.Store.UpdateNote(r.Context(), id, in)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, note)
	return nil
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	note, err := h.Store.DeleteNote(r.Context(), id)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, note)
	return nil
}
