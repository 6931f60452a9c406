package handlers

import (
	"net/http"

	"notes-api/auth"
	"notes-api/middleware"
	"notes-api/models"
)

type UserHandler struct {
	Store UserStore
	// HashPasswords stores bcrypt hashes instead of the submitted password.
	HashPasswords bool
}

func (h *UserHandler) hash(in *models.UserInput) error {
	if !h.HashPasswords || in.Password == nil {
		return nil
	}
	hashed, err := auth.HashPassword(*in.Password)
	if err != nil {
		return err
	}
	in.Password = &hashed
	return nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in models.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}
	if err := h.hash(&in); err != nil {
		return err
	}

	user, err := h.Store.CreateUser(r.Context(), in)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusCreated, user)
	return nil
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, users)
	return nil
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		middleware.JSON(w, http.StatusNotFound, map[string]string{"message": middleware.MsgUserNotFound})
		return nil
	}
	middleware.JSON(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var in models.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}
	if err := h.hash(&in); err != nil {
		return err
	}

	user, err := h.Store.UpdateUser(r.Context(), id, in)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	user, err := h.Store.DeleteUser(r.Context(), id)
	if err != nil {
		return err
	}
	middleware.JSON(w, http.StatusOK, user)
	return nil
}
