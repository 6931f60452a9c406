package handlers

import (
	"errors"
	"net/http"
	"time"

	"notes-api/auth"
	"notes-api/middleware"
)

type AuthHandler struct {
	Users  UserStore
	Secret []byte
	Now    func() time.Time
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

var errInvalidCredentials = &middleware.HTTPError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	if len(h.Secret) == 0 {
		return errors.New("token signing secret is not configured")
	}

	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return middleware.BadRequest(middleware.MsgInvalidData)
	}

	user, err := h.Users.FindUserByUsername(r.Context(), req.Username)
	if err != nil {
		return err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return errInvalidCredentials
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	token, err := auth.IssueToken(h.Secret, user.ID, now())
	if err != nil {
		return err
	}

	middleware.JSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Username: user.Username},
	})
	return nil
}
