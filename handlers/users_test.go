package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/auth"
	"notes-api/handlers"
	"notes-api/models"
)

func TestCreateUser(t *testing.T) {
	app := newTestApp(t)

	t.Run("returns created user", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/users", map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id":1,"username":"alice","password":"pw"}`, rr.Body.String())
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/users", map[string]string{"username": "alice", "password": "other"})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Resource already exists", message(t, rr))
	})

	t.Run("missing username is invalid data", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/users", map[string]string{"password": "password123"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid data provided", message(t, rr))
	})

	t.Run("empty body is invalid data", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/users", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid data provided", message(t, rr))
	})

	t.Run("malformed json is invalid data", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/users", `{"username":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid data provided", message(t, rr))
	})
}

func TestCreateUserHashesPasswords(t *testing.T) {
	app := newTestApp(t, func(cfg *handlers.RouterConfig) { cfg.HashPasswords = true })

	rr := app.do(t, http.MethodPost, "/api/users", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusCreated, rr.Code)

	user := decode[models.User](t, rr)
	assert.True(t, auth.IsHashed(user.Password))
	assert.True(t, auth.CheckPassword(user.Password, "pw"))
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	alice := app.createUser(t, "testuser1", "password123")
	app.createUser(t, "testuser2", "password456")
	app.createNote(t, "Note", "Body", alice)

	rr = app.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	users := decode[[]models.UserWithNotes](t, rr)
	require.Len(t, users, 2)
	assert.Len(t, users[0].Notes, 1)
	assert.Empty(t, users[1].Notes)
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)
	id := app.createUser(t, "testuser", "password123")

	t.Run("returns user with notes", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"username":"testuser","password":"password123","notes":[]}`, id), rr.Body.String())
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, "/api/users/99999", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", message(t, rr))
	})

	t.Run("non numeric id is invalid data", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, "/api/users/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid data provided", message(t, rr))
	})
}

func TestUpdateUser(t *testing.T) {
	app := newTestApp(t)
	id := app.createUser(t, "testuser", "password123")

	t.Run("updates fields", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", id),
			map[string]string{"username": "updateduser", "password": "newpassword123"})
		require.Equal(t, http.StatusOK, rr.Code)

		user := decode[models.User](t, rr)
		assert.Equal(t, models.User{ID: id, Username: "updateduser", Password: "newpassword123"}, user)

		rr = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
		assert.Equal(t, "updateduser", decode[models.UserWithNotes](t, rr).Username)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/api/users/99999",
			map[string]string{"username": "updateduser", "password": "newpassword123"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", message(t, rr))
	})

	t.Run("taking another username conflicts", func(t *testing.T) {
		app.createUser(t, "taken", "pw")
		rr := app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", id), map[string]string{"username": "taken"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)

	t.Run("returns deleted user", func(t *testing.T) {
		id := app.createUser(t, "testuser", "password123")
		rr := app.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id, decode[models.User](t, rr).ID)

		rr = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rr := app.do(t, http.MethodDelete, "/api/users/99999", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", message(t, rr))
	})

	t.Run("user with notes is an invalid reference", func(t *testing.T) {
		id := app.createUser(t, "owner", "pw")
		app.createNote(t, "Kept", "Body", id)

		rr := app.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid reference", message(t, rr))
	})
}
