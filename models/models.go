package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Note.ParentID is reserved: it is persisted as a nullable column but no
// handler sets or reads it.
type Note struct {
	ID       int    `json:"id"`
	Titre    string `json:"titre"`
	Contenu  string `json:"contenu"`
	UserID   int    `json:"userId"`
	ParentID *int   `json:"parentId,omitempty"`
}

type UserWithNotes struct {
	User
	Notes []Note `json:"notes"`
}

type NoteWithUser struct {
	Note
	User *User `json:"user,omitempty"`
}

// UserInput is the body of POST and PUT /api/users. Nil fields are absent.
type UserInput struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// NoteInput is the body of POST and PUT /api/notes. Nil fields are absent.
type NoteInput struct {
	Titre   *string  `json:"titre" validate:"required"`
	Contenu *string  `json:"contenu" validate:"required"`
	UserID  *FlexInt `json:"userId" validate:"required"`
}

// FlexInt decodes from a JSON number or a numeric JSON string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

func (f *FlexInt) IntPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
