package db

import (
	"context"
	"database/sql"
	"errors"

	"notes-api/models"
)

const userColumns = "id, username, password"

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user. Username and password are required.
func (s *Store) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, translate(Users, err)
	}

	res, err := s.q.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", *in.Username, *in.Password)
	if err != nil {
		return nil, translate(Users, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, translate(Users, err)
	}

	return &models.User{ID: int(id), Username: *in.Username, Password: *in.Password}, nil
}

// ListUsers returns every user with their notes.
func (s *Store) ListUsers(ctx context.Context) ([]models.UserWithNotes, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, translate(Users, err)
	}
	defer rows.Close()

	users := []models.UserWithNotes{}
	index := map[int]int{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(Users, err)
		}
		index[u.ID] = len(users)
		users = append(users, models.UserWithNotes{User: *u, Notes: []models.Note{}})
	}
	if err := rows.Err(); err != nil {
		return nil, translate(Users, err)
	}

	notes, err := s.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if i, ok := index[n.UserID]; ok {
			users[i].Notes = append(users[i].Notes, n)
		}
	}

	return users, nil
}

// GetUser returns the user with their notes, or nil when no row matches.
func (s *Store) GetUser(ctx context.Context, id int) (*models.UserWithNotes, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(Users, err)
	}

	notes, err := s.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes WHERE user_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}

	return &models.UserWithNotes{User: *u, Notes: notes}, nil
}

// FindUserByUsername returns nil when no user has this username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(Users, err)
	}
	return u, nil
}

// UpdateUser replaces the fields present in the input. A missing id is a
// NotFound error.
func (s *Store) UpdateUser(ctx context.Context, id int, in models.UserInput) (*models.User, error) {
	var updated *models.User
	err := s.InTx(ctx, func(tx *Store) error {
		u, err := tx.userForWrite(ctx, id)
		if err != nil {
			return err
		}

		if in.Username != nil {
			u.Username = *in.Username
		}
		if in.Password != nil {
			u.Password = *in.Password
		}

		if _, err := tx.q.ExecContext(ctx,
			"UPDATE users SET username = ?, password = ? WHERE id = ?", u.Username, u.Password, id); err != nil {
			return translate(Users, err)
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user and returns the row as it was. Users that still
// own notes fail with ForeignKeyViolation.
func (s *Store) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	var deleted *models.User
	err := s.InTx(ctx, func(tx *Store) error {
		u, err := tx.userForWrite(ctx, id)
		if err != nil {
			return err
		}

		if _, err := tx.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
			return translate(Users, err)
		}

		deleted = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, translate(Users, err)
	}
	return n, nil
}

// DeleteAllUsers empties the users table.
func (s *Store) DeleteAllUsers(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return translate(Users, err)
	}
	return nil
}

func (s *Store) userForWrite(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, translate(Users, err)
	}
	return u, nil
}
