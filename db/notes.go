package db

import (
	"context"
	"database/sql"
	"errors"

	"notes-api/models"
)

const noteColumns = "id, titre, contenu, user_id, parent_id"

const noteWithUserQuery = `SELECT n.id, n.titre, n.contenu, n.user_id, n.parent_id,
	u.id, u.username, u.password
	FROM notes n JOIN users u ON u.id = n.user_id`

type scanner interface{ Scan(...any) error }

func scanNote(row scanner) (*models.Note, error) {
	var n models.Note
	var parentID sql.NullInt64
	if err := row.Scan(&n.ID, &n.Titre, &n.Contenu, &n.UserID, &parentID); err != nil {
		return nil, err
	}
	if parentID.Valid {
		p := int(parentID.Int64)
		n.ParentID = &p
	}
	return &n, nil
}

func scanNoteWithUser(row scanner) (*models.NoteWithUser, error) {
	var n models.NoteWithUser
	var u models.User
	var parentID sql.NullInt64
	if err := row.Scan(&n.ID, &n.Titre, &n.Contenu, &n.UserID, &parentID,
		&u.ID, &u.Username, &u.Password); err != nil {
		return nil, err
	}
	if parentID.Valid {
		p := int(parentID.Int64)
		n.ParentID = &p
	}
	n.User = &u
	return &n, nil
}

func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(Notes, err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, translate(Notes, err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(Notes, err)
	}
	return notes, nil
}

func (s *Store) queryNotesWithUser(ctx context.Context, query string, args ...any) ([]models.NoteWithUser, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(Notes, err)
	}
	defer rows.Close()

	notes := []models.NoteWithUser{}
	for rows.Next() {
		n, err := scanNoteWithUser(rows)
		if err != nil {
			return nil, translate(Notes, err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(Notes, err)
	}
	return notes, nil
}

// CreateNote inserts a note owned by an existing user and returns it with
// that user. A userId with no matching user is a ForeignKeyViolation.
func (s *Store) CreateNote(ctx context.Context, in models.NoteInput) (*models.NoteWithUser, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, translate(Notes, err)
	}

	var created *models.NoteWithUser
	err := s.InTx(ctx, func(tx *Store) error {
		res, err := tx.q.ExecContext(ctx,
			"INSERT INTO notes (titre, contenu, user_id) VALUES (?, ?, ?)",
			*in.Titre, *in.Contenu, int(*in.UserID))
		if err != nil {
			return translate(Notes, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return translate(Notes, err)
		}

		created, err = scanNoteWithUser(tx.q.QueryRowContext(ctx, noteWithUserQuery+" WHERE n.id = ?", id))
		return translate(Notes, err)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListNotes returns every note with its owner.
func (s *Store) ListNotes(ctx context.Context) ([]models.NoteWithUser, error) {
	return s.queryNotesWithUser(ctx, noteWithUserQuery+" ORDER BY n.id")
}

// GetNote returns the note with its owner, or nil when no row matches.
func (s *Store) GetNote(ctx context.Context, id int) (*models.NoteWithUser, error) {
	n, err := scanNoteWithUser(s.q.QueryRowContext(ctx, noteWithUserQuery+" WHERE n.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(Notes, err)
	}
	return n, nil
}

// ListNotesByUser returns the notes owned by userID. It never fails with
// NotFound; an unknown user has no notes.
func (s *Store) ListNotesByUser(ctx context.Context, userID int) ([]models.NoteWithUser, error) {
	return s.queryNotesWithUser(ctx, noteWithUserQuery+" WHERE n.user_id = ? ORDER BY n.id", userID)
}

// UpdateNote replaces the fields present in the input. An absent userId
// leaves the owner unchanged.
func (s *Store) UpdateNote(ctx context.Context, id int, in models.NoteInput) (*models.NoteWithUser, error) {
	var updated *models.NoteWithUser
	err := s.InTx(ctx, func(tx *Store) error {
		n, err := tx.noteForWrite(ctx, id)
		if err != nil {
			return err
		}

		if in.Titre != nil {
			n.Titre = *in.Titre
		}
		if in.Contenu != nil {
			n.Contenu = *in.Contenu
		}
		if uid := in.UserID.IntPtr(); uid != nil {
			n.UserID = *uid
		}

		if _, err := tx.q.ExecContext(ctx,
			"UPDATE notes SET titre = ?, contenu = ?, user_id = ? WHERE id = ?",
			n.Titre, n.Contenu, n.UserID, id); err != nil {
			return translate(Notes, err)
		}

		updated, err = scanNoteWithUser(tx.q.QueryRowContext(ctx, noteWithUserQuery+" WHERE n.id = ?", id))
		return translate(Notes, err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteNote removes a note and returns the row as it was.
func (s *Store) DeleteNote(ctx context.Context, id int) (*models.Note, error) {
	var deleted *models.Note
	err := s.InTx(ctx, func(tx *Store) error {
		n, err := tx.noteForWrite(ctx, id)
		if err != nil {
			return err
		}

		if _, err := tx.q.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
			return translate(Notes, err)
		}

		deleted = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *Store) CountNotes(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&n); err != nil {
		return 0, translate(Notes, err)
	}
	return n, nil
}

// DeleteAllNotes empties the notes table.
func (s *Store) DeleteAllNotes(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return translate(Notes, err)
	}
	return nil
}

func (s *Store) noteForWrite(ctx context.Context, id int) (*models.Note, error) {
	n, err := scanNote(s.q.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id))
	if err != nil {
		return nil, translate(Notes, err)
	}
	return n, nil
}
