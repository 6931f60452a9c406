package seed

import (
	"context"
	"fmt"

	"notes-api/auth"
	"notes-api/db"
	"notes-api/models"
)

type Account struct {
	Username string
	Password string
}

var DefaultAccounts = []Account{
	{Username: "alice", Password: "password123"},
	{Username: "bob", Password: "secret456"},
}

type NoteSeed struct {
	Titre   string
	Contenu string
	Owner   int // index into the accounts slice
}

var DefaultNotes = []NoteSeed{
	{Titre: "Note 1", Contenu: "Contenu de la note 1", Owner: 0},
	{Titre: "Note 2", Contenu: "Contenu de la note 2", Owner: 0},
	{Titre: "Note 3", Contenu: "Contenu de la note 3", Owner: 1},
}

type Result struct {
	Users []models.User
	Notes []models.NoteWithUser
}

// Run wipes both tables and inserts the accounts and notes in a single
// transaction. Passwords are stored as bcrypt hashes.
func Run(ctx context.Context, store *db.Store, accounts []Account, notes []NoteSeed) (*Result, error) {
	var res Result
	err := store.InTx(ctx, func(tx *db.Store) error {
		if err := tx.DeleteAllNotes(ctx); err != nil {
			return err
		}
		if err := tx.DeleteAllUsers(ctx); err != nil {
			return err
		}

		for _, a := range accounts {
			hashed, err := auth.HashPassword(a.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", a.Username, err)
			}
			username := a.Username
			u, err := tx.CreateUser(ctx, models.UserInput{Username: &username, Password: &hashed})
			if err != nil {
				return err
			}
			res.Users = append(res.Users, *u)
		}

		for _, n := range notes {
			if n.Owner < 0 || n.Owner >= len(res.Users) {
				return fmt.Errorf("note %q: owner index %d out of range", n.Titre, n.Owner)
			}
			titre, contenu := n.Titre, n.Contenu
			owner := models.FlexInt(res.Users[n.Owner].ID)
			created, err := tx.CreateNote(ctx, models.NoteInput{Titre: &titre, Contenu: &contenu, UserID: &owner})
			if err != nil {
				return err
			}
			res.Notes = append(res.Notes, *created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
