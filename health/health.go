package health

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"notes-api/models"
)

const (
	StatusHealthy = "healthy"
	StatusError   = "error"
)

// Store is the subset of the data access layer the probe exercises.
type Store interface {
	Ping(ctx context.Context) error
	CountUsers(ctx context.Context) (int, error)
	CountNotes(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int) (*models.User, error)
}

type Stats struct {
	Users     int    `json:"users"`
	Notes     int    `json:"notes"`
	LastCheck string `json:"lastCheck"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// OperationsResult records which stage of TestOperations succeeded. Error
// holds the first failure, or nil.
type OperationsResult struct {
	Connection bool    `json:"connection"`
	Read       bool    `json:"read"`
	Write      bool    `json:"write"`
	Delete     bool    `json:"delete"`
	Error      *string `json:"error"`
}

func (r OperationsResult) AllPassed() bool {
	return r.Connection && r.Read && r.Write && r.Delete
}

type Probe struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewProbe(store Store, logger zerolog.Logger) *Probe {
	return &Probe{store: store, logger: logger, now: time.Now}
}

// Timestamp formats the probe clock the way every health payload does.
func (p *Probe) Timestamp() string {
	return p.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// IsHealthy runs a no-op query against the store.
func (p *Probe) IsHealthy(ctx context.Context) bool {
	if err := p.store.Ping(ctx); err != nil {
		p.logger.Error().Err(err).Msg("database health check failed")
		return false
	}
	return true
}

// Stats counts users and notes. It never fails: errors are reported in the
// returned value with zeroed counts.
func (p *Probe) Stats(ctx context.Context) Stats {
	users, err := p.store.CountUsers(ctx)
	if err == nil {
		var notes int
		notes, err = p.store.CountNotes(ctx)
		if err == nil {
			return Stats{Users: users, Notes: notes, LastCheck: p.Timestamp(), Status: StatusHealthy}
		}
	}

	p.logger.Error().Err(err).Msg("failed to get database stats")
	return Stats{LastCheck: p.Timestamp(), Status: StatusError, Error: err.Error()}
}

// TestOperations runs connect, read, write and delete in order against the
// store. The write creates a throwaway user that the delete stage removes.
// Later stages are skipped once one fails.
func (p *Probe) TestOperations(ctx context.Context) OperationsResult {
	var res OperationsResult
	if err := p.runOperations(ctx, &res); err != nil {
		msg := err.Error()
		res.Error = &msg
		p.logger.Error().Err(err).Msg("database operations test failed")
	}
	return res
}

func (p *Probe) runOperations(ctx context.Context, res *OperationsResult) error {
	if err := p.store.Ping(ctx); err != nil {
		return fmt.Errorf("connection: %w", err)
	}
	res.Connection = true

	if _, err := p.store.CountUsers(ctx); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	res.Read = true

	username := "health_check_" + uuid.NewString()
	password := "test_password"
	user, err := p.store.CreateUser(ctx, models.UserInput{Username: &username, Password: &password})
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	res.Write = true

	if _, err := p.store.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	res.Delete = true

	return nil
}
