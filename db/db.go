package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the data access layer over the users and notes tables. A Store
// returned by InTx is bound to a single transaction.
type Store struct {
	db       *sql.DB
	q        querier
	tx       *sql.Tx
	driver   string
	validate *validator.Validate
}

// Open connects to the database with the given driver. For sqlite3 the
// connection string is extended so every pooled connection enforces
// foreign keys.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverMySQL:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return New(sqlDB, driver), nil
}

// New wraps an existing connection pool.
func New(sqlDB *sql.DB, driver string) *Store {
	return &Store{
		db:       sqlDB,
		q:        sqlDB,
		driver:   driver,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func sqliteDSN(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000", "_txlock=immediate"}
	var missing []string
	for _, p := range params {
		if !strings.Contains(dsn, strings.SplitN(p, "=", 2)[0]+"=") {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping runs a trivial query against the database.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.q.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return translate("", err)
	}
	return nil
}

// InTx runs fn against a Store bound to one transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. Nested calls
// reuse the outer transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translate("", fmt.Errorf("begin transaction: %w", err))
	}

	txStore := &Store{db: s.db, q: tx, tx: tx, driver: s.driver, validate: s.validate}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return translate("", fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	queries := mysqlSchema
	if s.driver == DriverSQLite {
		queries = sqliteSchema
	}

	for _, query := range queries {
		if _, err := s.q.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INT AUTO_INCREMENT PRIMARY KEY,
		titre VARCHAR(255) NOT NULL,
		contenu TEXT NOT NULL,
		user_id INT NOT NULL,
		parent_id INT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (parent_id) REFERENCES notes(id)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		titre TEXT NOT NULL,
		contenu TEXT NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		parent_id INTEGER REFERENCES notes(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id)`,
}
