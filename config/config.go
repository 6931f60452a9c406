package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"notes-api/db"
	"notes-api/middleware"
)

const EnvProduction = "production"

type Config struct {
	Port          int
	Env           string
	DBDriver      string
	DSN           string
	JWTSecret     string
	RequireAuth   bool
	HashPasswords bool
	LogLevel      string

	UserNotFoundMessage string
	NoteNotFoundMessage string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	env := GetEnv("APP_ENV", GetEnv("NODE_ENV", "development"))

	port, err := strconv.Atoi(GetEnv("PORT", "3000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	defaultLevel := "info"
	if env != EnvProduction {
		defaultLevel = "debug"
	}

	cfg := &Config{
		Port:                port,
		Env:                 env,
		DBDriver:            GetEnv("DB_DRIVER", db.DriverSQLite),
		DSN:                 GetEnv("DSN", "notes.db"),
		JWTSecret:           GetEnv("JWT_SECRET", ""),
		RequireAuth:         getBool("AUTH_REQUIRED"),
		HashPasswords:       getBool("HASH_PASSWORDS"),
		LogLevel:            GetEnv("LOG_LEVEL", defaultLevel),
		UserNotFoundMessage: GetEnv("USER_NOT_FOUND_MESSAGE", middleware.MsgUserNotFound),
		NoteNotFoundMessage: GetEnv("NOTE_NOT_FOUND_MESSAGE", middleware.MsgUserNotFound),
	}

	if cfg.RequireAuth && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// NotFoundMessages is the per-table message used when an update or delete
// targets a missing row.
func (c *Config) NotFoundMessages() map[db.Resource]string {
	return map[db.Resource]string{
		db.Users: c.UserNotFoundMessage,
		db.Notes: c.NoteNotFoundMessage,
	}
}

// Logger writes human-readable lines in development and JSON otherwise.
func (c *Config) Logger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if !c.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("env", c.Env).Logger()
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
