// Package sqlite is the storage external backing the contact store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dfdavila2/workingWithDataInLWC/config"
	"github.com/dfdavila2/workingWithDataInLWC/core"
)

type Config struct {
	DatabasePath string `env:"SQLITE_DATABASE_PATH" default:"./data/app.db"`

	MaxOpenConns    int           `env:"SQLITE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `env:"SQLITE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"SQLITE_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `env:"SQLITE_CONN_MAX_IDLE_TIME" default:"10m"`

	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
	CacheSize       int           `env:"SQLITE_CACHE_SIZE" default:"2000"`
	JournalMode     string        `env:"SQLITE_JOURNAL_MODE" default:"WAL"`
	SynchronousMode string        `env:"SQLITE_SYNCHRONOUS" default:"NORMAL"`

	ForeignKeys bool `env:"SQLITE_ENABLE_FOREIGN_KEYS" default:"true"`
	AutoMigrate bool `env:"SQLITE_AUTO_MIGRATE" default:"true"`
}

// Schema applied on start when AutoMigrate is enabled.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts (last_name, first_name);
`

type SQLite struct {
	cfg       Config
	db        *sql.DB
	logger    core.Logger
	connected bool
}

func New() *SQLite {
	return &SQLite{}
}

func (s *SQLite) Setup(ctx core.AppContext) error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = ctx.Logger().WithComponent("sqlite")

	if dir := filepath.Dir(s.cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	s.logger.Info("sqlite setup completed",
		core.Field{Key: "database_path", Value: s.cfg.DatabasePath},
		core.Field{Key: "journal_mode", Value: s.cfg.JournalMode})
	return nil
}

func (s *SQLite) Start(ctx context.Context) error {
	if s.connected {
		return fmt.Errorf("sqlite already connected")
	}

	db, err := sql.Open("sqlite3", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(s.cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if s.cfg.AutoMigrate {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	s.db = db
	s.connected = true
	s.logger.Info("sqlite connected", core.Field{Key: "path", Value: s.cfg.DatabasePath})
	return nil
}

func (s *SQLite) Stop(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close sqlite database: %w", err)
	}
	s.connected = false
	s.logger.Info("sqlite closed")
	return nil
}

func (s *SQLite) Health(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("sqlite not connected")
	}
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(healthCtx)
}

// DB exposes the pool for modules.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// dsn builds the connection string with pragmas encoded as query params.
func (s *SQLite) dsn() string {
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprintf("%d", s.cfg.BusyTimeout.Milliseconds()))
	params.Set("_journal_mode", s.cfg.JournalMode)
	params.Set("_synchronous", s.cfg.SynchronousMode)
	params.Set("_cache_size", fmt.Sprintf("%d", s.cfg.CacheSize))
	if s.cfg.ForeignKeys {
		params.Set("_foreign_keys", "on")
	}
	return fmt.Sprintf("file:%s?%s", s.cfg.DatabasePath, params.Encode())
}
