package saves

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
)

const createSaves = `CREATE TABLE IF NOT EXISTS saves (
    name TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    saved_at TEXT NOT NULL
);`

const (
	upsertSave = `INSERT INTO saves (name, data, saved_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`
	selectSave  = `SELECT data, saved_at FROM saves WHERE name = ?`
	deleteSave  = `DELETE FROM saves WHERE name = ?`
	selectNames = `SELECT name FROM saves ORDER BY name`
)

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite save repository
type SQLiteConfig struct {
	// Path is the database file; its directory is created if missing
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// NewSQLite opens (or creates) the database at cfg.Path and ensures the
// saves table exists
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", cfg.Path)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", cfg.Path)
	}
	// one writer at a time keeps sqlite from reporting SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createSaves); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create saves table")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{db: db, clock: c}, nil
}

func (r *sqliteRepository) Store(ctx context.Context, input StoreInput) (*StoreOutput, error) {
	if err := validateStore(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	if _, err := r.db.ExecContext(ctx, upsertSave, input.Name, input.Data, now.Format(time.RFC3339Nano)); err != nil {
		slog.ErrorContext(ctx, "failed to store save in sqlite",
			"name", input.Name,
			"error", err)
		return nil, errors.Wrapf(err, "failed to store save %s", input.Name)
	}

	slog.DebugContext(ctx, "stored save in sqlite",
		"name", input.Name,
		"bytes", len(input.Data))

	return &StoreOutput{SavedAt: now}, nil
}

func (r *sqliteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	var (
		data    []byte
		savedAt string
	)
	err := r.db.QueryRowContext(ctx, selectSave, input.Name).Scan(&data, &savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(input.Name)
		}
		return nil, errors.Wrapf(err, "failed to load save %s", input.Name)
	}

	at, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save %s has an invalid timestamp", input.Name)
	}

	return &LoadOutput{
		Name:    input.Name,
		Data:    data,
		SavedAt: at,
	}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, deleteSave, input.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete save %s", input.Name)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete save %s", input.Name)
	}
	if affected == 0 {
		return nil, notFound(input.Name)
	}

	slog.DebugContext(ctx, "deleted save from sqlite", "name", input.Name)
	return &DeleteOutput{}, nil
}

func (r *sqliteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, selectNames)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saves")
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan save name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list saves")
	}

	return &ListOutput{Names: names}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
