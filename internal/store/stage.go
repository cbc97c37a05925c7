package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	_ "modernc.org/sqlite" // SQLite driver
)

// StageStore is the local sqlite staging backend: the same upsert contract
// as the document database, usable offline and inspectable with any sqlite
// client.
type StageStore struct {
	db *sql.DB
}

// OpenStage opens or creates the staging database at the given path.
func OpenStage(path string) (*StageStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening staging database: %w", err)
	}

	// single writer; the pipeline is strictly sequential anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &StageStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("staging migration failed: %w", err)
	}
	return store, nil
}

func (s *StageStore) migrate() error {
	version, err := s.schemaVersion()
	if err != nil {
		return err
	}
	if version >= stageSchemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback()

	if version < 1 {
		if _, err := tx.Exec(stageSchemaV1); err != nil {
			return fmt.Errorf("applying schema v1: %w", err)
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", 1); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	}

	return tx.Commit()
}

func (s *StageStore) schemaVersion() (int, error) {
	var exists int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, nil
	}

	var version sql.NullInt64
	err = s.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}
	return int(version.Int64), nil
}

// Ready verifies the connection.
func (s *StageStore) Ready(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WriteAuthor upserts an author row keyed by generated id.
func (s *StageStore) WriteAuthor(ctx context.Context, id primitive.ObjectID, doc bson.M) error {
	return s.upsert(ctx, "authors", "id", id.Hex(), doc)
}

// WritePlay upserts a play row keyed by the source-site play id.
func (s *StageStore) WritePlay(ctx context.Context, playID string, doc bson.M) error {
	return s.upsert(ctx, "plays", "play_id", playID, doc)
}

func (s *StageStore) upsert(ctx context.Context, table, keyColumn, key string, doc bson.M) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", key, err)
	}
	now := time.Now().UTC()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(%s) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, table, keyColumn, keyColumn)

	if _, err := s.db.ExecContext(ctx, query, key, string(raw), now, now); err != nil {
		return fmt.Errorf("upserting into %s: %w", table, err)
	}
	return nil
}

// Timestamps reports when a row was first inserted and last updated.
func (s *StageStore) Timestamps(ctx context.Context, table, keyColumn, key string) (created, updated time.Time, err error) {
	query := fmt.Sprintf("SELECT created_at, updated_at FROM %s WHERE %s = ?", table, keyColumn)
	err = s.db.QueryRowContext(ctx, query, key).Scan(&created, &updated)
	return created, updated, err
}

// Count reports the number of rows in a staging table.
func (s *StageStore) Count(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	return n, err
}

// Close closes the database connection.
func (s *StageStore) Close(ctx context.Context) error {
	return s.db.Close()
}
