package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"mcvox/internal/logger"
	"mcvox/internal/world"
)

// Store keeps one compressed blob per chunk coordinate.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open creates or opens the chunk database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("persistence: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, log: logger.Named("persistence")}
	s.log.Info("chunk store opened", zap.String("path", path))
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		z INTEGER NOT NULL,
		data BLOB NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (x, y, z)
	);`)
	if err != nil {
		return fmt.Errorf("create chunks table: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes blobs for several chunks in one transaction.
func (s *Store) Put(ctx context.Context, blobs map[world.ChunkCoord][]byte) error {
	if len(blobs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks (x, y, z, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (x, y, z) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for coord, data := range blobs {
		if _, err := stmt.ExecContext(ctx, coord.X, coord.Y, coord.Z, data, now); err != nil {
			return fmt.Errorf("store chunk %v: %w", coord, err)
		}
	}
	return tx.Commit()
}

// Get returns the blob stored for coord.
func (s *Store) Get(ctx context.Context, coord world.ChunkCoord) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM chunks WHERE x = ? AND y = ? AND z = ?`,
		coord.X, coord.Y, coord.Z).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load chunk %v: %w", coord, err)
	}
	return data, true, nil
}

// Coords lists every stored chunk in x, y, z order.
func (s *Store) Coords(ctx context.Context) ([]world.ChunkCoord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT x, y, z FROM chunks ORDER BY x, y, z`)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var out []world.ChunkCoord
	for rows.Next() {
		var c world.ChunkCoord
		if err := rows.Scan(&c.X, &c.Y, &c.Z); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
