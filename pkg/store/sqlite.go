package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteFile = "stash.sqlite"

type sqlitePersistence struct {
	db   *sql.DB
	path string
	key  string
}

func openSQLite(basePath, key string) (*sqlitePersistence, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	path := filepath.Join(basePath, sqliteFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: sqlite pragma: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v BLOB NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: sqlite schema: %w", err)
	}
	return &sqlitePersistence{db: db, path: path, key: key}, nil
}

func (p *sqlitePersistence) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, p.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", p.key, err)
	}
	return data, nil
}

func (p *sqlitePersistence) Write(ctx context.Context, data []byte) error {
	if _, err := p.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, p.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.key, err)
	}
	return nil
}

func (p *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	base := filepath.Base(p.path)
	return watchDir(ctx, filepath.Dir(p.path), func(path string) bool {
		// Journal files change on every commit, the main file only on checkpoint.
		return strings.HasPrefix(filepath.Base(path), base)
	})
}

func (p *sqlitePersistence) Location() string {
	return p.path
}

func (p *sqlitePersistence) Close() error {
	return p.db.Close()
}
