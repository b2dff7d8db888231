package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by Read when nothing has been stored yet.
var ErrNotFound = errors.New("store: state not found")

// Persistence stores the serialized state document under a fixed key.
type Persistence interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Watch(ctx context.Context) (<-chan Event, error)
	Location() string
	Close() error
}

// Load creates the Persistence selected by cfg. A nil cfg is read with
// LoadConfig.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	key := cfg.Key()
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Backend() {
	case BackendSQLite:
		return openSQLite(basePath, key)
	case BackendDiskv, "":
		return openDiskv(basePath, key)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func openDiskv(basePath, key string) (*persistence, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, ".tmp"),
			// No read cache: the document can be rewritten by another
			// process and Watch callers re-read it.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		key:      key,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	key      string
}

func (p *persistence) Read(_ context.Context) ([]byte, error) {
	val, err := p.d.Read(p.key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", p.key, err)
	}
	return val, nil
}

func (p *persistence) Write(_ context.Context, data []byte) error {
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.key, err)
	}
	return nil
}

func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	name := p.key
	return watchDir(ctx, p.basePath, func(path string) bool {
		return filepath.Base(path) == name
	})
}

func (p *persistence) Location() string {
	return filepath.Join(p.basePath, p.key)
}

func (p *persistence) Close() error {
	return nil
}
