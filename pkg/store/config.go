package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a persistence implementation.
type Backend string

const (
	// BackendDiskv stores the state document as a file through diskv.
	BackendDiskv Backend = "diskv"
	// BackendSQLite stores the state document in a SQLite key/value table.
	BackendSQLite Backend = "sqlite"
)

// DefaultKey is the key the state document is stored under.
const DefaultKey = "stash-state"

// Config tells the store where and how to persist.
type Config interface {
	BasePath() string
	Backend() Backend
	Key() string
}

// NewConfig returns a Config with explicit values. Empty backend and key
// fall back to the defaults.
func NewConfig(path string, backend Backend, key string) Config {
	if backend == "" {
		backend = BackendDiskv
	}
	if key == "" {
		key = DefaultKey
	}
	return &fileConfig{Path: path, Store: backend, StateKey: key}
}

// LoadConfig reads .stash.yaml (from STASH_CONFIG_PATH, the working
// directory or the home directory) and STASH_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.stash")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("key", DefaultKey)
	v.SetConfigName(".stash") // .yaml is implicit
	v.SetEnvPrefix("STASH")
	v.AutomaticEnv()

	if override := os.Getenv("STASH_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	backend := Backend(strings.ToLower(strings.TrimSpace(v.GetString("backend"))))
	switch backend {
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
	return NewConfig(path, backend, v.GetString("key")), nil
}

type fileConfig struct {
	Path     string  `json:"path"`
	Store    Backend `json:"backend"`
	StateKey string  `json:"key"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() Backend {
	return f.Store
}

func (f *fileConfig) Key() string {
	return f.StateKey
}
