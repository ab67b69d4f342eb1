package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mindweave/mindweave/pkg/blob"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/store"
)

// Config is the CLI configuration, loaded from an optional TOML file.
// Every field has a working default so the CLI runs with no config at
// all.
type Config struct {
	Spacing  layout.Spacing `toml:"spacing"`
	Store    StoreConfig    `toml:"store"`
	Autosave AutosaveConfig `toml:"autosave"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of "file" (default), "redis", "mongo", "null".
	Backend string `toml:"backend"`

	// Path is the blob directory for the file backend; empty means
	// ~/.config/mindweave/.
	Path string `toml:"path"`

	// Addr is the Redis address for the redis backend.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	// URI/Database/Collection configure the mongo backend.
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// AutosaveConfig tunes the debounced save.
type AutosaveConfig struct {
	DelayMS int `toml:"delay_ms"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Spacing: layout.DefaultSpacing,
		Store:   StoreConfig{Backend: "file"},
		Autosave: AutosaveConfig{
			DelayMS: int(store.DefaultAutosaveDelay / time.Millisecond),
		},
	}
}

// loadConfig reads a TOML config file. With an empty path the default
// location (~/.config/mindweave/config.toml) is tried; a missing file
// there is not an error, but an explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "mindweave", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Spacing.X <= 0 {
		cfg.Spacing.X = layout.DefaultSpacing.X
	}
	if cfg.Spacing.Y <= 0 {
		cfg.Spacing.Y = layout.DefaultSpacing.Y
	}
	return cfg, nil
}

// openBlobStore builds the configured blob backend.
func openBlobStore(ctx context.Context, cfg StoreConfig) (blob.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return blob.NewFileStore(cfg.Path)
	case "redis":
		addr := cfg.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		return blob.NewRedisStore(ctx, blob.RedisConfig{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case "mongo":
		uri := cfg.URI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		return blob.NewMongoStore(ctx, blob.MongoConfig{
			URI:        uri,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	case "null":
		return blob.NewNullStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// openStore loads the persisted document (if any) into a new store.
// The returned cleanup flushes pending saves and closes the backend.
func openStore(ctx context.Context, cfg Config, title string) (*store.Store, func(), error) {
	backend, err := openBlobStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	persister := blob.NewPersister(backend)

	st := store.New(ctx, store.Options{
		Title:         title,
		Layout:        layout.New(cfg.Spacing),
		Persister:     persister,
		AutosaveDelay: time.Duration(cfg.Autosave.DelayMS) * time.Millisecond,
	})
	cleanup := func() {
		st.Flush()
		_ = persister.Close()
	}
	return st, cleanup, nil
}
