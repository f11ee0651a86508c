// Package storage opens the console's local credential store: an SQLite
// database migrated with goose, or a Redis hash.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/dmitrijs2005/portfolio/internal/client/config"
	"github.com/dmitrijs2005/portfolio/internal/client/migrations"
	"github.com/dmitrijs2005/portfolio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portfolio/internal/filex"
)

// Store bundles the repository with whatever must be closed on shutdown.
type Store struct {
	Metadata metadata.Repository
	closer   io.Closer
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Open returns the store selected by cfg.Store with keys scoped to scope
// (normally the API base URL).
func Open(ctx context.Context, cfg *config.Config, scope string) (*Store, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return &Store{
			Metadata: metadata.NewRedisRepository(client, cfg.Redis.Prefix, scope),
			closer:   client,
		}, nil

	case config.StoreSQLite, "":
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		db, err := InitDatabase(ctx, filepath.Join(dir, cfg.DBFile))
		if err != nil {
			return nil, err
		}
		return &Store{
			Metadata: metadata.NewSQLiteRepository(db, scope),
			closer:   db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
