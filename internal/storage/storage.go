// Package storage selects and opens the configured tour store.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/zhouzirui/natours/backend/internal/config"
	"github.com/zhouzirui/natours/backend/internal/model/tour"
	"github.com/zhouzirui/natours/backend/internal/storage/jsonfile"
	"github.com/zhouzirui/natours/backend/internal/storage/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store named by cfg.Driver. The closer releases any
// underlying resources.
func Open(ctx context.Context, cfg config.StoreConfig) (tour.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.StoreFile, "":
		store, err := jsonfile.Open(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil

	case config.StoreSQLite:
		db, err := sqlite.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		store := sqlite.NewStore(db)
		if cfg.SeedSQLite {
			if err := seed(ctx, store, cfg.DataFile); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return store, db, nil

	default:
		return nil, nil, fmt.Errorf("unknown tour store %q", cfg.Driver)
	}
}

// seed imports the JSON data file into an empty database.
func seed(ctx context.Context, store *sqlite.Store, dataFile string) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items, err := jsonfile.Load(dataFile)
	if err != nil {
		return fmt.Errorf("seed sqlite: %w", err)
	}
	n, err := store.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("seed sqlite: %w", err)
	}
	log.Printf("[storage] seeded %d tours from %s", n, dataFile)
	return nil
}
