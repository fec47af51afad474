package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/natours/backend/internal/config"
	"github.com/zhouzirui/natours/backend/internal/storage/jsonfile"
	"github.com/zhouzirui/natours/backend/internal/storage/sqlite"
)

func writeData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tours.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":0,"name":"A"},{"id":1,"name":"B"}]`), 0o644))
	return path
}

func TestOpenFileStore(t *testing.T) {
	store, closer, err := Open(context.Background(), config.StoreConfig{Driver: config.StoreFile, DataFile: writeData(t)})
	require.NoError(t, err)
	defer closer.Close()

	require.IsType(t, &jsonfile.Store{}, store)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestOpenSQLiteSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{
		Driver:     config.StoreSQLite,
		DataFile:   writeData(t),
		SQLitePath: filepath.Join(t.TempDir(), "tours.db"),
		SeedSQLite: true,
	}

	store, closer, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &sqlite.Store{}, store)

	_, err = store.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	// reopening must not re-import over existing rows
	store, closer, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestOpenSQLiteSeedFailure(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{
		Driver:     config.StoreSQLite,
		DataFile:   filepath.Join(t.TempDir(), "missing.json"),
		SQLitePath: filepath.Join(t.TempDir(), "tours.db"),
		SeedSQLite: true,
	})
	require.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"})
	require.Error(t, err)
}
