package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/addrconv/internal/config"
)

func TestMigrateIsRepeatable(t *testing.T) {
	dsn := os.Getenv("ADDRCONV_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ADDRCONV_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := NewConnection(ctx, config.StorageConfig{DatabaseURL: dsn, MaxConnections: 2})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(ctx, conn.DB))
	require.NoError(t, Migrate(ctx, conn.DB))

	var exists bool
	err = conn.DB.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables WHERE table_name = 'addresses'
	)`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestNewConnectionFailsFast(t *testing.T) {
	_, err := NewConnection(context.Background(), config.StorageConfig{
		DatabaseURL: "host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1",
	})
	require.Error(t, err)
}
