//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGamelensWithMySQL tests the gamelens CLI with a MySQL run store.
func TestGamelensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gamelens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gamelens?parseTime=true", host, port.Port())
	runStoreLifecycle(t, "mysql", connStr)
}

// TestGamelensWithPostgres tests the gamelens CLI with a PostgreSQL run store.
func TestGamelensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle exercises the full run tracking lifecycle against a
// server backend: clear, analyze with tracking, list, status.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	_ = os.Setenv("GAMELENS_RUN_BACKEND", backend)
	_ = os.Setenv("GAMELENS_RUN_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("GAMELENS_RUN_BACKEND") }()
	defer func() { _ = os.Unsetenv("GAMELENS_RUN_DB_CONNECT") }()

	dataset := writeSampleDataset(t)

	// Run gamelens runs clear
	err := runGamelensCommand(t, "runs", "clear")
	require.NoError(t, err)

	// Run a tracked analysis
	err = runGamelensCommand(t, "run", dataset, "--limit", "5")
	require.NoError(t, err)

	// Run gamelens runs list
	err = runGamelensCommand(t, "runs", "list")
	require.NoError(t, err)

	// Run gamelens runs status
	err = runGamelensCommand(t, "runs", "status")
	require.NoError(t, err)
}
