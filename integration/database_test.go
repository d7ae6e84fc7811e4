//go:build database

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/datamart"
	"github.com/castinsight/castdash/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns its connection string.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "castdash",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/castdash?parseTime=true", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
}

// verifySeededDatamart migrates and seeds the datamart in-process and checks the panels.
func verifySeededDatamart(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, datamart.Migrate(ctx, backend, connStr, contract.DefaultSchema, -1, &bytes.Buffer{}))

	store, err := datamart.Open(ctx, backend, connStr, contract.DefaultSchema, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Seed(ctx))

	dash := core.NewDashboard(store, nil, &contract.Config{QueryTimeout: 30 * time.Second})

	portfolio, err := dash.Portfolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, portfolio.TotalApplications)
	assert.Equal(t, 1267600, portfolio.TotalLOC)
	assert.Equal(t, 2, portfolio.CriticalRiskApps)

	summaries, err := dash.ApplicationSummaries(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 6)

	health, err := dash.ApplicationHealth(ctx, schema.ApplicationByName("Claims Engine"))
	require.NoError(t, err)
	assert.Equal(t, "Claims Engine", health.ApplicationName)

	violations, err := dash.ApplicationViolations(ctx, schema.ApplicationByID(4))
	require.NoError(t, err)
	assert.Equal(t, 230, violations.TotalViolations)

	_, err = dash.ApplicationRisk(ctx, schema.ApplicationByID(99))
	assert.ErrorIs(t, err, schema.ErrNotFound)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, status.Applications)
	assert.Equal(t, 6*datamart.SeedSnapshots, status.Snapshots)
}

// verifyCLI runs the castdash binary against an already seeded datamart.
func verifyCLI(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	env := map[string]string{
		"CASTDASH_DB_BACKEND": string(backend),
		"CASTDASH_DB_CONNECT": connStr,
		"CASTDASH_COLOR":      "no",
	}

	_, err := runCastdash(t, env, "datamart", "status")
	require.NoError(t, err)

	out, err := runCastdash(t, env, "risk", "--output", "json")
	require.NoError(t, err)
	var buckets []schema.RiskBucket
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))
	total := 0
	for _, b := range buckets {
		total += b.ApplicationCount
	}
	assert.Equal(t, 6, total)

	_, err = runCastdash(t, env, "overview")
	require.NoError(t, err)

	_, err = runCastdash(t, env, "app", "violations", "Legacy Billing", "--output", "csv")
	require.NoError(t, err)
}

// TestCastdashWithMySQL tests the datamart store and CLI with a MySQL backend.
func TestCastdashWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	verifySeededDatamart(t, schema.MySQLBackend, connStr)
	verifyCLI(t, schema.MySQLBackend, connStr)
}

// TestCastdashWithPostgres tests the datamart store and CLI with a PostgreSQL backend.
func TestCastdashWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	verifySeededDatamart(t, schema.PostgreSQLBackend, connStr)
	verifyCLI(t, schema.PostgreSQLBackend, connStr)
}
