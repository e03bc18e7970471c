//go:build integration

// Package integration runs the application against a real PostgreSQL
// started with testcontainers. Run with: go test -tags integration ./tests/integration/...
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/boilerparts/backend/internal/infrastructure/migration"
	"github.com/boilerparts/backend/internal/infrastructure/persistence"
	"github.com/boilerparts/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

var (
	sharedOnce      sync.Once
	sharedContainer *tcpostgres.PostgresContainer
	sharedDSN       string
	sharedErr       error
)

// TestDB is a migrated database inside the shared container
type TestDB struct {
	*persistence.Database
	DSN string
	t   *testing.T
}

func startContainer() {
	ctx := context.Background()
	sharedContainer, sharedErr = tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("boilerparts_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if sharedErr != nil {
		return
	}
	sharedDSN, sharedErr = sharedContainer.ConnectionString(ctx, "sslmode=disable")
	if sharedErr != nil {
		return
	}
	sharedErr = migrateUp(sharedDSN)
}

func migrateUp(dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// NewTestDB connects to the shared container, starting and migrating it on
// first use. Tables are truncated so each test starts empty.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedOnce.Do(startContainer)
	require.NoError(t, sharedErr, "Failed to start PostgreSQL container")

	gormLog := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	database, err := persistence.Open(gormpostgres.Open(sharedDSN), gormLog)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tdb := &TestDB{Database: database, DSN: sharedDSN, t: t}
	tdb.CleanTables()
	return tdb
}

// CleanTables empties every application table and resets identities
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	err := tdb.DB.Exec("TRUNCATE TABLE shopping_cart, boiler_parts, users RESTART IDENTITY CASCADE").Error
	require.NoError(tdb.t, err, "Failed to truncate tables")
}

// terminateContainer stops the shared container if one was started
func terminateContainer() {
	if sharedContainer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = sharedContainer.Terminate(ctx)
}
