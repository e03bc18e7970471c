// Package testutil provides shared fixtures for handler, router and
// integration tests: databases, a fully wired service stack and catalog
// fixtures.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	appcart "github.com/boilerparts/backend/internal/application/cart"
	appcatalog "github.com/boilerparts/backend/internal/application/catalog"
	appidentity "github.com/boilerparts/backend/internal/application/identity"
	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/infrastructure/auth"
	"github.com/boilerparts/backend/internal/infrastructure/config"
	"github.com/boilerparts/backend/internal/infrastructure/persistence"
	"github.com/boilerparts/backend/internal/infrastructure/persistence/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	Database *persistence.Database
	Mock     sqlmock.Sqlmock
	SqlDB    *sql.DB
}

// NewMockDB creates a sqlmock-backed postgres database. Pings are
// monitored, so tests can expect or fail them. The connection is closed on
// test cleanup.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{
		Database: &persistence.Database{DB: gormDB},
		Mock:     mock,
		SqlDB:    mockDB,
	}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewSQLiteDB opens an in-memory SQLite database with the schema migrated.
// A single connection keeps every query on the same in-memory database.
func NewSQLiteDB(t *testing.T) *persistence.Database {
	t.Helper()

	database, err := persistence.Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.DB.AutoMigrate(
		&models.UserModel{},
		&models.BoilerPartModel{},
		&models.CartItemModel{},
	))
	return database
}

// JWTConfig returns a JWT configuration suitable for tests
func JWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "boilerparts-test",
	}
}

// Stack is the application wired on top of one database
type Stack struct {
	Database  *persistence.Database
	JWT       *auth.JWTService
	Blacklist *auth.InMemoryTokenBlacklist

	Parts *persistence.GormBoilerPartRepository

	Users   *appidentity.UserService
	Auth    *appidentity.AuthService
	Catalog *appcatalog.BoilerPartService
	Cart    *appcart.CartService
}

// NewStack wires repositories and services on database
func NewStack(t *testing.T, database *persistence.Database) *Stack {
	t.Helper()

	logger := zap.NewNop()
	userRepo := persistence.NewGormUserRepository(database.DB)
	partRepo := persistence.NewGormBoilerPartRepository(database.DB)
	cartRepo := persistence.NewGormCartRepository(database.DB)
	jwtService := auth.NewJWTService(JWTConfig())
	blacklist := auth.NewInMemoryTokenBlacklist()

	return &Stack{
		Database:  database,
		JWT:       jwtService,
		Blacklist: blacklist,
		Parts:     partRepo,
		Users:     appidentity.NewUserService(userRepo, logger),
		Auth:      appidentity.NewAuthService(userRepo, jwtService, blacklist, logger),
		Catalog: appcatalog.NewBoilerPartService(partRepo, config.CatalogConfig{
			PageSize:    appcatalog.DefaultPageSize,
			SearchLimit: appcatalog.DefaultSearchLimit,
		}, logger),
		Cart: appcart.NewCartService(cartRepo, userRepo, partRepo, logger),
	}
}

// Part returns a catalog part with sensible defaults
func Part(name string, price int64, images ...string) *catalog.BoilerPart {
	return &catalog.BoilerPart{
		BoilerManufacturer: "Baxi",
		PartsManufacturer:  "Azure",
		Price:              price,
		VendorCode:         "VC-" + name,
		Name:               name,
		Description:        "description of " + name,
		Compatibility:      "universal",
		Images:             catalog.EncodeImages(images),
		InStock:            5,
	}
}

// SeedParts stores parts and returns them with IDs assigned
func (s *Stack) SeedParts(t *testing.T, parts ...*catalog.BoilerPart) []*catalog.BoilerPart {
	t.Helper()
	require.NoError(t, s.Parts.CreateBatch(t.Context(), parts))
	return parts
}

// RegisterAndLogin creates a user and returns it logged in
func (s *Stack) RegisterAndLogin(t *testing.T, username, email, password string) *appidentity.LoginResult {
	t.Helper()

	reg, err := s.Users.Register(t.Context(), appidentity.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	require.Empty(t, reg.WarningMessage)

	res, err := s.Auth.Login(t.Context(), appidentity.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return res
}
