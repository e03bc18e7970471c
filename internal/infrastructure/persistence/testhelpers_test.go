package persistence

import (
	"testing"

	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the application schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
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
	return database.DB
}

// testPart returns a catalog part with sensible defaults
func testPart(name string, price int64) *catalog.BoilerPart {
	return &catalog.BoilerPart{
		BoilerManufacturer: "Baxi",
		PartsManufacturer:  "Azure",
		Price:              price,
		VendorCode:         "VC-" + name,
		Name:               name,
		Description:        "description of " + name,
		Compatibility:      "universal",
		Images:             catalog.EncodeImages([]string{"https://img.example/" + name + ".jpg"}),
		InStock:            5,
	}
}

// seedParts stores parts and returns them with IDs assigned
func seedParts(t *testing.T, db *gorm.DB, parts ...*catalog.BoilerPart) []*catalog.BoilerPart {
	t.Helper()
	require.NoError(t, NewGormBoilerPartRepository(db).CreateBatch(t.Context(), parts))
	return parts
}
