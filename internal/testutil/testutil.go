// Package testutil provides shared test fixtures: an in-memory SQLite
// database migrated to the production schema, plus seed helpers.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studiodesk/internal/model"
	"studiodesk/pkg/config"
	"studiodesk/pkg/database"
	"studiodesk/pkg/jwtutil"
	"studiodesk/prometheus"
)

// NewDB opens an isolated in-memory database with the full schema applied.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection gets its own :memory: database; keep a single one.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SetupHandlerTest wires an in-memory database into the global handle the
// handlers read from, and initializes metrics and JWT config.
func SetupHandlerTest(t *testing.T) *gorm.DB {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)

	db := NewDB(t)
	database.DB = db
	t.Cleanup(func() { database.DB = nil })
	return db
}

// CreateClient seeds a client.
func CreateClient(t *testing.T, db *gorm.DB, name string) *model.Client {
	t.Helper()
	client := &model.Client{Name: name}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateQuotation seeds a quotation for a fresh client.
func CreateQuotation(t *testing.T, db *gorm.DB, title string) *model.Quotation {
	t.Helper()
	client := CreateClient(t, db, title+" client")
	quotation := &model.Quotation{
		ClientID:      client.ID,
		Title:         title,
		Status:        model.QuotationStatusDraft,
		DesignFeeType: model.DesignFeePercentage,
		TaxPercentage: 18,
	}
	require.NoError(t, db.Create(quotation).Error)
	return quotation
}

// CreateRoom seeds a room under a quotation.
func CreateRoom(t *testing.T, db *gorm.DB, quotationID uint, name string) *model.Room {
	t.Helper()
	room := &model.Room{QuotationID: quotationID, Name: name}
	require.NoError(t, db.Create(room).Error)
	return room
}

// CreateCatalogItem seeds a catalog item.
func CreateCatalogItem(t *testing.T, db *gorm.DB, name string, rate float64) *model.CatalogItem {
	t.Helper()
	item := &model.CatalogItem{
		Name:        name,
		Unit:        "sqft",
		DefaultRate: rate,
		Category:    "Material",
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
