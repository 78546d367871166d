// Package integration provides integration testing utilities for the WMS
// backend. It uses testcontainers to spin up real PostgreSQL databases so
// the unique-key and row-locking behavior is exercised against the real
// engine.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container with the schema migrated.
// Tests are skipped when no container runtime is available.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("wms_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies all database migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath locates the migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// CreateTestSite inserts a site and returns its ID
func (tdb *TestDB) CreateTestSite(name string) int64 {
	tdb.t.Helper()

	var id int64
	err := tdb.DB.Raw(`
		INSERT INTO sites (name, timezone) VALUES (?, 'Pacific/Tahiti')
		RETURNING id
	`, name).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create test site")
	return id
}

// CreateTestLocation inserts a location of the given type and returns its ID
func (tdb *TestDB) CreateTestLocation(siteID int64, name, locType string) int64 {
	tdb.t.Helper()

	var id int64
	err := tdb.DB.Raw(`
		INSERT INTO locations (site_id, name, type) VALUES (?, ?, ?)
		RETURNING id
	`, siteID, name, locType).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create test location")
	return id
}

// CreateTestProduct inserts a product and returns its ID
func (tdb *TestDB) CreateTestProduct(sku, name string) int64 {
	tdb.t.Helper()

	var id int64
	err := tdb.DB.Raw(`
		INSERT INTO products (sku, name, uom) VALUES (?, ?, 'unit')
		RETURNING id
	`, sku, name).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create test product")
	return id
}

// CreateTestSupplier inserts a supplier and returns its ID
func (tdb *TestDB) CreateTestSupplier(name string) int64 {
	tdb.t.Helper()

	var id int64
	err := tdb.DB.Raw(`
		INSERT INTO suppliers (name, lead_time_days, reliability_score)
		VALUES (?, 14, 70)
		RETURNING id
	`, name).Scan(&id).Error
	require.NoError(tdb.t, err, "Failed to create test supplier")
	return id
}

// SeedStock upserts a stock row with the given quantities
func (tdb *TestDB) SeedStock(productID, locationID, onHand, reserved, onOrder int64) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO stock_levels (product_id, location_id, qty_on_hand, qty_reserved, qty_on_order, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON CONFLICT (product_id, location_id) DO UPDATE
		SET qty_on_hand = EXCLUDED.qty_on_hand,
		    qty_reserved = EXCLUDED.qty_reserved,
		    qty_on_order = EXCLUDED.qty_on_order
	`, productID, locationID, onHand, reserved, onOrder).Error
	require.NoError(tdb.t, err, "Failed to seed stock")
}
