package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func stockLevelRows(productID, locationID, onHand, reserved, onOrder int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "location_id", "qty_on_hand", "qty_reserved", "qty_on_order", "updated_at",
	}).AddRow(productID, locationID, onHand, reserved, onOrder, time.Now())
}

func TestGormStockLevelRepository_FindOrCreateForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("locks an existing row with FOR UPDATE", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockLevelRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "stock_levels" WHERE product_id = \$1 AND location_id = \$2 .* FOR UPDATE`).
			WithArgs(int64(1), int64(10), 1).
			WillReturnRows(stockLevelRows(1, 10, 100, 5, 0))

		level, err := repo.FindOrCreateForUpdate(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(100), level.QtyOnHand)
		assert.Equal(t, int64(5), level.QtyReserved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts a zero row when the pair is untouched", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockLevelRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "stock_levels" .* FOR UPDATE`).
			WithArgs(int64(1), int64(10), 1).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "location_id"}))
		mock.ExpectQuery(`INSERT INTO "stock_levels"`).
			WillReturnRows(sqlmock.NewRows([]string{"qty_on_hand", "qty_reserved", "qty_on_order"}).
				AddRow(0, 0, 0))

		level, err := repo.FindOrCreateForUpdate(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(0), level.QtyOnHand)
		assert.Equal(t, int64(0), level.QtyOnOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("relocks the winner's row after losing the insert race", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockLevelRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "stock_levels" .* FOR UPDATE`).
			WithArgs(int64(1), int64(10), 1).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "location_id"}))
		mock.ExpectQuery(`INSERT INTO "stock_levels"`).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectQuery(`SELECT \* FROM "stock_levels" .* FOR UPDATE`).
			WithArgs(int64(1), int64(10), 1).
			WillReturnRows(stockLevelRows(1, 10, 30, 0, 0))

		level, err := repo.FindOrCreateForUpdate(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(30), level.QtyOnHand)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockMovementRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("surfaces a duplicate key as an idempotency conflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(gormDB)

		mock.ExpectQuery(`INSERT INTO "stock_movements"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		to := int64(10)
		movement, err := inventory.NewStockMovement(
			1, nil, &to, inventory.MovementTypeReceipt, 5, "", time.Now(), 7, "key-1")
		require.NoError(t, err)

		err = repo.Append(ctx, movement)

		assert.ErrorIs(t, err, shared.ErrIdempotencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLocationRepository_FindInboundDock(t *testing.T) {
	ctx := context.Background()

	locationRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "site_id", "name", "type"})
	}

	t.Run("prefers the named inbound dock", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "locations" WHERE site_id = \$1 AND type = \$2 AND name = \$3`).
			WithArgs(int64(1), "dock", "TAH-DOCK", 1).
			WillReturnRows(locationRows().AddRow(3, 1, "TAH-DOCK", "dock"))

		dock, err := repo.FindInboundDock(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(3), dock.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to the lowest-id dock", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "locations" WHERE site_id = \$1 AND type = \$2 AND name = \$3`).
			WithArgs(int64(1), "dock", "TAH-DOCK", 1).
			WillReturnRows(locationRows())
		mock.ExpectQuery(`SELECT \* FROM "locations" WHERE site_id = \$1 AND type = \$2 ORDER BY id`).
			WithArgs(int64(1), "dock", 1).
			WillReturnRows(locationRows().AddRow(2, 1, "SOUTH-DOCK", "dock"))

		dock, err := repo.FindInboundDock(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(2), dock.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no dock at all is a configuration fault", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "locations"`).
			WithArgs(int64(1), "dock", "TAH-DOCK", 1).
			WillReturnRows(locationRows())
		mock.ExpectQuery(`SELECT \* FROM "locations"`).
			WithArgs(int64(1), "dock", 1).
			WillReturnRows(locationRows())

		_, err := repo.FindInboundDock(ctx, 1)

		assert.ErrorIs(t, err, shared.ErrConfiguration)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
