package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

func (e *testEnv) seedStock(t *testing.T, productID, locationID, onHand, reserved int64) {
	t.Helper()
	ctx := context.Background()
	level, err := e.stocks.FindOrCreateForUpdate(ctx, productID, locationID)
	require.NoError(t, err)
	level.QtyOnHand = onHand
	level.QtyReserved = reserved
	require.NoError(t, e.stocks.Save(ctx, level))
}

func TestStockHandler_Transfer(t *testing.T) {
	t.Run("moves stock and returns the movement", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 100, 0)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         30,
		}, map[string]string{"Idempotency-Key": "tr-1"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp appinv.MovementResponse
		decodeData(t, w, &resp)
		assert.Equal(t, "tr-1", resp.IdempotencyKey)
		assert.False(t, resp.Replayed)
	})

	t.Run("missing idempotency key is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 100, 0)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         30,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("retry with the same key replays the original response", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 100, 0)
		body := gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         30,
		}
		headers := map[string]string{"Idempotency-Key": "tr-1"}

		first := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", body, headers)
		require.Equal(t, http.StatusOK, first.Code)
		second := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", body, headers)
		require.Equal(t, http.StatusOK, second.Code)

		var firstResp, secondResp appinv.MovementResponse
		decodeData(t, first, &firstResp)
		decodeData(t, second, &secondResp)
		assert.Equal(t, firstResp.MovementID, secondResp.MovementID)
		assert.True(t, secondResp.Replayed)

		level, err := env.stocks.FindOrCreateForUpdate(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(70), level.QtyOnHand)
	})

	t.Run("insufficient available stock is a 400 precondition failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 20, 15)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         10,
		}, map[string]string{"Idempotency-Key": "tr-2"})

		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, dto.ErrCodePreconditionFailed, errorCode(t, w))
	})

	t.Run("rejects non-positive quantity at the binding layer", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/transfer", gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         0,
		}, map[string]string{"Idempotency-Key": "tr-3"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHandler_ReserveIssue(t *testing.T) {
	t.Run("reserve then issue consumes the reservation", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 50, 0)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/reserve", gin.H{
			"product_id":  1,
			"location_id": 10,
			"quantity":    20,
		}, map[string]string{"Idempotency-Key": "rs-1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodPost, "/v1/stock-movements/issue", gin.H{
			"product_id":  1,
			"location_id": 10,
			"quantity":    20,
		}, map[string]string{"Idempotency-Key": "is-1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		level, err := env.stocks.FindOrCreateForUpdate(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(30), level.QtyOnHand)
		assert.Equal(t, int64(0), level.QtyReserved)
	})

	t.Run("issue beyond the reservation is a 400 precondition failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 50, 5)

		w := env.do(t, http.MethodPost, "/v1/stock-movements/issue", gin.H{
			"product_id":  1,
			"location_id": 10,
			"quantity":    10,
		}, map[string]string{"Idempotency-Key": "is-2"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodePreconditionFailed, errorCode(t, w))
	})
}

func TestStockHandler_List(t *testing.T) {
	t.Run("filters by product", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 50, 0)
		env.seedStock(t, 2, 10, 30, 0)

		w := env.do(t, http.MethodGet, "/v1/stock?product_id=2", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var levels []map[string]any
		decodeData(t, w, &levels)
		require.Len(t, levels, 1)
		assert.EqualValues(t, 2, levels[0]["product_id"])
	})

	t.Run("rejects a non-integer filter", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/v1/stock?product_id=abc", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHandler_ListMovements(t *testing.T) {
	t.Run("requires product_id", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/v1/movements", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns movements for a product", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedStock(t, 1, 10, 100, 0)
		env.do(t, http.MethodPost, "/v1/stock-movements/transfer", gin.H{
			"product_id":       1,
			"from_location_id": 10,
			"to_location_id":   20,
			"quantity":         30,
		}, map[string]string{"Idempotency-Key": "tr-1"})

		w := env.do(t, http.MethodGet, "/v1/movements?product_id=1", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var movements []map[string]any
		decodeData(t, w, &movements)
		assert.Len(t, movements, 1)
	})
}
