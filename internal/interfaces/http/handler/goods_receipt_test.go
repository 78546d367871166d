package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appproc "github.com/wms/backend/internal/application/procurement"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// engagedPO creates and approves a single-line PO at site 1
func (e *testEnv) engagedPO(t *testing.T, number string) appproc.PurchaseOrderResponse {
	t.Helper()
	supplierID := e.seedSupplier(t, "Supplier for "+number)
	po := e.createPO(t, number, supplierID)
	w := e.do(t, http.MethodPost, fmt.Sprintf("/v1/purchase-orders/%d/approve", po.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var approved appproc.PurchaseOrderResponse
	decodeData(t, w, &approved)
	return approved
}

func TestGoodsReceiptHandler_Receive(t *testing.T) {
	receivedAt := "2026-08-24T09:00:00Z"

	t.Run("posts a receipt against an engaged PO", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		po := env.engagedPO(t, "PO-2001")

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 5, "qty_received": 30}},
		}, map[string]string{"Idempotency-Key": "gr-1"})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp appproc.GoodsReceiptResponse
		decodeData(t, w, &resp)
		assert.Equal(t, procurement.ReceiptStatusPosted, resp.Status)
		assert.False(t, resp.Replayed)
	})

	t.Run("retry with the same key replays as a 200", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		po := env.engagedPO(t, "PO-2001")
		body := gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 5, "qty_received": 30}},
		}
		headers := map[string]string{"Idempotency-Key": "gr-1"}

		first := env.do(t, http.MethodPost, "/v1/goods-receipts", body, headers)
		require.Equal(t, http.StatusCreated, first.Code)
		second := env.do(t, http.MethodPost, "/v1/goods-receipts", body, headers)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())

		var firstResp, secondResp appproc.GoodsReceiptResponse
		decodeData(t, first, &firstResp)
		decodeData(t, second, &secondResp)
		assert.Equal(t, firstResp.ID, secondResp.ID)
		assert.True(t, secondResp.Replayed)
	})

	t.Run("omitted key derives one, so an exact retry still replays", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		po := env.engagedPO(t, "PO-2001")
		body := gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 5, "qty_received": 30}},
		}

		first := env.do(t, http.MethodPost, "/v1/goods-receipts", body, nil)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		second := env.do(t, http.MethodPost, "/v1/goods-receipts", body, nil)
		require.Equal(t, http.StatusOK, second.Code)

		var secondResp appproc.GoodsReceiptResponse
		decodeData(t, second, &secondResp)
		assert.True(t, secondResp.Replayed)
	})

	t.Run("product not on the PO is a 400 precondition failure", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		po := env.engagedPO(t, "PO-2001")

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 99, "qty_received": 1}},
		}, map[string]string{"Idempotency-Key": "gr-2"})

		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, dto.ErrCodePreconditionFailed, errorCode(t, w))
	})

	t.Run("receiving against a draft PO is a 409 invalid state", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		supplierID := env.seedSupplier(t, "Pacific Traders")
		po := env.createPO(t, "PO-2002", supplierID)

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 5, "qty_received": 1}},
		}, map[string]string{"Idempotency-Key": "gr-3"})

		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("unknown PO is a 404", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          999,
			"to_location_id": dock.ID,
			"received_at":    receivedAt,
			"lines":          []gin.H{{"product_id": 5, "qty_received": 1}},
		}, map[string]string{"Idempotency-Key": "gr-4"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing lines are rejected at the binding layer", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          1,
			"to_location_id": 1,
			"received_at":    receivedAt,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGoodsReceiptHandler_Get(t *testing.T) {
	t.Run("returns the receipt with lines", func(t *testing.T) {
		env := newTestEnv(t)
		dock := env.seedDock(t, 1)
		po := env.engagedPO(t, "PO-2001")

		w := env.do(t, http.MethodPost, "/v1/goods-receipts", gin.H{
			"po_id":          po.ID,
			"to_location_id": dock.ID,
			"received_at":    "2026-08-24T09:00:00Z",
			"lines":          []gin.H{{"product_id": 5, "qty_received": 30, "qty_damaged": 2}},
		}, map[string]string{"Idempotency-Key": "gr-1"})
		require.Equal(t, http.StatusCreated, w.Code)
		var created appproc.GoodsReceiptResponse
		decodeData(t, w, &created)

		w = env.do(t, http.MethodGet, fmt.Sprintf("/v1/goods-receipts/%d", created.ID), nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp appproc.GoodsReceiptResponse
		decodeData(t, w, &resp)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, int64(2), resp.Lines[0].QtyDamaged)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/v1/goods-receipts/77", nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
