package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/wms/backend/internal/application/inventory"
	masterdataapp "github.com/wms/backend/internal/application/masterdata"
	procurementapp "github.com/wms/backend/internal/application/procurement"
	shippingapp "github.com/wms/backend/internal/application/shipping"
	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/infrastructure/persistence/memory"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires real services over in-memory repositories behind a gin
// engine, the same shape the server assembles in production.
type testEnv struct {
	engine *gin.Engine

	stocks    *memory.StockLevelRepository
	movements *memory.StockMovementRepository
	locations *memory.LocationRepository
	pos       *memory.PurchaseOrderRepository
	receipts  *memory.GoodsReceiptRepository
	shipments *memory.ShipmentRepository
	sites     *memory.SiteRepository
	products  *memory.ProductRepository
	suppliers *memory.SupplierRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		stocks:    memory.NewStockLevelRepository(),
		movements: memory.NewStockMovementRepository(),
		locations: memory.NewLocationRepository(),
		pos:       memory.NewPurchaseOrderRepository(),
		receipts:  memory.NewGoodsReceiptRepository(),
		shipments: memory.NewShipmentRepository(),
		sites:     memory.NewSiteRepository(),
		products:  memory.NewProductRepository(),
		suppliers: memory.NewSupplierRepository(),
	}
	audits := memory.NewAuditLogRepository()

	scope := inventoryapp.NewNoOpTransactionScope(
		env.stocks, env.movements, env.locations, env.pos, env.receipts, env.shipments, audits)
	rebuilder := inventoryapp.NewOnOrderRebuilder(scope)

	movementService := inventoryapp.NewMovementService(scope, env.movements, env.stocks, inventoryapp.NopReplayCache{})
	poService := procurementapp.NewPurchaseOrderService(scope, env.pos, env.suppliers, rebuilder)
	receivingService := procurementapp.NewReceivingService(scope, env.pos, env.receipts, env.locations, rebuilder)
	shipmentService := shippingapp.NewShipmentService(scope, env.shipments)
	mdService := masterdataapp.NewMasterdataService(env.sites, env.locations, env.products, env.suppliers, memory.NewActorRepository())

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.ActorID())
	v1 := engine.Group("/v1")
	NewStockHandler(movementService).RegisterRoutes(v1)
	NewPurchaseOrderHandler(poService).RegisterRoutes(v1)
	NewGoodsReceiptHandler(receivingService).RegisterRoutes(v1)
	NewShipmentHandler(shipmentService).RegisterRoutes(v1)
	NewMasterdataHandler(mdService).RegisterRoutes(v1)
	env.engine = engine
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "7")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// envelope is the wire response with the data payload left raw so each
// test can decode it into the type it expects
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "expected success envelope, got %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error, "expected error envelope, got %s", w.Body.String())
	return env.Error.Code
}

// seedDock registers the named inbound dock for a site
func (e *testEnv) seedDock(t *testing.T, siteID int64) *masterdata.Location {
	t.Helper()
	dock, err := masterdata.NewLocation(siteID, masterdata.InboundDockName, masterdata.LocationTypeDock)
	require.NoError(t, err)
	require.NoError(t, e.locations.Create(context.Background(), dock))
	return dock
}

// seedSupplier registers a supplier and returns its id
func (e *testEnv) seedSupplier(t *testing.T, name string) int64 {
	t.Helper()
	supplier, err := masterdata.NewSupplier(name, nil, 14, 80)
	require.NoError(t, err)
	require.NoError(t, e.suppliers.Create(context.Background(), supplier))
	return supplier.ID
}
