package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterdataHandler_Products(t *testing.T) {
	t.Run("creates and reads back a product", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/products", gin.H{
			"sku":  "SKU-001",
			"name": "Pallet Jack",
			"uom":  "EA",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]any
		decodeData(t, w, &created)

		w = env.do(t, http.MethodGet, "/v1/products", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var products []map[string]any
		decodeData(t, w, &products)
		require.Len(t, products, 1)
		assert.EqualValues(t, "SKU-001", products[0]["sku"])
	})

	t.Run("duplicate sku is a 409", func(t *testing.T) {
		env := newTestEnv(t)
		body := gin.H{"sku": "SKU-001", "name": "Pallet Jack", "uom": "EA"}

		first := env.do(t, http.MethodPost, "/v1/products", body, nil)
		require.Equal(t, http.StatusCreated, first.Code)
		second := env.do(t, http.MethodPost, "/v1/products", body, nil)

		assert.Equal(t, http.StatusConflict, second.Code, second.Body.String())
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/v1/products/55", nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMasterdataHandler_Suppliers(t *testing.T) {
	t.Run("creates a supplier", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/suppliers", gin.H{
			"name":              "Pacific Traders",
			"lead_time_days":    14,
			"reliability_score": 85,
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("reliability score above 100 is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/suppliers", gin.H{
			"name":              "Pacific Traders",
			"reliability_score": 120,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate name is a 409", func(t *testing.T) {
		env := newTestEnv(t)
		body := gin.H{"name": "Pacific Traders"}

		first := env.do(t, http.MethodPost, "/v1/suppliers", body, nil)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		second := env.do(t, http.MethodPost, "/v1/suppliers", body, nil)

		assert.Equal(t, http.StatusConflict, second.Code)
	})
}

func TestMasterdataHandler_SitesAndLocations(t *testing.T) {
	t.Run("creates a site and its locations", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/sites", gin.H{
			"name":     "Tahiti DC",
			"timezone": "Pacific/Tahiti",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var site map[string]any
		decodeData(t, w, &site)
		siteID := site["id"]

		w = env.do(t, http.MethodPost, "/v1/locations", gin.H{
			"site_id": siteID,
			"name":    "TAH-DOCK",
			"type":    "dock",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, "/v1/locations?site_id=1", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var locations []map[string]any
		decodeData(t, w, &locations)
		require.Len(t, locations, 1)
		assert.EqualValues(t, "TAH-DOCK", locations[0]["name"])
	})

	t.Run("invalid location type is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.do(t, http.MethodPost, "/v1/sites", gin.H{"name": "Tahiti DC"}, nil)
		require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

		w := env.do(t, http.MethodPost, "/v1/locations", gin.H{
			"site_id": 1,
			"name":    "X",
			"type":    "hangar",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("locations list requires site_id", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/v1/locations", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMasterdataHandler_Actors(t *testing.T) {
	t.Run("registers an operator and reads it back", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.do(t, http.MethodPost, "/v1/sites", gin.H{"name": "Tahiti DC"}, nil)
		require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

		w := env.do(t, http.MethodPost, "/v1/actors", gin.H{
			"site_id": 1,
			"name":    "Moana",
			"role":    "field",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var actor map[string]any
		decodeData(t, w, &actor)

		w = env.do(t, http.MethodGet, "/v1/actors/1", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &actor)
		assert.EqualValues(t, "Moana", actor["name"])
		assert.EqualValues(t, "field", actor["role"])
	})

	t.Run("unknown role is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.do(t, http.MethodPost, "/v1/sites", gin.H{"name": "Tahiti DC"}, nil)
		require.Equal(t, http.StatusCreated, created.Code)

		w := env.do(t, http.MethodPost, "/v1/actors", gin.H{
			"site_id": 1,
			"name":    "Moana",
			"role":    "pilot",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
