package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/application/usecase"
	"github.com/jhoicas/home-inventory/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/home-inventory/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/home-inventory/pkg/jwt"
)

func newTestApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	items := memory.NewItemRepository(s)
	cats := memory.NewCategoryRepository(s)
	rooms := memory.NewRoomRepository(s)
	levels := memory.NewInventoryLevelRepository(s)
	txns := memory.NewTransactionRepository(s)

	deps := apphttp.RouterDeps{
		Engine:     inventory.NewReconciliationEngine(s),
		Query:      inventory.NewQueryUseCase(txns, levels, items),
		Restock:    inventory.NewRestockUseCase(levels, nil),
		StockIn:    inventory.NewStockInUseCase(s, cats, nil, zerolog.Nop()),
		StockRepo:  memory.NewStockRepository(s),
		ItemUC:     usecase.NewItemUseCase(items, cats, levels),
		CategoryUC: usecase.NewCategoryUseCase(cats),
		RoomUC:     usecase.NewRoomUseCase(rooms),
		LocationUC: usecase.NewLocationUseCase(memory.NewLocationRepository(s), rooms),
		JWTSecret:  jwtSecret,
	}
	return apphttp.NewApp(apphttp.AppConfig{Name: "test", Log: zerolog.Nop()}, deps)
}

func call(t *testing.T, app *fiber.App, method, path string, body any, auth string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createItem(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": name, "min_threshold": 2}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[dto.ItemResponse](t, raw).ID
}

func level(t *testing.T, app *fiber.App, itemID string) int64 {
	t.Helper()
	resp, raw := call(t, app, http.MethodGet, "/v1/inventory/"+itemID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	return decode[dto.InventoryLevelResponse](t, raw).Quantity
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, "")
	resp, raw := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"ok"`)
}

func TestTransactions_CicloCompleto(t *testing.T) {
	app := newTestApp(t, "")
	itemID := createItem(t, app, "Arroz")

	resp, raw := call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "in", "quantity": 3}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	in := decode[dto.TransactionResponse](t, raw)
	assert.Equal(t, "IN", in.Type)

	resp, raw = call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "OUT", "quantity": 10}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	out := decode[dto.TransactionResponse](t, raw)
	assert.Equal(t, int64(0), level(t, app, itemID))

	// borrar la salida recortada devuelve 10, no 3
	resp, _ = call(t, app, http.MethodDelete, "/v1/transactions/"+out.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(10), level(t, app, itemID))

	resp, _ = call(t, app, http.MethodDelete, "/v1/transactions/"+out.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPut, "/v1/transactions/"+in.ID, map[string]any{"quantity": 5}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, int64(12), level(t, app, itemID))

	resp, raw = call(t, app, http.MethodGet, "/v1/transactions/item/"+itemID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.TransactionListResponse](t, raw)
	require.Len(t, list.Items, 1)
	assert.Equal(t, dto.DefaultLimit, list.Page.Limit)

	resp, raw = call(t, app, http.MethodGet, "/v1/inventory/"+itemID+"/audit", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	audit := decode[dto.InventoryAuditResponse](t, raw)
	assert.Equal(t, int64(12), audit.Stored)
	assert.Equal(t, int64(5), audit.Resummed)
}

func TestTransactions_Errores(t *testing.T) {
	app := newTestApp(t, "")
	itemID := createItem(t, app, "Sal")

	resp, _ := call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "MOVE", "quantity": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "IN"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": "no-existe", "type": "IN", "quantity": 1}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPut, "/v1/transactions/no-existe", map[string]any{"quantity": 1}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/v1/transactions/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/v1/inventory/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := call(t, app, http.MethodGet, "/v1/transactions/item/no-existe", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.TransactionListResponse](t, raw).Items)

	resp, _ = call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": "Pan", "category_id": "no-existe"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/locations", map[string]any{"name": "Horno", "room_id": "no-existe"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactions_DesbordamientoEs400(t *testing.T) {
	app := newTestApp(t, "")
	itemID := createItem(t, app, "Tornillos")

	resp, raw := call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "IN", "quantity": int64(math.MaxInt64)}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = call(t, app, http.MethodPost, "/v1/transactions", map[string]any{"item_id": itemID, "type": "IN", "quantity": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int64(math.MaxInt64), level(t, app, itemID))
}

func TestRestockYStock(t *testing.T) {
	app := newTestApp(t, "")
	createItem(t, app, "Aceite")

	resp, raw := call(t, app, http.MethodGet, "/v1/inventory/restock", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var restock struct {
		Total   int                        `json:"total"`
		Restock []dto.RestockSuggestionDTO `json:"restock"`
	}
	require.NoError(t, json.Unmarshal(raw, &restock))
	require.Equal(t, 1, restock.Total)
	assert.Equal(t, "Aceite", restock.Restock[0].ItemName)

	// sin generador de PDF configurado
	resp, _ = call(t, app, http.MethodGet, "/v1/inventory/restock.pdf", nil, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/v1/stock/in", map[string]any{"barcode": "7701", "location": "Nevera"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	in := decode[dto.StockInResponse](t, raw)
	assert.Equal(t, "ok", in.Status)
	assert.True(t, in.IsNew)
	assert.Equal(t, int64(1), in.Quantity)

	resp, raw = call(t, app, http.MethodGet, "/v1/stocks", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stocks := decode[dto.StockListResponse](t, raw)
	require.Len(t, stocks.Items, 1)
	require.NotNil(t, stocks.Items[0].LocationName)
	assert.Equal(t, "Nevera", *stocks.Items[0].LocationName)

	resp, raw = call(t, app, http.MethodGet, "/v1/items/barcode/7701", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, in.ItemID, decode[dto.ItemResponse](t, raw).ID)
}

func TestCatalogo(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := call(t, app, http.MethodPost, "/v1/rooms", map[string]any{"name": "Cocina"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	room := decode[dto.RoomResponse](t, raw)

	resp, _ = call(t, app, http.MethodPost, "/v1/rooms", map[string]any{"name": "Cocina"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/v1/rooms?name=Cocina", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.RoomResponse](t, raw), 1)

	resp, raw = call(t, app, http.MethodPost, "/v1/locations", map[string]any{"name": "Alacena", "room_id": room.ID}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = call(t, app, http.MethodDelete, "/v1/rooms/"+room.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, app, http.MethodDelete, "/v1/rooms/"+room.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/v1/categories", map[string]any{"name": "Despensa"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, raw)

	resp, raw = call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": "Harina", "category_id": cat.ID}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[dto.ItemResponse](t, raw)
	assert.Equal(t, int64(1), item.MinThreshold)

	resp, raw = call(t, app, http.MethodGet, "/v1/items/"+item.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ItemResponse](t, raw)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Despensa", got.Category.Name)
	require.NotNil(t, got.Quantity)
	assert.Equal(t, int64(0), *got.Quantity)

	resp, _ = call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": ""}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/v1/items/"+item.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_ConAutenticacion(t *testing.T) {
	app := newTestApp(t, testJWTSecret)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)
	scanner := tokenForRole(t, pkgjwt.RoleScanner)

	resp, _ := call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": "Pan"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": "Pan"}, scanner)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/items", map[string]any{"name": "Pan"}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/v1/stock/in", map[string]any{"barcode": "1"}, scanner)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, "/v1/stock/in", map[string]any{"barcode": "1"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// lecturas públicas
	resp, _ = call(t, app, http.MethodGet, "/v1/items", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewHandler_MontaFiber(t *testing.T) {
	app := newTestApp(t, "")
	h := apphttp.NewHandler(app, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ws/stock", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestSwagger_SeMontaSiExisteElArchivo(t *testing.T) {
	app := apphttp.NewApp(apphttp.AppConfig{
		Name:        "test",
		SwaggerFile: "../../../docs/swagger.json",
		Log:         zerolog.Nop(),
	}, apphttp.RouterDeps{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
