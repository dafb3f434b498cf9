package scanner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/home-inventory/internal/application/dto"
)

func newTestClient(url string, cfg ClientConfig) *Client {
	cfg.BaseURL = url
	c := NewClient(cfg)
	c.newBO = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestClient_StockIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/stock/in", r.URL.Path)
		assert.Equal(t, "Bearer secreto", r.Header.Get("Authorization"))
		var in dto.StockInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "770", in.Barcode)
		require.NotNil(t, in.Location)
		assert.Equal(t, "Despensa", *in.Location)
		_ = json.NewEncoder(w).Encode(dto.StockInResponse{Status: "ok", Barcode: in.Barcode, ItemID: "i1", Quantity: 2})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{Token: "secreto", Location: "Despensa"})
	out, err := c.StockIn(context.Background(), "770")
	require.NoError(t, err)
	assert.Equal(t, "i1", out.ItemID)
	assert.Equal(t, int64(2), out.Quantity)
}

func TestClient_ReintentaEn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.StockInResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{})
	_, err := c.StockIn(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_4xxEsDefinitivo(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{})
	_, err := c.StockIn(context.Background(), "1")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_AgotaIntentos(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{MaxTries: 2})
	_, err := c.StockIn(context.Background(), "1")
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
