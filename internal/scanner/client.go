package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jhoicas/home-inventory/internal/application/dto"
)

// DefaultRequestTimeout tiempo máximo de cada petición a la API.
const DefaultRequestTimeout = 5 * time.Second

// ClientConfig configuración del cliente de la API.
type ClientConfig struct {
	BaseURL  string
	Token    string
	Location string
	Timeout  time.Duration
	MaxTries uint
}

// Client envía las lecturas a POST /v1/stock/in.
type Client struct {
	cfg   ClientConfig
	http  *http.Client
	newBO func() backoff.BackOff
}

// NewClient construye el cliente. MaxTries 0 = 5 intentos.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 5
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		newBO: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// StatusError respuesta no exitosa de la API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api respondió %d: %s", e.Status, e.Body)
}

// StockIn registra una lectura. Reintenta ante errores de red y 5xx; un 4xx es definitivo.
func (c *Client) StockIn(ctx context.Context, barcode string) (*dto.StockInResponse, error) {
	req := dto.StockInRequest{Barcode: barcode}
	if c.cfg.Location != "" {
		loc := c.cfg.Location
		req.Location = &loc
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return backoff.Retry(ctx, func() (*dto.StockInResponse, error) {
		out, err := c.post(ctx, body)
		var se *StatusError
		if errors.As(err, &se) && se.Status < http.StatusInternalServerError {
			return nil, backoff.Permanent(err)
		}
		return out, err
	}, backoff.WithBackOff(c.newBO()), backoff.WithMaxTries(c.cfg.MaxTries))
}

func (c *Client) post(ctx context.Context, body []byte) (*dto.StockInResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/stock/in", bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out dto.StockInResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("respuesta inválida: %w", err))
	}
	return &out, nil
}
