package dto

import (
	"time"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// StockInRequest body de POST /v1/stock/in (lo envía el lector de códigos).
type StockInRequest struct {
	Barcode  string  `json:"barcode"`
	Location *string `json:"location"`
	Quantity int64   `json:"quantity"` // 0 u omitido = 1
}

// StockInResponse resultado de una entrada por código de barras.
type StockInResponse struct {
	Status   string  `json:"status"`
	Barcode  string  `json:"barcode"`
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Location *string `json:"location"`
	Quantity int64   `json:"quantity"`
	IsNew    bool    `json:"is_new"`
}

// StockResponse fila de stock con los nombres resueltos.
type StockResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Barcode      *string   `json:"barcode"`
	CategoryID   *string   `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	LocationID   *string   `json:"location_id"`
	LocationName *string   `json:"location_name"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

func ToStockInResponse(barcode string, res *inventory.StockInResult) StockInResponse {
	return StockInResponse{
		Status:   "ok",
		Barcode:  barcode,
		ItemID:   res.Item.ID,
		ItemName: res.Item.Name,
		Location: res.Location,
		Quantity: res.Stock.Quantity,
		IsNew:    res.IsNew,
	}
}

func ToStockList(list []*entity.StockDetail, page PageRequest) StockListResponse {
	items := make([]StockResponse, 0, len(list))
	for _, d := range list {
		items = append(items, StockResponse{
			ID:           d.ID,
			ItemID:       d.ItemID,
			ItemName:     d.ItemName,
			Barcode:      d.Barcode,
			CategoryID:   d.CategoryID,
			CategoryName: d.CategoryName,
			LocationID:   d.LocationID,
			LocationName: d.LocationName,
			Quantity:     d.Quantity,
			UpdatedAt:    d.UpdatedAt,
		})
	}
	return StockListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
