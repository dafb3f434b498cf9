package dto

import (
	"time"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// InventoryLevelResponse nivel de inventario de un artículo.
type InventoryLevelResponse struct {
	ItemID    string    `json:"item_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryListResponse lista paginada de niveles.
type InventoryListResponse struct {
	Items []InventoryLevelResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// InventoryAuditResponse valor guardado frente al recálculo desde el historial.
type InventoryAuditResponse struct {
	ItemID   string `json:"item_id"`
	Stored   int64  `json:"stored"`
	Resummed int64  `json:"resummed"`
	Drift    int64  `json:"drift"`
}

// RestockSuggestionDTO artículo bajo su umbral con la cantidad sugerida de compra.
type RestockSuggestionDTO struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Barcode      *string `json:"barcode"`
	CategoryName *string `json:"category_name"`
	Quantity     int64   `json:"quantity"`
	MinThreshold int64   `json:"min_threshold"`
	IdealStock   int64   `json:"ideal_stock"`   // ceil(min_threshold * 1.5)
	SuggestedQty int64   `json:"suggested_qty"` // ideal_stock - quantity
	Priority     int     `json:"priority"`      // 1 = más urgente
}

func ToInventoryLevelResponse(l *entity.InventoryLevel) InventoryLevelResponse {
	return InventoryLevelResponse{ItemID: l.ItemID, Quantity: l.Quantity, UpdatedAt: l.UpdatedAt}
}

func ToInventoryList(list []*entity.InventoryLevel, page PageRequest) InventoryListResponse {
	items := make([]InventoryLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, ToInventoryLevelResponse(l))
	}
	return InventoryListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}

func ToAuditResponse(a *inventory.Audit) InventoryAuditResponse {
	return InventoryAuditResponse{ItemID: a.ItemID, Stored: a.Stored, Resummed: a.Resummed, Drift: a.Drift}
}

func ToRestockList(list []inventory.RestockSuggestion) []RestockSuggestionDTO {
	out := make([]RestockSuggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, RestockSuggestionDTO{
			ItemID:       s.ItemID,
			ItemName:     s.ItemName,
			Barcode:      s.Barcode,
			CategoryName: s.CategoryName,
			Quantity:     s.Quantity,
			MinThreshold: s.MinThreshold,
			IdealStock:   s.IdealStock,
			SuggestedQty: s.SuggestedQty,
			Priority:     s.Priority,
		})
	}
	return out
}
