package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/inventory"
)

// InventoryHandler lecturas de inventario y lista de reposición.
type InventoryHandler struct {
	query   *inventory.QueryUseCase
	restock *inventory.RestockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.QueryUseCase, restock *inventory.RestockUseCase) *InventoryHandler {
	return &InventoryHandler{query: query, restock: restock}
}

// List godoc
// @Summary      Niveles de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /v1/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.ListLevels(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInventoryList(list, page))
}

// GetByItem godoc
// @Summary      Cantidad actual de un artículo (0 si nunca tuvo movimientos)
// @Tags         inventory
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/{item_id} [get]
func (h *InventoryHandler) GetByItem(c *fiber.Ctx) error {
	level, err := h.query.GetLevel(c.Context(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInventoryLevelResponse(level))
}

// Audit godoc
// @Summary      Compara la cantidad guardada con la suma del historial
// @Description  La diferencia (drift) aparece cuando alguna salida se recortó a 0. No se corrige.
// @Tags         inventory
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/{item_id}/audit [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	audit, err := h.query.AuditLevel(c.Context(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditResponse(audit))
}

// GetRestockList godoc
// @Summary      Lista de la compra
// @Description  Artículos por debajo de su umbral mínimo, mayor déficit primero.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.RestockSuggestionDTO
// @Router       /v1/inventory/restock [get]
func (h *InventoryHandler) GetRestockList(c *fiber.Ctx) error {
	list, err := h.restock.GenerateRestockList(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(list),
		"restock": dto.ToRestockList(list),
	})
}

// GetRestockPDF godoc
// @Summary      Lista de la compra en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Success      200
// @Router       /v1/inventory/restock.pdf [get]
func (h *InventoryHandler) GetRestockPDF(c *fiber.Ctx) error {
	pdf, err := h.restock.GenerateRestockPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="lista-compra.pdf"`)
	return c.Send(pdf)
}
