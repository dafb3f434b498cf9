package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// StockHandler entradas por código de barras y stock por ubicación.
type StockHandler struct {
	stockIn   *inventory.StockInUseCase
	stockRepo repository.StockRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(stockIn *inventory.StockInUseCase, stockRepo repository.StockRepository) *StockHandler {
	return &StockHandler{stockIn: stockIn, stockRepo: stockRepo}
}

// StockIn godoc
// @Summary      Entrada de stock por código de barras
// @Description  Si el código no existe se crea un artículo provisional sin nombre.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "barcode, location, quantity"
// @Success      200   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.stockIn.StockIn(c.Context(), inventory.StockInInput{
		Barcode:  in.Barcode,
		Location: in.Location,
		Quantity: in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockInResponse(inventory.NormalizeBarcode(in.Barcode), res))
}

// List godoc
// @Summary      Stock por artículo y ubicación
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Router       /v1/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.stockRepo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockList(list, page))
}
