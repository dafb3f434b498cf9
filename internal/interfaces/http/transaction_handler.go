package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// TransactionHandler movimientos de stock. Las escrituras pasan por el motor de conciliación.
type TransactionHandler struct {
	engine *inventory.ReconciliationEngine
	query  *inventory.QueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(engine *inventory.ReconciliationEngine, query *inventory.QueryUseCase) *TransactionHandler {
	return &TransactionHandler{engine: engine, query: query}
}

// Create godoc
// @Summary      Registrar transacción y actualizar inventario
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "item_id, type (IN/OUT), quantity, note"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	txn, err := h.engine.Create(c.Context(), entity.NewTransaction{
		ItemID:   in.ItemID,
		Type:     entity.TransactionType(in.Type),
		Quantity: *in.Quantity,
		Note:     in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(txn))
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Produce      json
// @Param        limit   query  int  false  "máximo 500, por defecto 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.ListTransactions(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionList(list, page))
}

// ListByItem godoc
// @Summary      Historial de un artículo
// @Tags         transactions
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /v1/transactions/item/{item_id} [get]
func (h *TransactionHandler) ListByItem(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.ListTransactionsByItem(c.Context(), c.Params("item_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionList(list, page))
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	txn, err := h.query.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(txn))
}

// Update godoc
// @Summary      Modificar transacción (ajusta el inventario con el delta combinado)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	txn, err := h.engine.Update(c.Context(), c.Params("id"), in.ToPatch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(txn))
}

// Delete godoc
// @Summary      Eliminar transacción (revierte su efecto)
// @Tags         transactions
// @Param        id  path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.engine.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return respondError(c, domain.ErrNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
