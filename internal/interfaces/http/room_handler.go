package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/home-inventory/internal/application/dto"
	"github.com/jhoicas/home-inventory/internal/application/usecase"
	"github.com/jhoicas/home-inventory/internal/domain"
)

// RoomHandler habitaciones y ubicaciones.
type RoomHandler struct {
	rooms     *usecase.RoomUseCase
	locations *usecase.LocationUseCase
}

func NewRoomHandler(rooms *usecase.RoomUseCase, locations *usecase.LocationUseCase) *RoomHandler {
	return &RoomHandler{rooms: rooms, locations: locations}
}

// CreateRoom godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      201   {object}  dto.RoomResponse
// @Router       /v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.rooms.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRooms godoc
// @Summary      Listar habitaciones (?name= filtra por nombre exacto)
// @Tags         rooms
// @Produce      json
// @Success      200  {array}  dto.RoomResponse
// @Router       /v1/rooms [get]
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		rm, err := h.rooms.GetByName(c.Context(), name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.RoomResponse{*rm})
	}
	out, err := h.rooms.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	out, err := h.rooms.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.rooms.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteRoom las ubicaciones de la habitación quedan sueltas.
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	ok, err := h.rooms.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return respondError(c, domain.ErrNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "name, room_id"
// @Success      201   {object}  dto.LocationResponse
// @Router       /v1/locations [post]
func (h *RoomHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.locations.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *RoomHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.locations.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *RoomHandler) GetLocation(c *fiber.Ctx) error {
	out, err := h.locations.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *RoomHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.locations.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteLocation el stock guardado en la ubicación se elimina.
func (h *RoomHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.locations.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
