package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/usecase"
)

// ZoneHandler maneja las zonas de cobertura.
type ZoneHandler struct {
	uc *usecase.ZoneUseCase
}

// NewZoneHandler construye el handler de zonas.
func NewZoneHandler(uc *usecase.ZoneUseCase) *ZoneHandler {
	return &ZoneHandler{uc: uc}
}

// Create godoc
// @Summary      Crear una zona de cobertura (solo admin)
// @Tags         zones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateZoneRequest  true  "zona nueva"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar las zonas de la empresa del actor
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "offset"
// @Success      200  {object}  dto.ZoneListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una zona por id
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id de la zona"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
