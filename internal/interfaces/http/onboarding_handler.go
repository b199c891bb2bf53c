package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
)

// OnboardingHandler maneja el registro de empresas, las solicitudes de
// ingreso y su aprobación o rechazo.
type OnboardingHandler struct {
	uc *onboarding.UseCase
}

// NewOnboardingHandler construye el handler de onboarding.
func NewOnboardingHandler(uc *onboarding.UseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// RegisterCompany godoc
// @Summary      Registrar empresa nueva con su administrador fundador
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "empresa y admin"
// @Success      201   {object}  dto.RegisterCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/companies [post]
func (h *OnboardingHandler) RegisterCompany(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.AdminPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.RegisterCompany(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// JoinRequest godoc
// @Summary      Solicitar unirse a una empresa existente (queda PENDING)
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JoinRequestRequest  true  "empresa, nombre, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/join-requests [post]
func (h *OnboardingHandler) JoinRequest(c *fiber.Ctx) error {
	var in dto.JoinRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.SubmitJoinRequest(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending godoc
// @Summary      Listar solicitudes pendientes de la empresa del actor
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/onboarding/pending [get]
func (h *OnboardingHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.Context(), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una solicitud pendiente
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del usuario pendiente"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/onboarding/pending/{id}/approve [post]
func (h *OnboardingHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar una solicitud pendiente (terminal)
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del usuario pendiente"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/onboarding/pending/{id}/reject [post]
func (h *OnboardingHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear un usuario ya activo en la empresa del actor (solo admin)
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "usuario nuevo"
// @Success      201   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *OnboardingHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.CreateUser(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
