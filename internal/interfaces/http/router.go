package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
	"github.com/jhoicas/Logistics-api/internal/application/usecase"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// RouterDeps dependencias para el router. Sessions puede ser nil (sin store
// de revocación).
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OnboardingUC *onboarding.UseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	VehicleUC    *usecase.VehicleUseCase
	ZoneUC       *usecase.ZoneUseCase
	ShipmentUC   *usecase.ShipmentUseCase
	JWTSecret    string
	Sessions     sessionChecker
}

// Router registra las rutas de la API.
//
// RequireRole es solo un pre-filtro sobre el claim del token; la decisión
// definitiva (estado, tenant, vínculo) la toma el guard de dominio dentro de
// cada caso de uso con el usuario leído de la DB.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Onboarding (público: registro de empresa y solicitud de ingreso)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	onb := api.Group("/onboarding")
	onb.Post("/companies", onboardingHandler.RegisterCompany)
	onb.Post("/join-requests", onboardingHandler.JoinRequest)

	// Companies (búsqueda pública para el flujo de ingreso)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.Search)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))

	protected.Post("/auth/logout", authHandler.Logout)

	// Onboarding protegido (solo admin resuelve solicitudes)
	pending := protected.Group("/onboarding/pending", RequireRole(entity.RoleAdmin))
	pending.Get("/", onboardingHandler.ListPending)
	pending.Post("/:id/approve", onboardingHandler.Approve)
	pending.Post("/:id/reject", onboardingHandler.Reject)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Post("/", RequireRole(entity.RoleAdmin), onboardingHandler.CreateUser)

	// Companies protegido (eliminación)
	protected.Delete("/companies/:id", RequireRole(entity.RoleAdmin), companyHandler.Delete)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", RequireRole(entity.RoleAdmin), vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id/driver", RequireRole(entity.RoleAdmin), vehicleHandler.AssignDriver)
	vehicles.Put("/:id/status", vehicleHandler.UpdateStatus)

	// Zones (protegido)
	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.ZoneUC)
	zones.Post("/", RequireRole(entity.RoleAdmin), zoneHandler.Create)
	zones.Get("/", zoneHandler.List)
	zones.Get("/:id", zoneHandler.GetByID)

	// Shipments (protegido)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Put("/:id/assign", RequireRole(entity.RoleAdmin), shipmentHandler.AssignDriver)
	shipments.Put("/:id/status", shipmentHandler.UpdateStatus)
}
