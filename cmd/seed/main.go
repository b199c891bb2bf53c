// seed puebla la base con datos de demostración: una empresa con su admin,
// un usuario MSME, un conductor, una zona, vehículos y un envío de ejemplo.
//
// Uso: go run ./cmd/seed
// Es idempotente: si la empresa demo ya existe, no toca nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
	"github.com/jhoicas/Logistics-api/internal/application/usecase"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistics-api/pkg/config"
)

const (
	demoCompany  = "Demo Logistics Co."
	demoPassword = "demo12345"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	onboardingUC := onboarding.NewUseCase(txRunner, userRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, userRepo, txRunner)
	zoneUC := usecase.NewZoneUseCase(zoneRepo, userRepo)
	shipmentUC := usecase.NewShipmentUseCase(shipmentRepo, userRepo, txRunner)

	// Se siembra a través de los casos de uso, no con INSERTs directos, para
	// que los datos demo pasen por las mismas reglas que los datos reales.
	reg, err := onboardingUC.RegisterCompany(ctx, dto.RegisterCompanyRequest{
		CompanyName:        demoCompany,
		CompanyDescription: "Empresa demo para pruebas locales",
		AdminName:          "Admin Demo",
		AdminEmail:         "admin@demo-logistics.com",
		AdminPassword:      demoPassword,
	})
	if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrEmailAlreadyExists) {
		fmt.Println("los datos demo ya existen, nada que hacer")
		return
	}
	if err != nil {
		fail("registrar empresa demo", err)
	}
	adminID := reg.Admin.ID
	fmt.Printf("empresa %q creada (admin %s / %s)\n", demoCompany, reg.Admin.Email, demoPassword)

	msme, err := onboardingUC.CreateUser(ctx, adminID, dto.CreateUserRequest{
		Email:    "msme@demo-logistics.com",
		Password: demoPassword,
		Name:     "Comercio Demo",
		Role:     entity.RoleMSME,
		Phone:    strPtr("+57 300 000 0001"),
	})
	if err != nil {
		fail("crear usuario MSME demo", err)
	}
	driver, err := onboardingUC.CreateUser(ctx, adminID, dto.CreateUserRequest{
		Email:         "driver@demo-logistics.com",
		Password:      demoPassword,
		Name:          "Conductor Demo",
		Role:          entity.RoleDriver,
		Phone:         strPtr("+57 300 000 0002"),
		LicenseNumber: strPtr("LIC-0001"),
	})
	if err != nil {
		fail("crear conductor demo", err)
	}

	zone, err := zoneUC.Create(ctx, adminID, dto.CreateZoneRequest{
		Name:        "Zona Centro",
		Description: "Cobertura del centro de la ciudad",
		Color:       "#1e88e5",
		Coordinates: [][]float64{
			{-74.08, 4.60}, {-74.06, 4.60}, {-74.06, 4.62}, {-74.08, 4.62},
		},
	})
	if err != nil {
		fail("crear zona demo", err)
	}

	truck, err := vehicleUC.Create(ctx, adminID, dto.CreateVehicleRequest{
		Name:           "Camión 01",
		PlateNumber:    "DEM-001",
		VehicleType:    entity.VehicleTruck,
		WeightCapacity: 3500,
		VolumeCapacity: 18,
		ZoneID:         &zone.ID,
	})
	if err != nil {
		fail("crear camión demo", err)
	}
	if _, err := vehicleUC.Create(ctx, adminID, dto.CreateVehicleRequest{
		Name:           "Van 01",
		PlateNumber:    "DEM-002",
		VehicleType:    entity.VehicleVan,
		WeightCapacity: 1200,
		VolumeCapacity: 8,
		ZoneID:         &zone.ID,
	}); err != nil {
		fail("crear van demo", err)
	}
	if _, err := vehicleUC.AssignDriver(ctx, adminID, truck.ID, driver.ID); err != nil {
		fail("asignar conductor demo", err)
	}

	shipment, err := shipmentUC.Create(ctx, msme.ID, dto.CreateShipmentRequest{
		PONumber:      "PO-DEMO-001",
		PickupAddress: "Calle 10 # 5-20, Bogotá",
		DropAddress:   "Carrera 7 # 45-10, Bogotá",
		TotalWeight:   120,
		TotalVolume:   1.5,
		Description:   "Envío de demostración",
	})
	if err != nil {
		fail("crear envío demo", err)
	}
	if _, err := shipmentUC.AssignDriver(ctx, adminID, shipment.ID, dto.AssignShipmentRequest{
		DriverID:  driver.ID,
		VehicleID: &truck.ID,
	}); err != nil {
		fail("asignar envío demo", err)
	}

	// Un login de verificación confirma que el admin puede autenticarse.
	authUC := auth.NewAuthUseCase(userRepo, nil, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if _, err := authUC.Login(ctx, dto.LoginRequest{Email: reg.Admin.Email, Password: demoPassword}); err != nil {
		fail("login de verificación", err)
	}
	fmt.Println("datos demo sembrados correctamente")
}

func strPtr(s string) *string { return &s }

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
