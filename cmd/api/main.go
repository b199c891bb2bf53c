package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
	"github.com/jhoicas/Logistics-api/internal/application/usecase"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/Logistics-api/internal/interfaces/http"
	"github.com/jhoicas/Logistics-api/pkg/config"
	"github.com/jhoicas/Logistics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR el logout no revoca del lado servidor.
	var sessions *session.RedisStore
	if cfg.Redis.Addr != "" {
		sessions, err = session.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer sessions.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR no configurado: revocación de sesiones deshabilitada")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	var revoker auth.SessionRevoker
	if sessions != nil {
		revoker = sessions
	}
	authUC := auth.NewAuthUseCase(userRepo, revoker, jwtCfg)
	onboardingUC := onboarding.NewUseCase(txRunner, userRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, userRepo, txRunner)
	zoneUC := usecase.NewZoneUseCase(zoneRepo, userRepo)
	shipmentUC := usecase.NewShipmentUseCase(shipmentRepo, userRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec se genera
	// con swag init; el middleware hace panic si el archivo no existe, así
	// que solo se registra cuando está presente.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Logistics API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("swagger.json no encontrado; se omite la UI de documentación")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		OnboardingUC: onboardingUC,
		CompanyUC:    companyUC,
		UserUC:       userUC,
		VehicleUC:    vehicleUC,
		ZoneUC:       zoneUC,
		ShipmentUC:   shipmentUC,
		JWTSecret:    cfg.JWT.Secret,
	}
	if sessions != nil {
		// Asignación condicionada: un *RedisStore nil dentro de la interfaz
		// no sería nil para el middleware.
		deps.Sessions = sessions
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
