package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stockyhq/stocky-api/internal/application/auth"
	"github.com/stockyhq/stocky-api/internal/application/ledger"
	"github.com/stockyhq/stocky-api/internal/application/reporting"
	"github.com/stockyhq/stocky-api/internal/application/usecase"
	infracache "github.com/stockyhq/stocky-api/internal/infrastructure/cache"
	infrapdf "github.com/stockyhq/stocky-api/internal/infrastructure/pdf"
	"github.com/stockyhq/stocky-api/internal/infrastructure/postgres"
	httpRouter "github.com/stockyhq/stocky-api/internal/interfaces/http"
	"github.com/stockyhq/stocky-api/pkg/config"
	"github.com/stockyhq/stocky-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de reportes en Redis. Sin REDIS_ADDR la caché queda desactivada
	// y las estadísticas se calculan siempre contra la base.
	reportCache := reporting.NewCache(nil, 0)
	if cfg.Redis.Addr != "" {
		redisClient, err := infracache.New(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).
				Msg("Redis no disponible, reportes sin caché")
		} else {
			defer redisClient.Close()
			reportCache = reporting.NewCache(redisClient, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
		}
	}

	engine := ledger.NewEngine(txRunner, productRepo, categoryRepo, reportCache)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.ExpMinutes,
		RefreshExpMinutes: cfg.JWT.RefreshExpMinutes,
		Issuer:            cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)
	reportingUC := reporting.NewUseCase(movementRepo, productRepo, reportCache, infrapdf.NewInventoryReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(string) bool { return true },
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	registerSwagger(app, log, "./docs/swagger.json")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		UserUC:            userUC,
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		SupplierUC:        supplierUC,
		TaskUC:            taskUC,
		Engine:            engine,
		ReportingUC:       reportingUC,
		JWTSecret:         cfg.JWT.Secret,
		RefreshExpMinutes: cfg.JWT.RefreshExpMinutes,
	})

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

// registerSwagger monta la UI de Swagger solo si el spec generado existe;
// sin el archivo la ruta /docs queda deshabilitada y el arranque continúa.
func registerSwagger(app *fiber.App, log *logger.Logger, specPath string) {
	if _, err := os.Stat(specPath); err != nil {
		log.Warn().Str("path", specPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: specPath,
		Path:     "docs",
		Title:    "Stocky API",
	}))
}
