package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appinventory "github.com/tu-usuario/resto-inventario/internal/application/inventory"
	appmenu "github.com/tu-usuario/resto-inventario/internal/application/menu"
	"github.com/tu-usuario/resto-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/resto-inventario/internal/interfaces/http"
	"github.com/tu-usuario/resto-inventario/pkg/config"
	"github.com/tu-usuario/resto-inventario/pkg/logger"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de solo lectura atados al pool; las escrituras del libro
	// pasan siempre por el TxRunner con repos atados a la transacción.
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	menuStockRepo := postgres.NewMenuStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	retryOpts := retry.Options{
		MaxAttempts: retry.DefaultMaxAttempts,
		BaseDelay:   retry.DefaultBaseDelay,
		IsTransient: postgres.IsTransientError,
	}

	recordMovementUC := appinventory.NewRecordMovementUseCase(txRunner, productRepo, warehouseRepo, retryOpts)
	seedStockUC := appinventory.NewSeedStockUseCase(txRunner, productRepo, warehouseRepo, retryOpts, log.Component("seed"))
	ledgerQueryUC := appinventory.NewLedgerQueryUseCase(stockRepo, movementRepo)
	fulfillmentUC := appinventory.NewFulfillmentUseCase(txRunner, productRepo, warehouseRepo, retryOpts)

	availabilityUC := appmenu.NewAvailabilityUseCase(recipeRepo, stockRepo, menuStockRepo)
	sweepScheduler := appmenu.NewSweepScheduler(
		availabilityUC, recipeRepo, warehouseRepo,
		appmenu.SweepConfig{
			BatchSize:  cfg.Sweep.BatchSize,
			BatchPause: cfg.Sweep.BatchPause,
		},
		log.Component("sweep"),
	)
	if cfg.Sweep.Interval > 0 {
		go sweepScheduler.Start(ctx, cfg.Sweep.Interval)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordMovement: recordMovementUC,
		SeedStock:      seedStockUC,
		LedgerQuery:    ledgerQueryUC,
		Fulfillment:    fulfillmentUC,
		Availability:   availabilityUC,
		Sweep:          sweepScheduler,
		JWTSecret:      cfg.JWT.Secret,
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
	cancel() // detiene el barrido periódico

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
