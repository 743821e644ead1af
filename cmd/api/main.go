package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-ledger/docs"
	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/telemetry"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// @title        Inventario Ledger API
// @version      1.0
// @description  Kardex de inventario con movimientos atómicos y clasificación ABC (Pareto).
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: "1.0.0",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar telemetría")
	}

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	thresholds := classification.Thresholds{A: cfg.ABC.ThresholdA, B: cfg.ABC.ThresholdB, C: cfg.ABC.ThresholdC}
	if err := thresholds.Validate(); err != nil {
		log.Fatal().Err(err).Msg("umbrales ABC de la configuración")
	}

	recordUC := inventory.NewRecordMovementUseCase(backend.TxRunner, log)
	itemUC := inventory.NewItemUseCase(backend.TxRunner, backend.Items, recordUC, log)
	historyUC := inventory.NewHistoryUseCase(backend.Items, backend.Movements, xmlexport.NewExporter())
	statsUC := inventory.NewStatsUseCase(backend.Items)
	replenishmentUC := inventory.NewReplenishmentUseCase(backend.Items)

	// PDF: reporte ABC con totales en la moneda configurada
	pdfGenerator := infrapdf.NewABCReportGenerator(cfg.Report.Company, cfg.Report.Currency)
	abcUC := analytics.NewABCUseCase(backend.Items, backend.Movements, pdfGenerator, thresholds, cfg.ABC.PeriodDays, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// Los ids de ruta se guardan más allá de la petición (kardex, bloqueos por ítem).
		Immutable: true,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige token")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		Items:          itemUC,
		RecordMovement: recordUC,
		History:        historyUC,
		Stats:          statsUC,
		Replenishment:  replenishmentUC,
		ABC:            abcUC,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
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
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
