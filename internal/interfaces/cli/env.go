// Package cli implementa los subcomandos de ledgerctl (carga inicial, reporte ABC y tokens de prueba)
// sobre los mismos casos de uso que la API HTTP.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// actorCLI actor registrado en los movimientos creados desde la línea de comandos.
const actorCLI = "ledgerctl"

// Register registra los subcomandos.
func Register(c *subcommands.Commander) {
	c.Register(&seedCmd{}, "datos")
	c.Register(&abcCmd{}, "reportes")
	c.Register(&tokenCmd{}, "desarrollo")
}

// env casos de uso sobre el backend configurado.
type env struct {
	cfg       *config.Config
	backend   *storage.Backend
	items     *inventory.ItemUseCase
	movements *inventory.RecordMovementUseCase
	abc       *analytics.ABCUseCase
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: logger.EnvDevelopment, Level: "warn", Service: actorCLI, Out: os.Stderr})
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newEnv(cfg, backend, log), nil
}

func newEnv(cfg *config.Config, backend *storage.Backend, log *logger.Logger) *env {
	thresholds := classification.Thresholds{A: cfg.ABC.ThresholdA, B: cfg.ABC.ThresholdB, C: cfg.ABC.ThresholdC}
	movements := inventory.NewRecordMovementUseCase(backend.TxRunner, log)
	return &env{
		cfg:       cfg,
		backend:   backend,
		items:     inventory.NewItemUseCase(backend.TxRunner, backend.Items, movements, log),
		movements: movements,
		abc: analytics.NewABCUseCase(backend.Items, backend.Movements,
			infrapdf.NewABCReportGenerator(cfg.Report.Company, cfg.Report.Currency),
			thresholds, cfg.ABC.PeriodDays, log),
	}
}

func (e *env) close() { e.backend.Close() }

func (e *env) seedFile(ctx context.Context, path, encoding string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()
	rows, err := ReadSeed(f, encoding != "utf8")
	if err != nil {
		return 0, err
	}
	return Seed(ctx, e.items, e.movements, rows)
}
