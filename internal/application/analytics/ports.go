package analytics

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

// ReportPDFGenerator genera la representación en PDF del reporte ABC.
// La implementación concreta vive en infrastructure/pdf (Maroto).
type ReportPDFGenerator interface {
	GenerateABCReport(ctx context.Context, report *dto.ABCReportResponse) ([]byte, error)
}
