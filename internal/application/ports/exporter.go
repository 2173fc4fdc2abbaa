package ports

import (
	"context"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
)

// ExportFormat formato de archivo de un reporte.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ReportExporter puerto de salida para exportar reportes ya calculados.
// Adaptadores: CSV (encoding/csv), XLSX (excelize), PDF (maroto).
type ReportExporter interface {
	Format() ExportFormat
	ContentType() string
	ExportDeliveries(ctx context.Context, rep *dto.DeliveryReportDTO) ([]byte, error)
	ExportExpenses(ctx context.Context, rep *dto.ExpenseReportDTO) ([]byte, error)
}
