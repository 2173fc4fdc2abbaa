package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
)

// CSVExporter exporta las filas del reporte con encabezado. Los campos con comas,
// comillas o saltos de línea se escapan según RFC 4180.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() ports.ExportFormat { return ports.FormatCSV }

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (e *CSVExporter) ExportDeliveries(_ context.Context, rep *dto.DeliveryReportDTO) ([]byte, error) {
	records := make([][]string, 0, len(rep.Rows)+1)
	records = append(records, DeliveryHeaders)
	for _, r := range rep.Rows {
		records = append(records, []string{
			r.ClientName,
			r.Products,
			r.Quantity.String(),
			r.Value.StringFixed(2),
			r.Date,
			r.Time,
			r.Status,
			r.Driver,
			r.Vehicle,
			r.Address,
			r.Notes,
		})
	}
	return writeAll(records)
}

func (e *CSVExporter) ExportExpenses(_ context.Context, rep *dto.ExpenseReportDTO) ([]byte, error) {
	records := make([][]string, 0, len(rep.Rows)+1)
	records = append(records, ExpenseHeaders)
	for _, r := range rep.Rows {
		records = append(records, []string{r.Name, r.Category, r.Value.StringFixed(2), r.Date, r.Notes})
	}
	return writeAll(records)
}

func writeAll(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
