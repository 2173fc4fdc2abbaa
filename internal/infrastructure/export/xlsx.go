package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
)

// Nombres de las hojas del libro exportado.
const (
	SheetDeliveries = "Protocolos"
	SheetExpenses   = "Despesas"
	SheetSummary    = "Resumo"
)

// XLSXExporter exporta el reporte a un libro Excel: una hoja de detalle y otra de resumen.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() ports.ExportFormat { return ports.FormatXLSX }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) ExportDeliveries(_ context.Context, rep *dto.DeliveryReportDTO) ([]byte, error) {
	rows := make([][]interface{}, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, []interface{}{
			r.ClientName, r.Products, r.Quantity.InexactFloat64(), r.Value.InexactFloat64(),
			r.Date, r.Time, r.Status, r.Driver, r.Vehicle, r.Address, r.Notes,
		})
	}
	totals := [][]interface{}{
		{"Total de protocolos", rep.Count},
		{"Valor total", rep.TotalValue.InexactFloat64()},
		{"Quantidade total", rep.TotalQuantity.InexactFloat64()},
		{"Entregues", rep.Delivered},
		{"Pendentes", rep.Pending},
		{"Falharam", rep.Failed},
		{"Taxa de entrega (%)", rep.DeliveryRate},
	}
	return build(SheetDeliveries, DeliveryHeaders, rows, totals, rep.ByProduct)
}

func (e *XLSXExporter) ExportExpenses(_ context.Context, rep *dto.ExpenseReportDTO) ([]byte, error) {
	rows := make([][]interface{}, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, []interface{}{r.Name, r.Category, r.Value.InexactFloat64(), r.Date, r.Notes})
	}
	totals := [][]interface{}{
		{"Total de despesas", rep.Count},
		{"Valor total", rep.TotalValue.InexactFloat64()},
		{"Média", rep.Average.InexactFloat64()},
	}
	return build(SheetExpenses, ExpenseHeaders, rows, totals, rep.ByCategory)
}

func build(sheet string, headers []string, rows, totals [][]interface{}, summary []dto.KeySummaryDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeTable(f, sheet, 1, toRow(headers), rows, bold); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	for i, t := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &t); err != nil {
			return nil, fmt.Errorf("xlsx: resumen: %w", err)
		}
		if err := f.SetCellStyle(SheetSummary, cell, cell, bold); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	byKey := make([][]interface{}, 0, len(summary))
	for _, s := range summary {
		byKey = append(byKey, []interface{}{
			s.Key, s.Count, s.Quantity.InexactFloat64(), s.TotalValue.InexactFloat64(), s.Average.InexactFloat64(),
		})
	}
	if err := writeTable(f, SheetSummary, len(totals)+2, toRow(SummaryHeaders), byKey, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable escribe encabezado en negrita desde la fila startRow y luego los datos.
func writeTable(f *excelize.File, sheet string, startRow int, header []interface{}, rows [][]interface{}, bold int) error {
	first, _ := excelize.CoordinatesToCellName(1, startRow)
	last, _ := excelize.CoordinatesToCellName(len(header), startRow)
	if err := f.SetSheetRow(sheet, first, &header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, startRow+i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func toRow(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}
