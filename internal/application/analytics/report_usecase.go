package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/domain/report"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// Prefijos de los archivos exportados: <prefijo>_YYYY-MM-DD.<ext>.
const (
	DeliveryReportPrefix = "relatorio_protocolos"
	ExpenseReportPrefix  = "relatorio_despesas"
)

// ReportRepos colecciones que leen los reportes.
type ReportRepos struct {
	Deliveries repository.DeliveryRepository
	Products   repository.ProductRepository
	Drivers    repository.DriverRepository
	Vehicles   repository.VehicleRepository
	Expenses   repository.ExpenseRepository
	Categories repository.ExpenseCategoryRepository
}

// ExportResult archivo generado por un exportador.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ReportUseCase reportes filtrados de entregas y gastos, con exportación.
type ReportUseCase struct {
	repos     ReportRepos
	exporters map[ports.ExportFormat]ports.ReportExporter
	clock     usecase.Clock
}

// NewReportUseCase construye el caso de uso con los exportadores disponibles.
func NewReportUseCase(repos ReportRepos, clock usecase.Clock, exporters ...ports.ReportExporter) *ReportUseCase {
	m := make(map[ports.ExportFormat]ports.ReportExporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &ReportUseCase{repos: repos, exporters: m, clock: clock}
}

// Deliveries aplica los filtros (AND) y reduce las entregas resultantes.
func (uc *ReportUseCase) Deliveries(ctx context.Context, q dto.DeliveryReportQuery) (*dto.DeliveryReportDTO, error) {
	filter, err := uc.deliveryFilter(q)
	if err != nil {
		return nil, err
	}

	var (
		deliveries []entity.Delivery
		products   []entity.Product
		drivers    []entity.Driver
		vehicles   []entity.Vehicle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { deliveries, err = uc.repos.Deliveries.List(gctx); return })
	g.Go(func() (err error) { products, err = uc.repos.Products.List(gctx); return })
	g.Go(func() (err error) { drivers, err = uc.repos.Drivers.List(gctx); return })
	g.Go(func() (err error) { vehicles, err = uc.repos.Vehicles.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de entregas: %w", err)
	}

	rep := report.BuildDeliveryReport(report.FilterDeliveries(deliveries, filter, uc.clock.Loc()), products)
	out := &dto.DeliveryReportDTO{
		GeneratedOn:   uc.clock.FormatDate(uc.clock.Today()),
		Filters:       q,
		Rows:          make([]dto.DeliveryReportRow, 0, len(rep.Items)),
		Count:         rep.Count,
		TotalValue:    rep.TotalValue,
		TotalQuantity: rep.TotalQuantity,
		Delivered:     rep.Delivered,
		Pending:       rep.Pending,
		Failed:        rep.Failed,
		DeliveryRate:  rep.DeliveryRate,
		ByProduct:     toKeySummaries(rep.ByProduct),
	}
	for _, d := range rep.Items {
		names := make([]string, 0, len(d.Products))
		for _, l := range d.Products {
			names = append(names, lookup.LineName(products, l))
		}
		out.Rows = append(out.Rows, dto.DeliveryReportRow{
			ID:          d.ID,
			ClientName:  d.ClientName,
			Products:    strings.Join(names, "; "),
			Quantity:    d.TotalQuantity(),
			Value:       d.DeliveryValue,
			Date:        uc.displayDate(d.DeliveryDate),
			Time:        d.DeliveryTime,
			Status:      string(d.Status),
			StatusLabel: StatusLabel(d.Status),
			Driver:      lookup.DriverName(drivers, d.DriverID),
			Vehicle:     lookup.VehicleLabel(vehicles, d.VehicleID),
			Address:     d.Address,
			Notes:       d.Notes,
		})
	}
	return out, nil
}

// Expenses aplica los filtros y agrupa los gastos por categoría.
func (uc *ReportUseCase) Expenses(ctx context.Context, q dto.ExpenseReportQuery) (*dto.ExpenseReportDTO, error) {
	start, err := uc.optionalDate("start_date", q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := uc.optionalDate("end_date", q.EndDate)
	if err != nil {
		return nil, err
	}

	var (
		expenses   []entity.Expense
		categories []entity.ExpenseCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { expenses, err = uc.repos.Expenses.List(gctx); return })
	g.Go(func() (err error) { categories, err = uc.repos.Categories.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de gastos: %w", err)
	}

	filter := report.ExpenseFilter{StartDate: start, EndDate: end, CategoryID: q.CategoryID}
	rep := report.BuildExpenseReport(report.FilterExpenses(expenses, filter, uc.clock.Loc()), categories)
	out := &dto.ExpenseReportDTO{
		GeneratedOn: uc.clock.FormatDate(uc.clock.Today()),
		Filters:     q,
		Rows:        make([]dto.ExpenseReportRow, 0, len(rep.Items)),
		Count:       rep.Count,
		TotalValue:  rep.TotalValue,
		Average:     rep.Average,
		ByCategory:  toKeySummaries(rep.ByCategory),
	}
	for _, e := range rep.Items {
		out.Rows = append(out.Rows, dto.ExpenseReportRow{
			ID:       e.ID,
			Name:     e.Name,
			Category: lookup.CategoryName(categories, e.CategoryID),
			Value:    e.Value,
			Date:     uc.displayDate(e.Date),
			Notes:    e.Notes,
		})
	}
	return out, nil
}

// ExportDeliveries genera el archivo del reporte de entregas en el formato pedido.
func (uc *ReportUseCase) ExportDeliveries(ctx context.Context, q dto.DeliveryReportQuery, format string) (*ExportResult, error) {
	exp, err := uc.exporter(format)
	if err != nil {
		return nil, err
	}
	rep, err := uc.Deliveries(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := exp.ExportDeliveries(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("exportar entregas (%s): %w", exp.Format(), err)
	}
	return &ExportResult{
		Data:        data,
		Filename:    Filename(DeliveryReportPrefix, rep.GeneratedOn, exp.Format()),
		ContentType: exp.ContentType(),
	}, nil
}

// ExportExpenses genera el archivo del reporte de gastos en el formato pedido.
func (uc *ReportUseCase) ExportExpenses(ctx context.Context, q dto.ExpenseReportQuery, format string) (*ExportResult, error) {
	exp, err := uc.exporter(format)
	if err != nil {
		return nil, err
	}
	rep, err := uc.Expenses(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := exp.ExportExpenses(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("exportar gastos (%s): %w", exp.Format(), err)
	}
	return &ExportResult{
		Data:        data,
		Filename:    Filename(ExpenseReportPrefix, rep.GeneratedOn, exp.Format()),
		ContentType: exp.ContentType(),
	}, nil
}

// Filename arma el nombre del archivo: relatorio_protocolos_2026-03-10.csv.
func Filename(prefix, date string, format ports.ExportFormat) string {
	return fmt.Sprintf("%s_%s.%s", prefix, date, format)
}

// StatusLabel etiqueta en portugués del estado de una entrega.
func StatusLabel(s entity.DeliveryStatus) string {
	switch s {
	case entity.StatusScheduled:
		return "Agendado"
	case entity.StatusDelivered:
		return "Entregue"
	case entity.StatusLegacyPending:
		return "Pendente"
	case entity.StatusLegacyFailed:
		return "Falhou"
	default:
		return string(s)
	}
}

func (uc *ReportUseCase) exporter(format string) (ports.ReportExporter, error) {
	exp, ok := uc.exporters[ports.ExportFormat(strings.ToLower(strings.TrimSpace(format)))]
	if !ok {
		return nil, &domain.ValidationError{Field: "format", Message: fmt.Sprintf("formato no soportado: %q", format)}
	}
	return exp, nil
}

func (uc *ReportUseCase) deliveryFilter(q dto.DeliveryReportQuery) (report.DeliveryFilter, error) {
	start, err := uc.optionalDate("start_date", q.StartDate)
	if err != nil {
		return report.DeliveryFilter{}, err
	}
	end, err := uc.optionalDate("end_date", q.EndDate)
	if err != nil {
		return report.DeliveryFilter{}, err
	}
	return report.DeliveryFilter{
		StartDate:  start,
		EndDate:    end,
		ClientName: q.ClientName,
		Status:     q.Status,
		ProductID:  q.ProductID,
		DriverID:   q.DriverID,
		VehicleID:  q.VehicleID,
	}, nil
}

func (uc *ReportUseCase) optionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := uc.clock.ParseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (uc *ReportUseCase) displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(uc.clock.Loc()).Format(dto.DisplayDateLayout)
}

func toKeySummaries(in []report.KeySummary) []dto.KeySummaryDTO {
	out := make([]dto.KeySummaryDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.KeySummaryDTO{
			Key:        s.Key,
			Count:      s.Count,
			Quantity:   s.Quantity,
			TotalValue: s.TotalValue,
			Average:    s.Average,
		})
	}
	return out
}
