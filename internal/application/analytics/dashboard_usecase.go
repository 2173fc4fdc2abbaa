// Package analytics contiene los casos de uso de lectura: el resumen financiero
// del dashboard y los reportes filtrados de entregas y gastos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/report"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen financiero de hoy y de los últimos 7 días.
//
// Fuente de datos: las colecciones de entregas y gastos, cargadas completas.
// Todo el cálculo es puro (paquete report).
type DashboardUseCase struct {
	deliveries repository.DeliveryRepository
	expenses   repository.ExpenseRepository
	clock      usecase.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(deliveries repository.DeliveryRepository, expenses repository.ExpenseRepository, clock usecase.Clock) *DashboardUseCase {
	return &DashboardUseCase{deliveries: deliveries, expenses: expenses, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos cargas en paralelo:
//  1. entregas
//  2. gastos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		deliveries []entity.Delivery
		expenses   []entity.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if deliveries, err = uc.deliveries.List(gctx); err != nil {
			return fmt.Errorf("dashboard: entregas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = uc.expenses.List(gctx); err != nil {
			return fmt.Errorf("dashboard: gastos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.clock.Time()
	sum := report.Financial(now, deliveries, expenses, uc.clock.Loc())

	out := &dto.DashboardSummaryDTO{
		TodayRevenue:       sum.Today.TotalRevenue.Round(2),
		TodayExpenses:      sum.Today.TotalExpenses.Round(2),
		TodayProfit:        sum.Today.Profit.Round(2),
		ExpenseCount:       sum.Today.ExpenseCount,
		DeliveredToday:     sum.Today.DeliveryCount,
		ScheduledToday:     sum.Today.Scheduled,
		TotalToday:         sum.Today.Total,
		Last7Days:          make([]dto.DailyFinancialDTO, 0, len(sum.Last7Days)),
		WeeklyProfit:       sum.WeeklyProfit.Round(2),
		AverageDailyProfit: sum.AverageDailyProfit,
		DateLabel:          dayLabel(now),
	}
	for _, d := range sum.Last7Days {
		out.Last7Days = append(out.Last7Days, dto.DailyFinancialDTO{
			Date:          uc.clock.FormatDate(d.Date),
			TotalRevenue:  d.TotalRevenue.Round(2),
			TotalExpenses: d.TotalExpenses.Round(2),
			Profit:        d.Profit.Round(2),
			DeliveryCount: d.DeliveryCount,
			ExpenseCount:  d.ExpenseCount,
		})
	}
	return out, nil
}

// dayLabel devuelve una etiqueta legible del día, ej: "10 de março de 2026".
func dayLabel(t time.Time) string {
	months := [...]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
