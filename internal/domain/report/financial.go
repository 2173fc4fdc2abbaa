package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
)

// WeekDays días de la ventana móvil del resumen (incluye hoy).
const WeekDays = 7

// DailyFinancial resultado financiero de un día.
type DailyFinancial struct {
	Date          time.Time
	TotalRevenue  decimal.Decimal // suma de DeliveryValue de entregas delivered
	TotalExpenses decimal.Decimal
	Profit        decimal.Decimal
	DeliveryCount int // entregas delivered
	ExpenseCount  int
	Scheduled     int // solo status scheduled; el legado pending no cuenta
	Total         int // todas las entregas programadas para el día
}

// FinancialSummary resumen de hoy y de los últimos 7 días.
type FinancialSummary struct {
	Today              DailyFinancial
	Last7Days          []DailyFinancial // del más antiguo a hoy
	WeeklyProfit       decimal.Decimal
	AverageDailyProfit decimal.Decimal
}

// Daily agrupa entregas y gastos del día (comparación por medianoche en loc).
func Daily(day time.Time, deliveries []entity.Delivery, expenses []entity.Expense, loc *time.Location) DailyFinancial {
	out := DailyFinancial{
		Date:          Day(day, loc),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, d := range deliveries {
		if !SameDay(d.DeliveryDate, out.Date, loc) {
			continue
		}
		out.Total++
		switch {
		case d.Status == entity.StatusDelivered:
			out.DeliveryCount++
			out.TotalRevenue = out.TotalRevenue.Add(d.DeliveryValue)
		case d.Status == entity.StatusScheduled:
			out.Scheduled++
		}
	}
	for _, e := range expenses {
		if !SameDay(e.Date, out.Date, loc) {
			continue
		}
		out.ExpenseCount++
		out.TotalExpenses = out.TotalExpenses.Add(e.Value)
	}
	out.Profit = out.TotalRevenue.Sub(out.TotalExpenses)
	return out
}

// Financial calcula el día de now y la ventana de 7 días terminando en now.
// Cada día se agrupa de forma independiente; el promedio es WeeklyProfit / 7.
func Financial(now time.Time, deliveries []entity.Delivery, expenses []entity.Expense, loc *time.Location) FinancialSummary {
	today := Day(now, loc)
	out := FinancialSummary{
		Today:        Daily(today, deliveries, expenses, loc),
		Last7Days:    make([]DailyFinancial, 0, WeekDays),
		WeeklyProfit: decimal.Zero,
	}
	for i := WeekDays - 1; i >= 0; i-- {
		day := Daily(today.AddDate(0, 0, -i), deliveries, expenses, loc)
		out.Last7Days = append(out.Last7Days, day)
		out.WeeklyProfit = out.WeeklyProfit.Add(day.Profit)
	}
	out.AverageDailyProfit = out.WeeklyProfit.Div(decimal.NewFromInt(WeekDays)).Round(2)
	return out
}
