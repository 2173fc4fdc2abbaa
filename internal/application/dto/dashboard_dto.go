package dto

import "github.com/shopspring/decimal"

// DailyFinancialDTO resultado financiero de un día.
type DailyFinancialDTO struct {
	Date          string          `json:"date"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
	DeliveryCount int             `json:"delivery_count"`
	ExpenseCount  int             `json:"expense_count"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Métricas del día actual y de la ventana de 7 días que termina hoy.
type DashboardSummaryDTO struct {
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TodayExpenses  decimal.Decimal `json:"today_expenses"`
	TodayProfit    decimal.Decimal `json:"today_profit"`
	ExpenseCount   int             `json:"expense_count"`
	DeliveredToday int             `json:"delivered_today"`
	ScheduledToday int             `json:"scheduled_today"`
	TotalToday     int             `json:"total_today"`

	Last7Days          []DailyFinancialDTO `json:"last_7_days"` // del más antiguo a hoy
	WeeklyProfit       decimal.Decimal     `json:"weekly_profit"`
	AverageDailyProfit decimal.Decimal     `json:"average_daily_profit"`

	DateLabel string `json:"date_label"` // ej: "10 de março de 2026"
}
