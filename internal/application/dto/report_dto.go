package dto

import "github.com/shopspring/decimal"

// DisplayDateLayout formato de fecha de las filas de reporte (dd/mm/yyyy).
const DisplayDateLayout = "02/01/2006"

// DeliveryReportQuery filtros del reporte de entregas (query string). Vacío = sin restricción.
type DeliveryReportQuery struct {
	StartDate  string `query:"start_date" json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"end_date" json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClientName string `query:"client_name" json:"client_name,omitempty"`
	Status     string `query:"status" json:"status,omitempty"`
	ProductID  string `query:"product_id" json:"product_id,omitempty"`
	DriverID   string `query:"driver_id" json:"driver_id,omitempty"`
	VehicleID  string `query:"vehicle_id" json:"vehicle_id,omitempty"`
}

// ExpenseReportQuery filtros del reporte de gastos.
type ExpenseReportQuery struct {
	StartDate  string `query:"start_date" json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"end_date" json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"category_id" json:"category_id,omitempty"`
}

// DeliveryReportRow fila del reporte en orden de exportación.
type DeliveryReportRow struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	Products    string          `json:"products"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"` // dd/mm/yyyy
	Time        string          `json:"time"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Driver      string          `json:"driver"`
	Vehicle     string          `json:"vehicle"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
}

// KeySummaryDTO fila del resumen por producto o categoría.
type KeySummaryDTO struct {
	Key        string          `json:"key"`
	Count      int             `json:"count"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	Average    decimal.Decimal `json:"average"`
}

// DeliveryReportDTO respuesta de GET /api/reports/deliveries.
type DeliveryReportDTO struct {
	GeneratedOn   string              `json:"generated_on"` // YYYY-MM-DD
	Filters       DeliveryReportQuery `json:"filters"`
	Rows          []DeliveryReportRow `json:"rows"`
	Count         int                 `json:"count"`
	TotalValue    decimal.Decimal     `json:"total_value"`
	TotalQuantity decimal.Decimal     `json:"total_quantity"`
	Delivered     int                 `json:"delivered"`
	Pending       int                 `json:"pending"`
	Failed        int                 `json:"failed"`
	DeliveryRate  int                 `json:"delivery_rate"` // porcentaje
	ByProduct     []KeySummaryDTO     `json:"by_product"`
}

// ExpenseReportRow fila del reporte de gastos.
type ExpenseReportRow struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
	Date     string          `json:"date"` // dd/mm/yyyy
	Notes    string          `json:"notes"`
}

// ExpenseReportDTO respuesta de GET /api/reports/expenses.
type ExpenseReportDTO struct {
	GeneratedOn string             `json:"generated_on"`
	Filters     ExpenseReportQuery `json:"filters"`
	Rows        []ExpenseReportRow `json:"rows"`
	Count       int                `json:"count"`
	TotalValue  decimal.Decimal    `json:"total_value"`
	Average     decimal.Decimal    `json:"average"`
	ByCategory  []KeySummaryDTO    `json:"by_category"`
}
