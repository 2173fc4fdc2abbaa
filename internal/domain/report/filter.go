package report

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
)

// DeliveryFilter filtros opcionales del reporte de entregas (semántica AND; vacío = sin restricción).
type DeliveryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	ClientName string // subcadena, sin distinguir mayúsculas
	Status     string
	ProductID  string
	DriverID   string
	VehicleID  string
}

// ExpenseFilter filtros opcionales del reporte de gastos.
type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
}

// FilterDeliveries devuelve las entregas que cumplen todos los filtros, en el orden original.
func FilterDeliveries(items []entity.Delivery, f DeliveryFilter, loc *time.Location) []entity.Delivery {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.ClientName))

	out := make([]entity.Delivery, 0, len(items))
	for _, d := range items {
		if !inRange(d.DeliveryDate, f.StartDate, f.EndDate, loc) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(d.ClientName), needle) {
			continue
		}
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		if f.ProductID != "" && !d.HasProduct(f.ProductID) {
			continue
		}
		if f.DriverID != "" && d.DriverID != f.DriverID {
			continue
		}
		if f.VehicleID != "" && d.VehicleID != f.VehicleID {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterExpenses devuelve los gastos que cumplen todos los filtros.
func FilterExpenses(items []entity.Expense, f ExpenseFilter, loc *time.Location) []entity.Expense {
	out := make([]entity.Expense, 0, len(items))
	for _, e := range items {
		if !inRange(e.Date, f.StartDate, f.EndDate, loc) {
			continue
		}
		if f.CategoryID != "" && e.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, e)
	}
	return out
}
