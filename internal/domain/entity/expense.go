package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory agrupa gastos para el reporte por categoría.
type ExpenseCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c ExpenseCategory) RecordID() string { return c.ID }

// Expense gasto operativo. Date se guarda truncada a medianoche.
type Expense struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	CategoryID string          `json:"categoryId"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (e Expense) RecordID() string { return e.ID }
