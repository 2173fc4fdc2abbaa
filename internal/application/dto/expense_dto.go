package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseCategoryRequest entrada para crear una categoría de gasto.
type CreateExpenseCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// UpdateExpenseCategoryRequest entrada para actualizar una categoría.
type UpdateExpenseCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// ExpenseCategoryResponse salida de una categoría.
type ExpenseCategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExpenseRequest entrada para registrar un gasto. Date vacío = hoy.
type CreateExpenseRequest struct {
	Name       string          `json:"name" validate:"required,max=200"`
	Value      decimal.Decimal `json:"value"`
	CategoryID string          `json:"category_id" validate:"required"`
	Date       string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes      string          `json:"notes"`
}

// UpdateExpenseRequest entrada para actualizar un gasto.
type UpdateExpenseRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Value      *decimal.Decimal `json:"value"`
	CategoryID *string          `json:"category_id" validate:"omitempty,min=1"`
	Date       *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes      *string          `json:"notes"`
}

// ExpenseResponse salida de un gasto con la categoría resuelta.
type ExpenseResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Date       string          `json:"date"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
