package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"required"`
	Category     string          `json:"category"`
	DefaultValue decimal.Decimal `json:"default_value"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil no se tocan).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,min=1"`
	Category     *string          `json:"category"`
	DefaultValue *decimal.Decimal `json:"default_value"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	DefaultValue decimal.Decimal `json:"default_value"`
	CreatedAt    time.Time       `json:"created_at"`
}
