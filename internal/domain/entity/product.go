package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de entregas.
// DefaultValue se usa como valor sugerido al programar una entrega.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	DefaultValue decimal.Decimal `json:"defaultValue"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (p Product) RecordID() string { return p.ID }
