package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle representa un vehículo de reparto con sus compartimentos (en orden).
type Vehicle struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Model             string          `json:"model"`
	Plate             string          `json:"plate"`
	FuelTankCapacity  decimal.Decimal `json:"fuelTankCapacity"`
	TransportCapacity decimal.Decimal `json:"transportCapacity"`
	Compartments      []Compartment   `json:"compartments"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func (v Vehicle) RecordID() string { return v.ID }

// Compartment subdivisión de un vehículo. La ocupación es solo informativa, no se valida contra Capacity.
type Compartment struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Capacity         decimal.Decimal  `json:"capacity"`
	CurrentProductID string           `json:"currentProductId,omitempty"`
	CurrentQuantity  *decimal.Decimal `json:"currentQuantity,omitempty"`
}

// FindCompartment busca un compartimento por ID (búsqueda lineal).
func (v Vehicle) FindCompartment(id string) (Compartment, bool) {
	for _, c := range v.Compartments {
		if c.ID == id {
			return c, true
		}
	}
	return Compartment{}, false
}
