package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompartmentRequest entrada de un compartimento.
type CompartmentRequest struct {
	Name             string           `json:"name" validate:"required,max=100"`
	Capacity         decimal.Decimal  `json:"capacity"`
	CurrentProductID string           `json:"current_product_id"`
	CurrentQuantity  *decimal.Decimal `json:"current_quantity"`
}

// CreateVehicleRequest entrada para crear un vehículo.
type CreateVehicleRequest struct {
	Name              string               `json:"name" validate:"required,max=200"`
	Model             string               `json:"model"`
	Plate             string               `json:"plate" validate:"required,max=20"`
	FuelTankCapacity  decimal.Decimal      `json:"fuel_tank_capacity"`
	TransportCapacity decimal.Decimal      `json:"transport_capacity"`
	Compartments      []CompartmentRequest `json:"compartments" validate:"dive"`
}

// UpdateVehicleRequest entrada para actualizar un vehículo. Compartments != nil reemplaza la lista.
type UpdateVehicleRequest struct {
	Name              *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Model             *string              `json:"model"`
	Plate             *string              `json:"plate" validate:"omitempty,min=1,max=20"`
	FuelTankCapacity  *decimal.Decimal     `json:"fuel_tank_capacity"`
	TransportCapacity *decimal.Decimal     `json:"transport_capacity"`
	Compartments      []CompartmentRequest `json:"compartments" validate:"omitempty,dive"`
}

// CompartmentResponse salida de un compartimento con el producto actual resuelto.
type CompartmentResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Capacity         decimal.Decimal  `json:"capacity"`
	CurrentProductID string           `json:"current_product_id,omitempty"`
	CurrentProduct   string           `json:"current_product,omitempty"`
	CurrentQuantity  *decimal.Decimal `json:"current_quantity,omitempty"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Model             string                `json:"model"`
	Plate             string                `json:"plate"`
	FuelTankCapacity  decimal.Decimal       `json:"fuel_tank_capacity"`
	TransportCapacity decimal.Decimal       `json:"transport_capacity"`
	CompartmentTotal  decimal.Decimal       `json:"compartment_total"` // suma de capacidades
	Compartments      []CompartmentResponse `json:"compartments"`
	CreatedAt         time.Time             `json:"created_at"`
}
