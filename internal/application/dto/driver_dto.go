package dto

import "time"

// CreateDriverRequest entrada para crear un motorista.
type CreateDriverRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	MainVehicleID string `json:"main_vehicle_id"`
}

// UpdateDriverRequest entrada para actualizar un motorista.
type UpdateDriverRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	MainVehicleID *string `json:"main_vehicle_id"`
}

// DriverResponse salida de un motorista con el vehículo principal resuelto.
type DriverResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MainVehicleID string    `json:"main_vehicle_id"`
	MainVehicle   string    `json:"main_vehicle"`
	CreatedAt     time.Time `json:"created_at"`
}
