package entity

import "time"

// Driver representa un motorista; MainVehicleID puede apuntar a un vehículo ya eliminado.
type Driver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MainVehicleID string    `json:"mainVehicleId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (d Driver) RecordID() string { return d.ID }
