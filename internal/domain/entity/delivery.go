package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estado del protocolo de entrega.
type DeliveryStatus string

// Ciclo de vida: scheduled (inicial) -> delivered (terminal, solo vía confirmación).
const (
	StatusScheduled DeliveryStatus = "scheduled"
	StatusDelivered DeliveryStatus = "delivered"

	// Valores heredados de datos antiguos; se leen tal cual y solo cuentan en reportes.
	StatusLegacyPending DeliveryStatus = "pending"
	StatusLegacyFailed  DeliveryStatus = "failed"
)

// IsPending indica si la entrega sigue pendiente de confirmación.
func (s DeliveryStatus) IsPending() bool {
	return s == StatusScheduled || s == StatusLegacyPending
}

// Delivery protocolo de entrega: datos del cliente, líneas de producto, programación y comprobante.
type Delivery struct {
	ID             string            `json:"id"`
	ClientName     string            `json:"clientName"`
	ClientDocument string            `json:"clientDocument"`
	ClientPhone    string            `json:"clientPhone"`
	Address        string            `json:"address"`
	Products       []DeliveryProduct `json:"products"`
	DeliveryValue  decimal.Decimal   `json:"deliveryValue"`
	DeliveryDate   time.Time         `json:"deliveryDate"`
	DeliveryTime   string            `json:"deliveryTime"` // HH:MM
	DriverID       string            `json:"driverId"`
	VehicleID      string            `json:"vehicleId"`
	Signature      string            `json:"signature,omitempty"` // data URL
	Photos         []string          `json:"photos"`              // data URLs
	Notes          string            `json:"notes,omitempty"`
	Status         DeliveryStatus    `json:"status"`

	ActualDeliveryDate *time.Time `json:"actualDeliveryDate,omitempty"`
	ActualDeliveryTime string     `json:"actualDeliveryTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (d Delivery) RecordID() string { return d.ID }

// TotalQuantity suma las cantidades de todas las líneas.
func (d Delivery) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Products {
		total = total.Add(p.Quantity)
	}
	return total
}

// HasProduct indica si alguna línea referencia el producto.
func (d Delivery) HasProduct(productID string) bool {
	for _, p := range d.Products {
		if p.ProductID == productID {
			return true
		}
	}
	return false
}

// DeliveryProduct línea de producto de una entrega. CompartmentID es opcional.
type DeliveryProduct struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	CompartmentID string          `json:"compartmentId,omitempty"`
}
