package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryProductRequest línea de producto. Con solo product_id, nombre y descripción salen del catálogo.
type DeliveryProductRequest struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	CompartmentID string          `json:"compartment_id"`
}

// CreateDeliveryRequest entrada para programar una entrega.
type CreateDeliveryRequest struct {
	ClientName     string                   `json:"client_name" validate:"required,max=200"`
	ClientDocument string                   `json:"client_document"`
	ClientPhone    string                   `json:"client_phone"`
	Address        string                   `json:"address"`
	Products       []DeliveryProductRequest `json:"products" validate:"required,min=1"`
	DeliveryValue  decimal.Decimal          `json:"delivery_value"`
	DeliveryDate   string                   `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	DeliveryTime   string                   `json:"delivery_time" validate:"omitempty,datetime=15:04"`
	DriverID       string                   `json:"driver_id" validate:"required"`
	VehicleID      string                   `json:"vehicle_id" validate:"required"`
	Notes          string                   `json:"notes"`
}

// UpdateDeliveryRequest entrada para editar una entrega (no cambia el estado).
type UpdateDeliveryRequest struct {
	ClientName     *string                  `json:"client_name" validate:"omitempty,min=1,max=200"`
	ClientDocument *string                  `json:"client_document"`
	ClientPhone    *string                  `json:"client_phone"`
	Address        *string                  `json:"address"`
	Products       []DeliveryProductRequest `json:"products"`
	DeliveryValue  *decimal.Decimal         `json:"delivery_value"`
	DeliveryDate   *string                  `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	DeliveryTime   *string                  `json:"delivery_time" validate:"omitempty,datetime=15:04"`
	DriverID       *string                  `json:"driver_id" validate:"omitempty,min=1"`
	VehicleID      *string                  `json:"vehicle_id" validate:"omitempty,min=1"`
	Notes          *string                  `json:"notes"`
}

// SignatureStrokesRequest trazos capturados en el lienzo de firma.
type SignatureStrokesRequest struct {
	Strokes [][]PointDTO `json:"strokes"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
}

// PointDTO coordenada de un trazo.
type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SignatureResponse firma codificada como data URL.
type SignatureResponse struct {
	Signature string `json:"signature"`
}

// ConfirmDeliveryRequest confirmación con comprobante. Signature (data URL) o Strokes es obligatorio.
type ConfirmDeliveryRequest struct {
	ActualDeliveryDate string       `json:"actual_delivery_date" validate:"omitempty,datetime=2006-01-02"`
	ActualDeliveryTime string       `json:"actual_delivery_time" validate:"omitempty,datetime=15:04"`
	Signature          string       `json:"signature"`
	Strokes            [][]PointDTO `json:"strokes"`
	Photos             []string     `json:"photos"`
	Notes              *string      `json:"notes"`
}

// DeliveryProductResponse línea con nombres resueltos.
type DeliveryProductResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	CompartmentID string          `json:"compartment_id,omitempty"`
	Compartment   string          `json:"compartment,omitempty"`
}

// DeliveryResponse salida de una entrega con referencias resueltas.
type DeliveryResponse struct {
	ID                 string                    `json:"id"`
	ClientName         string                    `json:"client_name"`
	ClientDocument     string                    `json:"client_document"`
	ClientPhone        string                    `json:"client_phone"`
	Address            string                    `json:"address"`
	Products           []DeliveryProductResponse `json:"products"`
	DeliveryValue      decimal.Decimal           `json:"delivery_value"`
	DeliveryDate       string                    `json:"delivery_date"`
	DeliveryTime       string                    `json:"delivery_time"`
	DriverID           string                    `json:"driver_id"`
	Driver             string                    `json:"driver"`
	VehicleID          string                    `json:"vehicle_id"`
	Vehicle            string                    `json:"vehicle"`
	Signature          string                    `json:"signature,omitempty"`
	Photos             []string                  `json:"photos"`
	Notes              string                    `json:"notes,omitempty"`
	Status             string                    `json:"status"`
	ActualDeliveryDate string                    `json:"actual_delivery_date,omitempty"`
	ActualDeliveryTime string                    `json:"actual_delivery_time,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// ScheduleResponse entregas de un día, ordenadas por hora, separadas por estado.
type ScheduleResponse struct {
	Date      string             `json:"date"`
	Pending   []DeliveryResponse `json:"pending"`
	Completed []DeliveryResponse `json:"completed"`
	Total     int                `json:"total"`
}
