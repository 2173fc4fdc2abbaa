// Package lookup resuelve referencias entre colecciones por búsqueda lineal.
// No hay integridad referencial: un ID colgante se resuelve a una etiqueta fija, nunca a un error.
package lookup

import (
	"fmt"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
)

// Etiquetas mostradas cuando la referencia no existe.
const (
	ProductNotFound     = "Produto não encontrado"
	DriverNotFound      = "Motorista não encontrado"
	VehicleNotFound     = "Veículo não encontrado"
	CategoryNotFound    = "Categoria não encontrada"
	CompartmentNotFound = "Compartimento não encontrado"
)

// Find devuelve el primer registro con el ID dado.
func Find[T entity.Record](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// ProductName nombre del producto o ProductNotFound.
func ProductName(products []entity.Product, id string) string {
	if p, ok := Find(products, id); ok {
		return p.Name
	}
	return ProductNotFound
}

// DriverName nombre del motorista o DriverNotFound.
func DriverName(drivers []entity.Driver, id string) string {
	if d, ok := Find(drivers, id); ok {
		return d.Name
	}
	return DriverNotFound
}

// VehicleLabel "Nombre (PLACA)" o VehicleNotFound.
func VehicleLabel(vehicles []entity.Vehicle, id string) string {
	if v, ok := Find(vehicles, id); ok {
		return fmt.Sprintf("%s (%s)", v.Name, v.Plate)
	}
	return VehicleNotFound
}

// CategoryName nombre de la categoría de gasto o CategoryNotFound.
func CategoryName(categories []entity.ExpenseCategory, id string) string {
	if c, ok := Find(categories, id); ok {
		return c.Name
	}
	return CategoryNotFound
}

// CompartmentName nombre del compartimento dentro del vehículo o CompartmentNotFound.
func CompartmentName(vehicles []entity.Vehicle, vehicleID, compartmentID string) string {
	v, ok := Find(vehicles, vehicleID)
	if !ok {
		return CompartmentNotFound
	}
	if c, ok := v.FindCompartment(compartmentID); ok {
		return c.Name
	}
	return CompartmentNotFound
}

// LineName nombre a mostrar de una línea de entrega: el del catálogo si existe,
// si no el nombre copiado en la línea, y como último recurso ProductNotFound.
func LineName(products []entity.Product, line entity.DeliveryProduct) string {
	if p, ok := Find(products, line.ProductID); ok {
		return p.Name
	}
	if line.ProductName != "" {
		return line.ProductName
	}
	return ProductNotFound
}
