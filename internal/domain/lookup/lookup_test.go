package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
)

func TestDriverName_DanglingReference(t *testing.T) {
	drivers := []entity.Driver{{ID: "d1", Name: "João"}}

	assert.Equal(t, "João", lookup.DriverName(drivers, "d1"))
	assert.Equal(t, lookup.DriverNotFound, lookup.DriverName(drivers, "borrado"))
	assert.Equal(t, lookup.DriverNotFound, lookup.DriverName(nil, ""))
}

func TestVehicleLabel(t *testing.T) {
	vehicles := []entity.Vehicle{{ID: "v1", Name: "Truck 1", Plate: "ABC1D23"}}

	assert.Equal(t, "Truck 1 (ABC1D23)", lookup.VehicleLabel(vehicles, "v1"))
	assert.Equal(t, lookup.VehicleNotFound, lookup.VehicleLabel(vehicles, "v2"))
}

func TestCompartmentName(t *testing.T) {
	vehicles := []entity.Vehicle{{
		ID:           "v1",
		Compartments: []entity.Compartment{{ID: "c1", Name: "Tanque A"}},
	}}

	assert.Equal(t, "Tanque A", lookup.CompartmentName(vehicles, "v1", "c1"))
	assert.Equal(t, lookup.CompartmentNotFound, lookup.CompartmentName(vehicles, "v1", "c9"))
	assert.Equal(t, lookup.CompartmentNotFound, lookup.CompartmentName(vehicles, "v9", "c1"))
}

func TestLineName_FallsBackToCopiedName(t *testing.T) {
	products := []entity.Product{{ID: "p1", Name: "Gás P13"}}

	assert.Equal(t, "Gás P13", lookup.LineName(products, entity.DeliveryProduct{ProductID: "p1", ProductName: "viejo"}))
	assert.Equal(t, "Água 20L", lookup.LineName(products, entity.DeliveryProduct{ProductID: "px", ProductName: "Água 20L"}))
	assert.Equal(t, lookup.ProductNotFound, lookup.LineName(products, entity.DeliveryProduct{ProductID: "px"}))
}

func TestCategoryName(t *testing.T) {
	cats := []entity.ExpenseCategory{{ID: "c1", Name: "Combustível"}}
	assert.Equal(t, "Combustível", lookup.CategoryName(cats, "c1"))
	assert.Equal(t, lookup.CategoryNotFound, lookup.CategoryName(cats, "c2"))
}
