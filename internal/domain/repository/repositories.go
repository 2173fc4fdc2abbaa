package repository

import "github.com/jhoicas/deliveryops-api/internal/domain/entity"

// Puertos tipados por colección (inyectados en los casos de uso).
type (
	ProductRepository         = Repository[entity.Product]
	DriverRepository          = Repository[entity.Driver]
	VehicleRepository         = Repository[entity.Vehicle]
	ExpenseRepository         = Repository[entity.Expense]
	ExpenseCategoryRepository = Repository[entity.ExpenseCategory]
	DeliveryRepository        = Repository[entity.Delivery]
)
