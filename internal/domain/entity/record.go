package entity

// Record es cualquier entidad persistida en una colección del almacén (identificada por ID).
type Record interface {
	RecordID() string
}

// Nombres de las colecciones persistidas (una clave por colección).
// Las entregas viven en "deliveries"; datos viejos bajo otra clave no se leen.
const (
	KeyDeliveries        = "deliveries"
	KeyProducts          = "products"
	KeyDrivers           = "drivers"
	KeyVehicles          = "vehicles"
	KeyExpenses          = "expenses"
	KeyExpenseCategories = "expense-categories"
)
