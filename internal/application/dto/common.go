package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ListResponse lista completa de una colección (sin paginación: todo vive en memoria).
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList envuelve items garantizando un arreglo JSON (nunca null).
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// DateLayout formato de fecha de entrada/salida (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimeLayout formato de hora (HH:MM).
const TimeLayout = "15:04"
