package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrSignatureRequired = errors.New("la firma del cliente es obligatoria")
	ErrInvalidImage      = errors.New("imagen inválida")
)

// ValidationError error de validación de un campo obligatorio; envuelve ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Required construye el error para un campo obligatorio vacío.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "es obligatorio"}
}
