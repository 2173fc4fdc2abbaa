package ports

import "context"

// NotifyKind tipo de aviso mostrado al usuario (toast).
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
	NotifyInfo    NotifyKind = "info"
)

// Notifier sumidero de avisos: confirmaciones y errores de validación.
// La presentación (toast, log, polling) es responsabilidad del adaptador.
type Notifier interface {
	Notify(ctx context.Context, message string, kind NotifyKind)
}
