package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/notify"
)

// NotificationHandler expone los avisos recientes para que el cliente los muestre como toasts.
type NotificationHandler struct {
	rec *notify.Recorder
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(rec *notify.Recorder) *NotificationHandler {
	return &NotificationHandler{rec: rec}
}

// List GET /api/notifications?after=<seq>
// Devuelve los avisos con secuencia mayor que after (todos los retenidos si se omite).
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	after := c.QueryInt("after", 0)
	if after < 0 {
		return respondError(c, &domain.ValidationError{Field: "after", Message: "debe ser mayor o igual a 0"})
	}
	items := h.rec.Since(uint64(after))
	if items == nil {
		items = []notify.Notification{}
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}
