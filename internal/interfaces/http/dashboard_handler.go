package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen financiero de hoy y de los últimos 7 días.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (today_revenue, today_expenses, today_profit,
// delivered_today, scheduled_today, last_7_days[7], weekly_profit, date_label).
// No requiere parámetros; las fechas se calculan en el servidor con la zona configurada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
