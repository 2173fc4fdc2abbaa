package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/domain"
)

// ReportHandler reportes filtrados de entregas y gastos.
// Sin format (o format=json) devuelve el reporte en JSON; csv, xlsx y pdf se descargan como adjunto.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Deliveries godoc
// @Summary      Reporte de entregas
// @Tags         reports
// @Produce      json
// @Param        start_date   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        client_name  query  string  false  "Cliente (contiene)"
// @Param        status       query  string  false  "scheduled | delivered"
// @Param        product_id   query  string  false  "Producto"
// @Param        driver_id    query  string  false  "Motorista"
// @Param        vehicle_id   query  string  false  "Vehículo"
// @Param        format       query  string  false  "json | csv | xlsx | pdf"
// @Success      200  {object}  dto.DeliveryReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/deliveries [get]
func (h *ReportHandler) Deliveries(c *fiber.Ctx) error {
	var q dto.DeliveryReportQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	format := c.Query("format")
	if isJSON(format) {
		rep, err := h.uc.Deliveries(c.UserContext(), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rep)
	}
	res, err := h.uc.ExportDeliveries(c.UserContext(), q, format)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, res)
}

// Expenses godoc
// @Summary      Reporte de gastos
// @Tags         reports
// @Produce      json
// @Param        start_date   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        category_id  query  string  false  "Categoría"
// @Param        format       query  string  false  "json | csv | xlsx | pdf"
// @Success      200  {object}  dto.ExpenseReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	var q dto.ExpenseReportQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	format := c.Query("format")
	if isJSON(format) {
		rep, err := h.uc.Expenses(c.UserContext(), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rep)
	}
	res, err := h.uc.ExportExpenses(c.UserContext(), q, format)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, res)
}

func parseQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return &domain.ValidationError{Message: "parámetros de consulta inválidos"}
	}
	return validateStruct(out)
}

func isJSON(format string) bool {
	f := strings.ToLower(strings.TrimSpace(format))
	return f == "" || f == "json"
}

func sendFile(c *fiber.Ctx, res *appanalytics.ExportResult) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Send(res.Data)
}
