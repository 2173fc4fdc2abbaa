package http

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/deliveryops-api/internal/application/delivery"
	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/domain"
)

// DeliveryHandler maneja el flujo de entregas: programación, agenda del día y confirmación.
type DeliveryHandler struct {
	uc        *delivery.UseCase
	maxUpload int
}

// NewDeliveryHandler construye el handler. maxUpload limita el tamaño de cada foto subida (bytes).
func NewDeliveryHandler(uc *delivery.UseCase, maxUpload int) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, maxUpload: maxUpload}
}

// Create godoc
// @Summary      Programar entrega
// @Description  Crea la entrega en estado scheduled. Si delivery_value es 0 se sugiere a partir del catálogo.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Datos de la entrega"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/deliveries/:id
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/deliveries
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Update PUT /api/deliveries/:id
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/deliveries/:id
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Schedule godoc
// @Summary      Agenda del día
// @Description  Entregas de la fecha (por defecto hoy) separadas en pendientes y completadas.
// @Tags         deliveries
// @Produce      json
// @Param        date  query  string  false  "Fecha YYYY-MM-DD"
// @Success      200   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries/schedule [get]
func (h *DeliveryHandler) Schedule(c *fiber.Ctx) error {
	out, err := h.uc.Schedule(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar entrega
// @Description  Registra firma, fotos y fecha real; la entrega pasa a delivered. Sin firma responde 422.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrega"
// @Param        body  body  dto.ConfirmDeliveryRequest  true  "Comprobante"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/confirm [post]
func (h *DeliveryHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmDeliveryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Confirm(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddPhotos POST /api/deliveries/:id/photos (multipart, campo "photos").
func (h *DeliveryHandler) AddPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, &domain.ValidationError{Field: "photos", Message: "se espera multipart/form-data"})
	}
	headers := form.File["photos"]
	if len(headers) == 0 {
		return respondError(c, domain.Required("photos"))
	}

	files := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		if h.maxUpload > 0 && fh.Size > int64(h.maxUpload) {
			return respondError(c, &domain.ValidationError{
				Field:   "photos",
				Message: fmt.Sprintf("%s supera %d bytes", fh.Filename, h.maxUpload),
			})
		}
		f, err := fh.Open()
		if err != nil {
			return respondError(c, fmt.Errorf("abrir %s: %w", fh.Filename, err))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, fmt.Errorf("leer %s: %w", fh.Filename, err))
		}
		files = append(files, data)
	}

	out, err := h.uc.AddPhotos(c.UserContext(), c.Params("id"), files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemovePhoto DELETE /api/deliveries/:id/photos/:index
func (h *DeliveryHandler) RemovePhoto(c *fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return respondError(c, &domain.ValidationError{Field: "index", Message: "debe ser un número"})
	}
	out, err := h.uc.RemovePhoto(c.UserContext(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RenderSignature POST /api/signatures
// Convierte los trazos del lienzo en una imagen PNG (data URL) sin tocar ninguna entrega.
func (h *DeliveryHandler) RenderSignature(c *fiber.Ctx) error {
	var in dto.SignatureStrokesRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RenderSignature(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
