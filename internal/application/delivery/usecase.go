// Package delivery implementa el flujo de entregas: programación, agenda del día
// y confirmación con firma y fotos (scheduled -> delivered).
package delivery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/domain/report"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// UseCase casos de uso del protocolo de entrega.
type UseCase struct {
	deliveries repository.DeliveryRepository
	products   repository.ProductRepository
	drivers    repository.DriverRepository
	vehicles   repository.VehicleRepository
	media      MediaProcessor
	notifier   ports.Notifier
	clock      usecase.Clock
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	deliveries repository.DeliveryRepository,
	products repository.ProductRepository,
	drivers repository.DriverRepository,
	vehicles repository.VehicleRepository,
	media MediaProcessor,
	notifier ports.Notifier,
	clock usecase.Clock,
) *UseCase {
	return &UseCase{
		deliveries: deliveries,
		products:   products,
		drivers:    drivers,
		vehicles:   vehicles,
		media:      media,
		notifier:   notifier,
		clock:      clock,
	}
}

// Create programa una entrega. El estado siempre inicia en scheduled.
// Si DeliveryValue es cero se sugiere la suma de defaultValue × cantidad del catálogo.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	refs, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := buildLines(in.Products, refs.products)
	if err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}
	if err := validate(in.ClientName, lines, in.DriverID, in.VehicleID); err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}
	if in.DeliveryValue.IsNegative() {
		return nil, usecase.Fail(ctx, uc.notifier, &domain.ValidationError{Field: "delivery_value", Message: "no puede ser negativo"})
	}
	date, err := uc.clock.ParseDate("delivery_date", in.DeliveryDate)
	if err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}

	value := in.DeliveryValue
	if value.IsZero() {
		value = SuggestedValue(lines, refs.products)
	}
	d := entity.Delivery{
		ID:             usecase.NewID(),
		ClientName:     strings.TrimSpace(in.ClientName),
		ClientDocument: in.ClientDocument,
		ClientPhone:    in.ClientPhone,
		Address:        in.Address,
		Products:       lines,
		DeliveryValue:  value,
		DeliveryDate:   date,
		DeliveryTime:   in.DeliveryTime,
		DriverID:       in.DriverID,
		VehicleID:      in.VehicleID,
		Photos:         []string{},
		Notes:          in.Notes,
		Status:         entity.StatusScheduled,
		CreatedAt:      uc.clock.Time(),
	}
	if err := uc.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	usecase.Notify(ctx, uc.notifier, "Protocolo criado com sucesso!", ports.NotifySuccess)
	out := uc.toResponse(d, refs)
	return &out, nil
}

// GetByID obtiene una entrega con las referencias resueltas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, *d)
}

// Update edita los datos de la entrega. El estado y el comprobante solo cambian vía Confirm.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	refs, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	if in.ClientName != nil {
		d.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientDocument != nil {
		d.ClientDocument = *in.ClientDocument
	}
	if in.ClientPhone != nil {
		d.ClientPhone = *in.ClientPhone
	}
	if in.Address != nil {
		d.Address = *in.Address
	}
	if in.Products != nil {
		lines, err := buildLines(in.Products, refs.products)
		if err != nil {
			return nil, usecase.Fail(ctx, uc.notifier, err)
		}
		d.Products = lines
	}
	if in.DeliveryValue != nil {
		if in.DeliveryValue.IsNegative() {
			return nil, usecase.Fail(ctx, uc.notifier, &domain.ValidationError{Field: "delivery_value", Message: "no puede ser negativo"})
		}
		d.DeliveryValue = *in.DeliveryValue
	}
	if in.DeliveryDate != nil {
		date, err := uc.clock.ParseDate("delivery_date", *in.DeliveryDate)
		if err != nil {
			return nil, usecase.Fail(ctx, uc.notifier, err)
		}
		d.DeliveryDate = date
	}
	if in.DeliveryTime != nil {
		d.DeliveryTime = *in.DeliveryTime
	}
	if in.DriverID != nil {
		d.DriverID = *in.DriverID
	}
	if in.VehicleID != nil {
		d.VehicleID = *in.VehicleID
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	if err := validate(d.ClientName, d.Products, d.DriverID, d.VehicleID); err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}
	if err := uc.deliveries.Update(ctx, *d); err != nil {
		return nil, err
	}
	usecase.Notify(ctx, uc.notifier, "Protocolo atualizado", ports.NotifySuccess)
	out := uc.toResponse(*d, refs)
	return &out, nil
}

// Delete elimina una entrega.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.deliveries.Delete(ctx, id); err != nil {
		return err
	}
	usecase.Notify(ctx, uc.notifier, "O protocolo foi removido com sucesso.", ports.NotifySuccess)
	return nil
}

// List lista todas las entregas ordenadas por fecha y hora.
func (uc *UseCase) List(ctx context.Context) ([]dto.DeliveryResponse, error) {
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	sortByDateTime(list)
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, uc.toResponse(d, refs))
	}
	return items, nil
}

// Schedule agenda de un día (YYYY-MM-DD; vacío = hoy): pendientes y completadas, por hora.
func (uc *UseCase) Schedule(ctx context.Context, date string) (*dto.ScheduleResponse, error) {
	day, err := uc.clock.ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	sortByDateTime(list)

	out := &dto.ScheduleResponse{
		Date:      uc.clock.FormatDate(day),
		Pending:   []dto.DeliveryResponse{},
		Completed: []dto.DeliveryResponse{},
	}
	for _, d := range list {
		if !report.SameDay(d.DeliveryDate, day, uc.clock.Loc()) {
			continue
		}
		switch {
		case d.Status == entity.StatusDelivered:
			out.Completed = append(out.Completed, uc.toResponse(d, refs))
		case d.Status.IsPending():
			out.Pending = append(out.Pending, uc.toResponse(d, refs))
		default:
			continue
		}
		out.Total++
	}
	return out, nil
}

// Confirm registra la entrega: exige firma, adjunta fotos y pasa el estado a delivered.
// Sin firma devuelve domain.ErrSignatureRequired y el registro queda intacto.
// Reaplicar la misma confirmación produce el mismo registro.
func (uc *UseCase) Confirm(ctx context.Context, id string, in dto.ConfirmDeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	signature, err := uc.signature(in)
	if err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}
	for i, p := range in.Photos {
		if !uc.media.IsImage(p) {
			return nil, usecase.Fail(ctx, uc.notifier, fmt.Errorf("%w: foto %d", domain.ErrInvalidImage, i+1))
		}
	}

	now := uc.clock.Time()
	switch {
	case in.ActualDeliveryDate != "":
		date, err := uc.clock.ParseDate("actual_delivery_date", in.ActualDeliveryDate)
		if err != nil {
			return nil, usecase.Fail(ctx, uc.notifier, err)
		}
		d.ActualDeliveryDate = &date
	case d.Status != entity.StatusDelivered || d.ActualDeliveryDate == nil:
		today := uc.clock.Today()
		d.ActualDeliveryDate = &today
	}
	switch {
	case in.ActualDeliveryTime != "":
		d.ActualDeliveryTime = in.ActualDeliveryTime
	case d.Status != entity.StatusDelivered || d.ActualDeliveryTime == "":
		d.ActualDeliveryTime = now.Format(dto.TimeLayout)
	}

	d.Signature = signature
	if in.Photos != nil {
		d.Photos = append([]string{}, in.Photos...)
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	d.Status = entity.StatusDelivered

	if err := uc.deliveries.Update(ctx, *d); err != nil {
		return nil, err
	}
	usecase.Notify(ctx, uc.notifier, "Entrega confirmada!", ports.NotifySuccess)
	return uc.respond(ctx, *d)
}

// RenderSignature convierte trazos en un data URL PNG.
func (uc *UseCase) RenderSignature(ctx context.Context, in dto.SignatureStrokesRequest) (*dto.SignatureResponse, error) {
	sig, err := uc.media.SignatureFromStrokes(in.Strokes, in.Width, in.Height)
	if err != nil {
		return nil, usecase.Fail(ctx, uc.notifier, err)
	}
	return &dto.SignatureResponse{Signature: sig}, nil
}

// AddPhotos procesa cada archivo subido y lo agrega a la entrega.
// Si algún archivo no es imagen no se agrega ninguno.
func (uc *UseCase) AddPhotos(ctx context.Context, id string, files [][]byte) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, usecase.Fail(ctx, uc.notifier, domain.Required("photos"))
	}
	photos := make([]string, 0, len(files))
	for i, f := range files {
		p, err := uc.media.PhotoFromUpload(f)
		if err != nil {
			return nil, usecase.Fail(ctx, uc.notifier, fmt.Errorf("foto %d: %w", i+1, err))
		}
		photos = append(photos, p)
	}
	d.Photos = append(d.Photos, photos...)
	if err := uc.deliveries.Update(ctx, *d); err != nil {
		return nil, err
	}
	return uc.respond(ctx, *d)
}

// RemovePhoto quita la foto en la posición index (base 0).
func (uc *UseCase) RemovePhoto(ctx context.Context, id string, index int) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.Photos) {
		return nil, domain.ErrNotFound
	}
	d.Photos = append(d.Photos[:index:index], d.Photos[index+1:]...)
	if err := uc.deliveries.Update(ctx, *d); err != nil {
		return nil, err
	}
	return uc.respond(ctx, *d)
}

func (uc *UseCase) signature(in dto.ConfirmDeliveryRequest) (string, error) {
	if sig := strings.TrimSpace(in.Signature); sig != "" {
		if !uc.media.IsImage(sig) {
			return "", fmt.Errorf("%w: la firma debe ser un data URL de imagen", domain.ErrInvalidImage)
		}
		return sig, nil
	}
	if len(in.Strokes) == 0 {
		return "", domain.ErrSignatureRequired
	}
	return uc.media.SignatureFromStrokes(in.Strokes, 0, 0)
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// SuggestedValue suma defaultValue × cantidad de las líneas que existen en el catálogo.
func SuggestedValue(lines []entity.DeliveryProduct, products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if p, ok := lookup.Find(products, l.ProductID); ok {
			total = total.Add(p.DefaultValue.Mul(l.Quantity))
		}
	}
	return total
}

func buildLines(in []dto.DeliveryProductRequest, products []entity.Product) ([]entity.DeliveryProduct, error) {
	lines := make([]entity.DeliveryProduct, 0, len(in))
	for i, r := range in {
		line := entity.DeliveryProduct{
			ProductID:     r.ProductID,
			ProductName:   strings.TrimSpace(r.ProductName),
			Description:   strings.TrimSpace(r.Description),
			Quantity:      r.Quantity,
			CompartmentID: r.CompartmentID,
		}
		if p, ok := lookup.Find(products, r.ProductID); ok {
			if line.ProductName == "" {
				line.ProductName = p.Name
			}
			if line.Description == "" {
				line.Description = p.Description
			}
		}
		if line.Quantity.IsNegative() {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("products[%d].quantity", i), Message: "no puede ser negativo"}
		}
		if line.Quantity.IsZero() {
			line.Quantity = decimal.NewFromInt(1)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func validate(clientName string, lines []entity.DeliveryProduct, driverID, vehicleID string) error {
	if err := usecase.RequireFields("client_name", clientName); err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.Required("products")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Description) == "" {
			return domain.Required(fmt.Sprintf("products[%d].description", i))
		}
	}
	return usecase.RequireFields("driver_id", driverID, "vehicle_id", vehicleID)
}

func sortByDateTime(list []entity.Delivery) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].DeliveryDate.Equal(list[j].DeliveryDate) {
			return list[i].DeliveryDate.Before(list[j].DeliveryDate)
		}
		return list[i].DeliveryTime < list[j].DeliveryTime
	})
}

type refs struct {
	products []entity.Product
	drivers  []entity.Driver
	vehicles []entity.Vehicle
}

func (uc *UseCase) loadRefs(ctx context.Context) (refs, error) {
	var r refs
	var err error
	if r.products, err = uc.products.List(ctx); err != nil {
		return r, err
	}
	if r.drivers, err = uc.drivers.List(ctx); err != nil {
		return r, err
	}
	if r.vehicles, err = uc.vehicles.List(ctx); err != nil {
		return r, err
	}
	return r, nil
}

func (uc *UseCase) respond(ctx context.Context, d entity.Delivery) (*dto.DeliveryResponse, error) {
	r, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(d, r)
	return &out, nil
}

func (uc *UseCase) toResponse(d entity.Delivery, r refs) dto.DeliveryResponse {
	out := dto.DeliveryResponse{
		ID:                 d.ID,
		ClientName:         d.ClientName,
		ClientDocument:     d.ClientDocument,
		ClientPhone:        d.ClientPhone,
		Address:            d.Address,
		Products:           make([]dto.DeliveryProductResponse, 0, len(d.Products)),
		DeliveryValue:      d.DeliveryValue,
		DeliveryDate:       uc.clock.FormatDate(d.DeliveryDate),
		DeliveryTime:       d.DeliveryTime,
		DriverID:           d.DriverID,
		Driver:             lookup.DriverName(r.drivers, d.DriverID),
		VehicleID:          d.VehicleID,
		Vehicle:            lookup.VehicleLabel(r.vehicles, d.VehicleID),
		Signature:          d.Signature,
		Photos:             d.Photos,
		Notes:              d.Notes,
		Status:             string(d.Status),
		ActualDeliveryTime: d.ActualDeliveryTime,
		CreatedAt:          d.CreatedAt,
	}
	if out.Photos == nil {
		out.Photos = []string{}
	}
	if d.ActualDeliveryDate != nil {
		out.ActualDeliveryDate = uc.clock.FormatDate(*d.ActualDeliveryDate)
	}
	for _, l := range d.Products {
		pr := dto.DeliveryProductResponse{
			ProductID:     l.ProductID,
			ProductName:   lookup.LineName(r.products, l),
			Description:   l.Description,
			Quantity:      l.Quantity,
			CompartmentID: l.CompartmentID,
		}
		if l.CompartmentID != "" {
			pr.Compartment = lookup.CompartmentName(r.vehicles, d.VehicleID, l.CompartmentID)
		}
		out.Products = append(out.Products, pr)
	}
	return out
}
