package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para vehículos y sus compartimentos.
type VehicleUseCase struct {
	repo     repository.VehicleRepository
	products repository.ProductRepository
	notifier ports.Notifier
	clock    Clock
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, products repository.ProductRepository, notifier ports.Notifier, clock Clock) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, products: products, notifier: notifier, clock: clock}
}

// Create registra un vehículo. Nombre y placa son obligatorios; la placa se guarda en mayúsculas.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := RequireFields("name", in.Name, "plate", in.Plate); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	compartments, err := toCompartments(in.Compartments)
	if err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	vehicle := entity.Vehicle{
		ID:                NewID(),
		Name:              strings.TrimSpace(in.Name),
		Model:             in.Model,
		Plate:             normalizePlate(in.Plate),
		FuelTankCapacity:  in.FuelTankCapacity,
		TransportCapacity: in.TransportCapacity,
		Compartments:      compartments,
		CreatedAt:         uc.clock.Time(),
	}
	if err := uc.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Veículo cadastrado", ports.NotifySuccess)
	return uc.respond(ctx, vehicle)
}

// GetByID obtiene un vehículo por ID.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, *vehicle)
}

// Update actualiza los campos enviados. Compartments != nil reemplaza la lista completa;
// los compartimentos con el mismo nombre conservan su ID.
func (uc *VehicleUseCase) Update(ctx context.Context, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		vehicle.Name = strings.TrimSpace(*in.Name)
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.Plate != nil {
		vehicle.Plate = normalizePlate(*in.Plate)
	}
	if in.FuelTankCapacity != nil {
		vehicle.FuelTankCapacity = *in.FuelTankCapacity
	}
	if in.TransportCapacity != nil {
		vehicle.TransportCapacity = *in.TransportCapacity
	}
	if in.Compartments != nil {
		compartments, err := toCompartments(in.Compartments)
		if err != nil {
			return nil, Fail(ctx, uc.notifier, err)
		}
		vehicle.Compartments = keepCompartmentIDs(vehicle.Compartments, compartments)
	}
	if err := RequireFields("name", vehicle.Name, "plate", vehicle.Plate); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if err := uc.repo.Update(ctx, *vehicle); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Veículo atualizado", ports.NotifySuccess)
	return uc.respond(ctx, *vehicle)
}

// List lista los vehículos ordenados por nombre.
func (uc *VehicleUseCase) List(ctx context.Context) ([]dto.VehicleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(list, func(v entity.Vehicle) string { return v.Name })
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, toVehicleResponse(v, products))
	}
	return items, nil
}

// Delete elimina un vehículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	Notify(ctx, uc.notifier, "O veículo foi removido com sucesso.", ports.NotifySuccess)
	return nil
}

// AddCompartment agrega un compartimento al final de la lista.
func (uc *VehicleUseCase) AddCompartment(ctx context.Context, vehicleID string, in dto.CompartmentRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	c, err := toCompartment(in)
	if err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	vehicle.Compartments = append(vehicle.Compartments, c)
	return uc.save(ctx, *vehicle)
}

// UpdateCompartment reemplaza los datos de un compartimento conservando su ID y posición.
func (uc *VehicleUseCase) UpdateCompartment(ctx context.Context, vehicleID, compartmentID string, in dto.CompartmentRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	c, err := toCompartment(in)
	if err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	idx := compartmentIndex(vehicle.Compartments, compartmentID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	c.ID = compartmentID
	vehicle.Compartments[idx] = c
	return uc.save(ctx, *vehicle)
}

// RemoveCompartment quita un compartimento del vehículo.
func (uc *VehicleUseCase) RemoveCompartment(ctx context.Context, vehicleID, compartmentID string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	idx := compartmentIndex(vehicle.Compartments, compartmentID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	vehicle.Compartments = append(vehicle.Compartments[:idx], vehicle.Compartments[idx+1:]...)
	return uc.save(ctx, *vehicle)
}

func (uc *VehicleUseCase) get(ctx context.Context, id string) (*entity.Vehicle, error) {
	vehicle, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return vehicle, nil
}

func (uc *VehicleUseCase) save(ctx context.Context, v entity.Vehicle) (*dto.VehicleResponse, error) {
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Veículo atualizado", ports.NotifySuccess)
	return uc.respond(ctx, v)
}

func (uc *VehicleUseCase) respond(ctx context.Context, v entity.Vehicle) (*dto.VehicleResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := toVehicleResponse(v, products)
	return &out, nil
}

func normalizePlate(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func toCompartment(in dto.CompartmentRequest) (entity.Compartment, error) {
	if blank(in.Name) {
		return entity.Compartment{}, domain.Required("compartments.name")
	}
	if in.Capacity.IsNegative() {
		return entity.Compartment{}, &domain.ValidationError{Field: "compartments.capacity", Message: "no puede ser negativo"}
	}
	return entity.Compartment{
		ID:               NewID(),
		Name:             strings.TrimSpace(in.Name),
		Capacity:         in.Capacity,
		CurrentProductID: in.CurrentProductID,
		CurrentQuantity:  in.CurrentQuantity,
	}, nil
}

func toCompartments(in []dto.CompartmentRequest) ([]entity.Compartment, error) {
	out := make([]entity.Compartment, 0, len(in))
	for _, c := range in {
		comp, err := toCompartment(c)
		if err != nil {
			return nil, err
		}
		out = append(out, comp)
	}
	return out, nil
}

// keepCompartmentIDs reutiliza el ID del compartimento anterior con el mismo nombre,
// para no romper las líneas de entrega que lo referencian.
func keepCompartmentIDs(prev, next []entity.Compartment) []entity.Compartment {
	byName := make(map[string]string, len(prev))
	for _, c := range prev {
		byName[c.Name] = c.ID
	}
	for i := range next {
		if id, ok := byName[next[i].Name]; ok {
			next[i].ID = id
			delete(byName, next[i].Name)
		}
	}
	return next
}

func compartmentIndex(list []entity.Compartment, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// capacity suma la capacidad de todos los compartimentos.
func capacity(v entity.Vehicle) decimal.Decimal {
	total := decimal.Zero
	for _, c := range v.Compartments {
		total = total.Add(c.Capacity)
	}
	return total
}

func toVehicleResponse(v entity.Vehicle, products []entity.Product) dto.VehicleResponse {
	out := dto.VehicleResponse{
		ID:                v.ID,
		Name:              v.Name,
		Model:             v.Model,
		Plate:             v.Plate,
		FuelTankCapacity:  v.FuelTankCapacity,
		TransportCapacity: v.TransportCapacity,
		CompartmentTotal:  capacity(v),
		Compartments:      make([]dto.CompartmentResponse, 0, len(v.Compartments)),
		CreatedAt:         v.CreatedAt,
	}
	for _, c := range v.Compartments {
		cr := dto.CompartmentResponse{
			ID:               c.ID,
			Name:             c.Name,
			Capacity:         c.Capacity,
			CurrentProductID: c.CurrentProductID,
			CurrentQuantity:  c.CurrentQuantity,
		}
		if c.CurrentProductID != "" {
			cr.CurrentProduct = lookup.ProductName(products, c.CurrentProductID)
		}
		out.Compartments = append(out.Compartments, cr)
	}
	return out
}
