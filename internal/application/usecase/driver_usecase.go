package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para motoristas.
type DriverUseCase struct {
	repo     repository.DriverRepository
	vehicles repository.VehicleRepository
	notifier ports.Notifier
	clock    Clock
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository, vehicles repository.VehicleRepository, notifier ports.Notifier, clock Clock) *DriverUseCase {
	return &DriverUseCase{repo: repo, vehicles: vehicles, notifier: notifier, clock: clock}
}

// Create registra un motorista. El vehículo principal es opcional y no se valida.
func (uc *DriverUseCase) Create(ctx context.Context, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if err := RequireFields("name", in.Name); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	driver := entity.Driver{
		ID:            NewID(),
		Name:          strings.TrimSpace(in.Name),
		MainVehicleID: in.MainVehicleID,
		CreatedAt:     uc.clock.Time(),
	}
	if err := uc.repo.Create(ctx, driver); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Motorista cadastrado", ports.NotifySuccess)
	return uc.respond(ctx, driver)
}

// GetByID obtiene un motorista por ID.
func (uc *DriverUseCase) GetByID(ctx context.Context, id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(ctx, *driver)
}

// Update actualiza nombre y/o vehículo principal.
func (uc *DriverUseCase) Update(ctx context.Context, id string, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		driver.Name = strings.TrimSpace(*in.Name)
	}
	if in.MainVehicleID != nil {
		driver.MainVehicleID = *in.MainVehicleID
	}
	if err := RequireFields("name", driver.Name); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if err := uc.repo.Update(ctx, *driver); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Motorista atualizado", ports.NotifySuccess)
	return uc.respond(ctx, *driver)
}

// List lista los motoristas ordenados por nombre, con el vehículo principal resuelto.
func (uc *DriverUseCase) List(ctx context.Context) ([]dto.DriverResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := uc.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(list, func(d entity.Driver) string { return d.Name })
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDriverResponse(d, vehicles))
	}
	return items, nil
}

// Delete elimina un motorista; las entregas que lo referencian muestran "Motorista não encontrado".
func (uc *DriverUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	Notify(ctx, uc.notifier, "O motorista foi removido com sucesso.", ports.NotifySuccess)
	return nil
}

func (uc *DriverUseCase) respond(ctx context.Context, d entity.Driver) (*dto.DriverResponse, error) {
	vehicles, err := uc.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := toDriverResponse(d, vehicles)
	return &out, nil
}

func toDriverResponse(d entity.Driver, vehicles []entity.Vehicle) dto.DriverResponse {
	out := dto.DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		MainVehicleID: d.MainVehicleID,
		CreatedAt:     d.CreatedAt,
	}
	if d.MainVehicleID != "" {
		out.MainVehicle = lookup.VehicleLabel(vehicles, d.MainVehicleID)
	}
	return out
}
