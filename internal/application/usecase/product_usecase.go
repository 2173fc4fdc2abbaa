package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de productos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier ports.Notifier
	clock    Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notifier ports.Notifier, clock Clock) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier, clock: clock}
}

// Create crea un nuevo producto. Nombre y descripción son obligatorios.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := RequireFields("name", in.Name, "description", in.Description); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if in.DefaultValue.IsNegative() {
		return nil, Fail(ctx, uc.notifier, &domain.ValidationError{Field: "default_value", Message: "no puede ser negativo"})
	}
	product := entity.Product{
		ID:           NewID(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     in.Category,
		DefaultValue: in.DefaultValue,
		CreatedAt:    uc.clock.Time(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Produto cadastrado", ports.NotifySuccess)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(*product), nil
}

// Update actualiza los campos enviados; los nil no se tocan.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.DefaultValue != nil {
		if in.DefaultValue.IsNegative() {
			return nil, Fail(ctx, uc.notifier, &domain.ValidationError{Field: "default_value", Message: "no puede ser negativo"})
		}
		product.DefaultValue = *in.DefaultValue
	}
	if err := RequireFields("name", product.Name, "description", product.Description); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if err := uc.repo.Update(ctx, *product); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Produto atualizado", ports.NotifySuccess)
	return toProductResponse(*product), nil
}

// List lista todos los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(list, func(p entity.Product) string { return p.Name })
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. Las entregas que lo referencian conservan el nombre copiado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	Notify(ctx, uc.notifier, "O produto foi removido com sucesso.", ports.NotifySuccess)
	return nil
}

func toProductResponse(p entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		DefaultValue: p.DefaultValue,
		CreatedAt:    p.CreatedAt,
	}
}
