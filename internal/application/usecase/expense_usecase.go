package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

// ExpenseCategoryUseCase casos de uso CRUD para categorías de gasto.
type ExpenseCategoryUseCase struct {
	repo     repository.ExpenseCategoryRepository
	notifier ports.Notifier
	clock    Clock
}

// NewExpenseCategoryUseCase construye el caso de uso.
func NewExpenseCategoryUseCase(repo repository.ExpenseCategoryRepository, notifier ports.Notifier, clock Clock) *ExpenseCategoryUseCase {
	return &ExpenseCategoryUseCase{repo: repo, notifier: notifier, clock: clock}
}

// Create registra una categoría.
func (uc *ExpenseCategoryUseCase) Create(ctx context.Context, in dto.CreateExpenseCategoryRequest) (*dto.ExpenseCategoryResponse, error) {
	if err := RequireFields("name", in.Name); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	cat := entity.ExpenseCategory{
		ID:          NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   uc.clock.Time(),
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Categoria cadastrada", ports.NotifySuccess)
	return toCategoryResponse(cat), nil
}

// GetByID obtiene una categoría.
func (uc *ExpenseCategoryUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseCategoryResponse, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(*cat), nil
}

// Update actualiza nombre y/o descripción.
func (uc *ExpenseCategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseCategoryRequest) (*dto.ExpenseCategoryResponse, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		cat.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if err := RequireFields("name", cat.Name); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if err := uc.repo.Update(ctx, *cat); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Categoria atualizada", ports.NotifySuccess)
	return toCategoryResponse(*cat), nil
}

// List lista las categorías por nombre.
func (uc *ExpenseCategoryUseCase) List(ctx context.Context) ([]dto.ExpenseCategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(list, func(c entity.ExpenseCategory) string { return c.Name })
	items := make([]dto.ExpenseCategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Delete elimina una categoría. Los gastos que la usan pasan a "Categoria não encontrada".
func (uc *ExpenseCategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	Notify(ctx, uc.notifier, "A categoria foi removida com sucesso.", ports.NotifySuccess)
	return nil
}

func toCategoryResponse(c entity.ExpenseCategory) *dto.ExpenseCategoryResponse {
	return &dto.ExpenseCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ExpenseUseCase casos de uso CRUD para gastos.
type ExpenseUseCase struct {
	repo       repository.ExpenseRepository
	categories repository.ExpenseCategoryRepository
	notifier   ports.Notifier
	clock      Clock
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	repo repository.ExpenseRepository,
	categories repository.ExpenseCategoryRepository,
	notifier ports.Notifier,
	clock Clock,
) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, categories: categories, notifier: notifier, clock: clock}
}

// Create registra un gasto. Sin fecha se usa hoy; la categoría no se valida contra el catálogo.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := RequireFields("name", in.Name, "category_id", in.CategoryID); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if in.Value.IsNegative() {
		return nil, Fail(ctx, uc.notifier, &domain.ValidationError{Field: "value", Message: "no puede ser negativo"})
	}
	date, err := uc.clock.ParseDate("date", in.Date)
	if err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	expense := entity.Expense{
		ID:         NewID(),
		Name:       strings.TrimSpace(in.Name),
		Value:      in.Value,
		CategoryID: in.CategoryID,
		Date:       date,
		Notes:      in.Notes,
		CreatedAt:  uc.clock.Time(),
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Despesa cadastrada", ports.NotifySuccess)
	return uc.respond(ctx, expense)
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(ctx, *expense)
}

// Update actualiza los campos enviados.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		expense.Name = strings.TrimSpace(*in.Name)
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, Fail(ctx, uc.notifier, &domain.ValidationError{Field: "value", Message: "no puede ser negativo"})
		}
		expense.Value = *in.Value
	}
	if in.CategoryID != nil {
		expense.CategoryID = *in.CategoryID
	}
	if in.Date != nil {
		date, err := uc.clock.ParseDate("date", *in.Date)
		if err != nil {
			return nil, Fail(ctx, uc.notifier, err)
		}
		expense.Date = date
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	if err := RequireFields("name", expense.Name, "category_id", expense.CategoryID); err != nil {
		return nil, Fail(ctx, uc.notifier, err)
	}
	if err := uc.repo.Update(ctx, *expense); err != nil {
		return nil, err
	}
	Notify(ctx, uc.notifier, "Despesa atualizada", ports.NotifySuccess)
	return uc.respond(ctx, *expense)
}

// List lista los gastos del más reciente al más antiguo.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, uc.toResponse(e, categories))
	}
	return items, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	Notify(ctx, uc.notifier, "A despesa foi removida com sucesso.", ports.NotifySuccess)
	return nil
}

func (uc *ExpenseUseCase) respond(ctx context.Context, e entity.Expense) (*dto.ExpenseResponse, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(e, categories)
	return &out, nil
}

func (uc *ExpenseUseCase) toResponse(e entity.Expense, categories []entity.ExpenseCategory) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:         e.ID,
		Name:       e.Name,
		Value:      e.Value,
		CategoryID: e.CategoryID,
		Category:   lookup.CategoryName(categories, e.CategoryID),
		Date:       uc.clock.FormatDate(e.Date),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}
