package store_test

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/store"
)

func sampleDelivery() entity.Delivery {
	actual := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	return entity.Delivery{
		ID:             "0190a1b2-0000-7000-8000-000000000001",
		ClientName:     "Mercado, São José", // contiene el separador CSV
		ClientDocument: "123.456.789-00",
		ClientPhone:    "+55 11 99999-0000",
		Address:        "Rua A, 10",
		Products: []entity.DeliveryProduct{
			{ProductID: "p1", ProductName: "Gás P13", Description: "Botijão", Quantity: decimal.NewFromInt(2), CompartmentID: "c1"},
		},
		DeliveryValue:      decimal.RequireFromString("250.75"),
		DeliveryDate:       time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		DeliveryTime:       "09:30",
		DriverID:           "d1",
		VehicleID:          "v1",
		Signature:          "data:image/png;base64,iVBORw0KGgo=",
		Photos:             []string{"data:image/jpeg;base64,/9j/4AAQ"},
		Notes:              "portão azul",
		Status:             entity.StatusDelivered,
		ActualDeliveryDate: &actual,
		ActualDeliveryTime: "10:05",
		CreatedAt:          time.Date(2026, time.March, 1, 12, 0, 0, 123000000, time.UTC),
	}
}

func TestCollection_RoundTripPreservesEveryField(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[entity.Delivery](store.NewMemory(), "", entity.KeyDeliveries)
	want := []entity.Delivery{sampleDelivery()}

	require.NoError(t, coll.Save(ctx, want))
	got, err := coll.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip (-want +got):\n%s", diff)
	}
}

func TestCollection_RoundTripVehicleWithCompartments(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[entity.Vehicle](store.NewMemory(), "tenant", entity.KeyVehicles)
	qty := decimal.NewFromInt(40)
	want := []entity.Vehicle{{
		ID: "v1", Name: "Truck", Model: "VW 24.280", Plate: "ABC1D23",
		FuelTankCapacity: decimal.NewFromInt(275), TransportCapacity: decimal.NewFromInt(12000),
		Compartments: []entity.Compartment{
			{ID: "c1", Name: "Frente", Capacity: decimal.NewFromInt(60), CurrentProductID: "p1", CurrentQuantity: &qty},
			{ID: "c2", Name: "Fundo", Capacity: decimal.NewFromInt(60)},
		},
		CreatedAt: time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
	}}

	require.NoError(t, coll.Save(ctx, want))
	got, err := coll.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "tenant:vehicles", coll.Key())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip (-want +got):\n%s", diff)
	}
}

func roundTrip[T entity.Record](t *testing.T, key string, want []T) []T {
	t.Helper()
	ctx := context.Background()
	coll := store.NewCollection[T](store.NewMemory(), "", key)

	require.NoError(t, coll.Save(ctx, want))
	got, err := coll.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("%s round-trip (-want +got):\n%s", key, diff)
	}
	return got
}

func TestCollection_RoundTripRemainingCollections(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	midnight := time.Date(2026, time.March, 10, 0, 0, 0, 0, sp)
	created := time.Date(2026, time.March, 9, 18, 30, 15, 250000000, sp)

	t.Run("products", func(t *testing.T) {
		roundTrip(t, entity.KeyProducts, []entity.Product{
			{ID: "p1", Name: "Gás P13", Description: "Botijão 13kg", Category: "gás", DefaultValue: decimal.RequireFromString("110.50"), CreatedAt: created},
			{ID: "p2", Name: "Água 20L", CreatedAt: created},
		})
	})

	t.Run("drivers", func(t *testing.T) {
		roundTrip(t, entity.KeyDrivers, []entity.Driver{
			{ID: "d1", Name: "João", MainVehicleID: "v1", CreatedAt: created},
			{ID: "d2", Name: "Ana", CreatedAt: created},
		})
	})

	t.Run("expense categories", func(t *testing.T) {
		roundTrip(t, entity.KeyExpenseCategories, []entity.ExpenseCategory{
			{ID: "c1", Name: "Combustível", Description: "diesel e arla", CreatedAt: created},
			{ID: "c2", Name: "Pedágio", CreatedAt: created},
		})
	})

	t.Run("expenses", func(t *testing.T) {
		got := roundTrip(t, entity.KeyExpenses, []entity.Expense{
			{ID: "e1", Name: "Diesel", Value: decimal.RequireFromString("480.35"), CategoryID: "c1", Date: midnight, Notes: "posto, km 12", CreatedAt: created},
			{ID: "e2", Name: "Pedágio", Value: decimal.NewFromInt(12), CategoryID: "c2", Date: midnight.AddDate(0, 0, -6), CreatedAt: created},
		})
		day := got[0].Date.In(sp)
		assert.Equal(t, "2026-03-10", day.Format("2006-01-02"))
		assert.Zero(t, day.Hour(), "la fecha revive como medianoche local")
	})
}

func TestCollection_MissingKeyIsEmpty(t *testing.T) {
	coll := store.NewCollection[entity.Product](store.NewMemory(), "", entity.KeyProducts)

	items, err := coll.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestCollection_MalformedTextIsAnError(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, entity.KeyProducts, "{no es json"))
	coll := store.NewCollection[entity.Product](mem, "", entity.KeyProducts)

	_, err := coll.Load(ctx)
	assert.Error(t, err)
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	coll := store.NewCollection[entity.Driver](store.NewMemory(), "", entity.KeyDrivers)

	require.NoError(t, coll.Create(ctx, entity.Driver{ID: "1", Name: "Ana"}))
	require.NoError(t, coll.Create(ctx, entity.Driver{ID: "2", Name: "Bruno"}))
	require.NoError(t, coll.Update(ctx, entity.Driver{ID: "1", Name: "Ana Maria"}))

	got, err := coll.GetByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana Maria", got.Name)

	require.NoError(t, coll.Delete(ctx, "1"))
	items, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID, "el orden de inserción se mantiene")

	missing, err := coll.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, coll.Update(ctx, entity.Driver{ID: "9"}), domain.ErrNotFound)
	assert.ErrorIs(t, coll.Delete(ctx, "9"), domain.ErrNotFound)
}

func TestCollection_ReloadsFromBackendOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	a := store.NewCollection[entity.Product](mem, "", entity.KeyProducts)
	b := store.NewCollection[entity.Product](mem, "", entity.KeyProducts)

	require.NoError(t, a.Create(ctx, entity.Product{ID: "1", Name: "Gás"}))
	require.NoError(t, b.Create(ctx, entity.Product{ID: "2", Name: "Água"}))

	items, err := a.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
