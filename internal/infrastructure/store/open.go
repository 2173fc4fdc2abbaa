package store

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/mongo"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/redis"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open construye el backend indicado por STORE_DRIVER. El Closer libera la conexión.
func Open(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, io.Closer, error) {
	switch cfg.Store.Driver {
	case "memory":
		return NewMemory(), closerFunc(func() error { return nil }), nil
	case "sqlite":
		kv, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		kv := postgres.NewKV(pool)
		if err := kv.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, closerFunc(func() error { pool.Close(); return nil }), nil
	case "redis":
		kv, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	case "mongo":
		kv, err := mongo.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	default:
		return nil, nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
	}
}

// Collections agrupa los repositorios de las seis colecciones sobre un mismo backend.
type Collections struct {
	Deliveries        *Collection[entity.Delivery]
	Products          *Collection[entity.Product]
	Drivers           *Collection[entity.Driver]
	Vehicles          *Collection[entity.Vehicle]
	Expenses          *Collection[entity.Expense]
	ExpenseCategories *Collection[entity.ExpenseCategory]
}

// NewCollections construye los repositorios con las claves estándar.
func NewCollections(kv repository.KeyValueStore, namespace string) *Collections {
	return &Collections{
		Deliveries:        NewCollection[entity.Delivery](kv, namespace, entity.KeyDeliveries),
		Products:          NewCollection[entity.Product](kv, namespace, entity.KeyProducts),
		Drivers:           NewCollection[entity.Driver](kv, namespace, entity.KeyDrivers),
		Vehicles:          NewCollection[entity.Vehicle](kv, namespace, entity.KeyVehicles),
		Expenses:          NewCollection[entity.Expense](kv, namespace, entity.KeyExpenses),
		ExpenseCategories: NewCollection[entity.ExpenseCategory](kv, namespace, entity.KeyExpenseCategories),
	}
}
