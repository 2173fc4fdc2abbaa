// Package store implementa el almacén de registros: una lista JSON por clave con nombre,
// recargada y reescrita completa en cada mutación, sobre cualquier repository.KeyValueStore.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*Collection[entity.Product])(nil)
var _ repository.DeliveryRepository = (*Collection[entity.Delivery])(nil)

// Collection dueño de la copia canónica de una colección. Las fechas viajan como ISO-8601
// (time.Time se serializa en RFC 3339) y se reviven al cargar.
type Collection[T entity.Record] struct {
	kv  repository.KeyValueStore
	key string

	mu    sync.Mutex
	items []T
}

// NewCollection construye el repositorio de una clave. namespace se antepone a la clave si no está vacío.
func NewCollection[T entity.Record](kv repository.KeyValueStore, namespace, key string) *Collection[T] {
	if namespace != "" {
		key = namespace + ":" + key
	}
	return &Collection[T]{kv: kv, key: key}
}

// Key devuelve la clave persistida.
func (c *Collection[T]) Key() string { return c.key }

// Load lee y parsea la lista persistida. Una clave ausente es una colección vacía.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return clone(c.items), nil
}

// Save serializa la lista completa y reemplaza el valor persistido.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flush(ctx, clone(items))
}

// List devuelve una copia de todos los registros.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Load(ctx)
}

// GetByID busca por ID; (nil, nil) si no existe.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].RecordID() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Create agrega el registro al final y persiste.
func (c *Collection[T]) Create(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Update reemplaza el registro con el mismo ID en su posición y persiste.
func (c *Collection[T]) Update(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].RecordID() == item.RecordID() {
				items[i] = item
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// Delete elimina el registro y persiste.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		out := make([]T, 0, len(items))
		for _, it := range items {
			if it.RecordID() != id {
				out = append(out, it)
			}
		}
		if len(out) == len(items) {
			return nil, domain.ErrNotFound
		}
		return out, nil
	})
}

func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return err
	}
	next, err := fn(clone(c.items))
	if err != nil {
		return err
	}
	return c.flush(ctx, next)
}

func (c *Collection[T]) refresh(ctx context.Context) error {
	raw, found, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("store: leer %s: %w", c.key, err)
	}
	if !found || raw == "" {
		c.items = nil
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("store: parsear %s: %w", c.key, err)
	}
	c.items = items
	return nil
}

func (c *Collection[T]) flush(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: serializar %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, string(raw)); err != nil {
		return fmt.Errorf("store: escribir %s: %w", c.key, err)
	}
	c.items = items
	return nil
}

func clone[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
