package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KV)(nil)

// Querier abstrae pool o tx para ejecutar consultas.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KV implementación del puerto KeyValueStore sobre PostgreSQL (una fila por colección).
type KV struct {
	q Querier
}

// NewKV construye el adaptador. Pasar pool o tx (Querier).
func NewKV(q Querier) *KV {
	return &KV{q: q}
}

// Migrate crea la tabla records si no existe.
func (r *KV) Migrate(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear tabla records: %w", err)
	}
	return nil
}

// Get obtiene el valor serializado de una clave.
func (r *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRow(ctx, `SELECT value FROM records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select record %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor completo de la clave.
func (r *KV) Set(ctx context.Context, key, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", key, err)
	}
	return nil
}
