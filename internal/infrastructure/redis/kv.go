// Package redis implementa el almacén de registros sobre Redis (GET/SET sin expiración).
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

var _ repository.KeyValueStore = (*KV)(nil)

// KV una clave Redis por colección.
type KV struct {
	rdb *goredis.Client
}

// Open conecta y verifica con PING.
func Open(ctx context.Context, cfg config.RedisConfig) (*KV, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return &KV{rdb: rdb}, nil
}

// New envuelve un cliente ya construido.
func New(rdb *goredis.Client) *KV {
	return &KV{rdb: rdb}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente.
func (s *KV) Close() error {
	return s.rdb.Close()
}
