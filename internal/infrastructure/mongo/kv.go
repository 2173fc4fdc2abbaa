// Package mongo implementa el almacén de registros sobre MongoDB: un documento por colección.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

var _ repository.KeyValueStore = (*KV)(nil)

const collectionName = "records"

type record struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KV documentos {_id: clave, value, updated_at} en la colección records.
type KV struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open conecta al URI configurado y verifica con Ping.
func Open(ctx context.Context, cfg config.MongoConfig) (*KV, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: conectar: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return &KV{client: client, coll: client.Database(cfg.Database).Collection(collectionName)}, nil
}

// New usa una colección ya abierta; Close no desconecta nada.
func New(coll *mongo.Collection) *KV {
	return &KV{coll: coll}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo: get %s: %w", key, err)
	}
	return rec.Value, true, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: set %s: %w", key, err)
	}
	return nil
}

// Close desconecta el cliente.
func (s *KV) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
