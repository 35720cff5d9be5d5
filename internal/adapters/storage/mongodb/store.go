package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	animalsColl      = "animal"
	vaccinesColl     = "vacuna"
	applicationsColl = "vacunas_animales"
)

// Store agrupa el cliente y la base; los repos comparten la misma conexión.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre el cliente, verifica con Ping y asegura los índices.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(animalsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "codigo_animal", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create animal code index: %w", err)
	}

	_, err = s.db.Collection(applicationsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id_animal", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create application index: %w", err)
	}
	return nil
}

func (s *Store) Animals() *AnimalsRepo {
	return &AnimalsRepo{coll: s.db.Collection(animalsColl), now: timeNow}
}

func (s *Store) Vaccines() *VaccinesRepo {
	return &VaccinesRepo{
		vaccines: s.db.Collection(vaccinesColl),
		apps:     s.db.Collection(applicationsColl),
	}
}

// Close cierra la conexión.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
