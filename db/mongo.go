package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rental-server/confs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore holds the listing collections.
type MongoStore struct {
	Client     *mongo.Client
	Properties *mongo.Collection
	Users      *mongo.Collection
}

func ConnectMongo(ctx context.Context, cfg confs.MongoConfig, log *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	log.Info("mongo connection established", "database", cfg.Database)

	database := client.Database(cfg.Database)
	store := &MongoStore{
		Client:     client,
		Properties: database.Collection(cfg.PropertiesCollection),
		Users:      database.Collection(cfg.UsersCollection),
	}

	_, err = store.Properties.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isAvailable", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "agent", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create property indexes: %w", err)
	}
	return store, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
