package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rental-server/confs"
	"rental-server/db"
	"rental-server/entities"
	"rental-server/events"
	"rental-server/logging"
	"rental-server/repositories"
	"rental-server/server"
	"rental-server/usecases"
	"rental-server/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	slog.SetDefault(log)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *confs.Config, log *slog.Logger) error {
	properties, users, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	manager := ws.NewManager()
	publisher := events.Multi{manager}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publisher = append(publisher, amqpPublisher)
		log.Info("publishing listing events", "exchange", cfg.AMQP.Exchange)
	}

	srv := server.NewServer(server.Options{
		Properties:   usecases.NewPropertyUseCase(properties, users, publisher, log),
		Users:        usecases.NewUserUseCase(users, properties),
		Manager:      manager,
		JWTSecret:    []byte(cfg.JWTSecret),
		AllowOrigins: cfg.AllowOrigins,
		Log:          log,
	})
	return srv.Run(ctx, ":"+cfg.Port)
}

func openStore(ctx context.Context, cfg *confs.Config, log *slog.Logger) (repositories.PropertyRepository, repositories.UserRepository, func(), error) {
	switch cfg.Store {
	case confs.StoreMemory:
		store := repositories.NewMemoryStore()
		if cfg.SeedUsers != "" {
			n, err := seedUsers(store, cfg.SeedUsers)
			if err != nil {
				return nil, nil, nil, err
			}
			log.Info("seeded memory store", "users", n)
		}
		log.Warn("using in-memory store; data is lost on exit")
		return store.Properties(), store.Users(), func() {}, nil
	case confs.StorePostgres:
		database, err := db.Connect(cfg.Database, log)
		if err != nil {
			return nil, nil, nil, err
		}
		closeStore := func() {
			if c, ok := database.(io.Closer); ok {
				_ = c.Close()
			}
		}
		return repositories.NewPropertyPgRepository(database), repositories.NewUserPgRepository(database), closeStore, nil
	default:
		store, err := db.ConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, nil, nil, err
		}
		closeStore := func() { _ = store.Close(context.Background()) }
		return repositories.NewPropertyMongoRepository(store.Properties), repositories.NewUserMongoRepository(store.Users), closeStore, nil
	}
}

func seedUsers(store *repositories.MemoryStore, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed users: %w", err)
	}
	var users []entities.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return 0, fmt.Errorf("parse seed users: %w", err)
	}
	for _, u := range users {
		store.AddUser(u)
	}
	return len(users), nil
}
