package main

import (
	"log"
	"time"

	"social-media-api/internal/server"
	"social-media-api/internal/service"
	"social-media-api/internal/storage"
	"social-media-api/internal/storage/memstore"

	"github.com/caarlos0/env/v6"
	"go.uber.org/zap"
)

type envConfig struct {
	Server  server.EnvConfig
	Storage storage.Config
	Driver  string `env:"STORAGE_DRIVER" envDefault:"postgres"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("zap.NewDevelopment: %v", err)
	}
	defer logger.Sync()

	sugar := logger.Sugar()
	sugar.Info("Application is starting")

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		sugar.Fatalf("Cannot parse env config: %v", err)
	}

	var (
		accounts   service.AccountStore
		messages   service.MessageStore
		closeStore func()
	)

	switch cfg.Driver {
	case "postgres":
		store, err := storage.New(sugar, cfg.Storage, storage.ConnectionTimeout(30*time.Second))
		if err != nil {
			sugar.Fatalf("Cannot create Store instance: %v", err)
		}
		accounts, messages = store, store
		closeStore = store.Close
	case "memory":
		store := memstore.New()
		accounts, messages = store, store
		closeStore = func() {}
	default:
		sugar.Fatalf("Unknown STORAGE_DRIVER %q", cfg.Driver)
	}

	accountService := service.NewAccountService(sugar, accounts)
	messageService := service.NewMessageService(sugar, messages, accounts)

	serverOpts := []server.Option{
		server.WithEnvConfig(cfg.Server),
		server.ReadTimeout(5 * time.Second),
		server.RegisterAfterShutdown(func() {
			sugar.Info("Closing store")
			closeStore()
			sugar.Info("Store is closed")
		}),
	}

	srv, err := server.NewServer(logger, accountService, messageService, serverOpts...)
	if err != nil {
		sugar.Fatalf("Cannot create Server instance: %v", err)
	}

	if err := srv.Start(); err != nil {
		sugar.Fatalf("Cannot start http server: %v", err)
	}
}
