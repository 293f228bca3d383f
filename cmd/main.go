package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"autorent/config"
	"autorent/pkg/bot"
	"autorent/pkg/logger"
	"autorent/service"
	"autorent/storage"
	"autorent/storage/memory"
	"autorent/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName)

	var stg storage.IStorage
	if cfg.StorageDriver == "memory" {
		log.Warning("using in-memory storage, data is lost on shutdown")
		stg = memory.New(log)
	} else {
		pgStore, err := postgres.New(context.Background(), cfg, log)
		if err != nil {
			log.Error("failed to connect to postgres", logger.Error(err))
			os.Exit(1)
		}
		stg = pgStore
	}
	defer stg.Close()

	svc := service.New(stg, log)

	deskBot, err := bot.New(&cfg, svc, log)
	if err != nil {
		log.Error("failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go deskBot.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down")
}
