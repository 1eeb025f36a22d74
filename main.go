package main

import (
	"log"

	"ClassVault/config"
	"ClassVault/internal/handler"
	"ClassVault/internal/mq"
	"ClassVault/internal/repo"
	"ClassVault/internal/service"
	"ClassVault/internal/storage"
	"ClassVault/internal/store"
	"ClassVault/router"
)

// main wires the services and starts the HTTP server. The record store and
// blob store are constructed once here and injected everywhere.
func main() {
	config.InitConfig()
	cfg := &config.AppConfig

	recordStore := store.Open(cfg)
	defer recordStore.Close()

	blobs, err := storage.Open(cfg)
	if err != nil {
		log.Fatal("init blob storage fail: ", err)
	}

	events, err := mq.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("audit publisher unavailable: %v", err)
	}
	defer events.Close()

	throttle := repo.NewLoginThrottle(repo.InitRedis(cfg))

	assignments := service.NewAssignmentService(recordStore, events)
	auth := service.NewAuthService(recordStore, cfg)
	files := service.NewFileService(recordStore, blobs, assignments, events, cfg)

	h := handler.New(auth, files, assignments, throttle, events, cfg.AdminSecret)

	r := router.InitRouter(h)
	if err := r.Run(":8000"); err != nil {
		log.Fatal("server stopped: ", err)
	}
}
