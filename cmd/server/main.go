package main

import (
	"log"

	"github.com/fitlog/internal/config"
	"github.com/fitlog/internal/db"
	"github.com/fitlog/internal/router"
)

func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	r, err := router.Setup(cfg, db.DB)
	if err != nil {
		log.Fatalf("failed to set up router: %v", err)
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
