package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fitlog/internal/config"
	"github.com/fitlog/internal/db"
)

// Removes the existing database file and recreates an empty schema.
// Destructive; intended for development setups only.
func main() {
	cfg := config.Load()

	if _, err := os.Stat(cfg.DatabasePath); err == nil {
		if err := os.Remove(cfg.DatabasePath); err != nil {
			log.Fatalf("failed to remove database: %v", err)
		}
		fmt.Printf("removed existing database: %s\n", cfg.DatabasePath)
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var tables []string
	if err := db.DB.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables).Error; err != nil {
		log.Fatalf("failed to list tables: %v", err)
	}

	fmt.Println("created tables:")
	for _, table := range tables {
		fmt.Printf("- %s\n", table)
	}
}
