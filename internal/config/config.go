package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig collects everything the server needs at startup.
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabasePath   string
	BackupDir      string
	SessionSecret  string
	GinMode        string
	FamilyPassword string
}

// Load reads the configuration from environment variables, providing safe
// defaults for anything unset.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "data/fitlog.db"
	}

	backupDir := strings.TrimSpace(os.Getenv("BACKUP_DIR"))
	if backupDir == "" {
		backupDir = "backups"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "fitlog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	familyPassword := strings.TrimSpace(os.Getenv("FAMILY_PASSWORD"))
	if familyPassword == "" {
		familyPassword = "family"
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabasePath:   databasePath,
		BackupDir:      backupDir,
		SessionSecret:  sessionSecret,
		GinMode:        ginMode,
		FamilyPassword: familyPassword,
	}
}
