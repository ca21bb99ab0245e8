package handler

import (
	"github.com/fitlog/internal/backup"
	"github.com/fitlog/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	exercises    *service.ExerciseService
	goals        *service.GoalService
	bests        *service.PersonalBestService
	backups      *backup.Manager
	passwordHash []byte
}

// NewAPI constructs a handler set with shared services. The family
// password is hashed once at startup; an empty password disables login.
func NewAPI(gdb *gorm.DB, backups *backup.Manager, familyPassword string) (*API, error) {
	var hash []byte
	if familyPassword != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(familyPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	return &API{
		db:           gdb,
		exercises:    service.NewExerciseService(gdb),
		goals:        service.NewGoalService(gdb),
		bests:        service.NewPersonalBestService(gdb),
		backups:      backups,
		passwordHash: hash,
	}, nil
}

// DB exposes the underlying gorm instance for the backup handlers.
func (a *API) DB() *gorm.DB {
	return a.db
}
