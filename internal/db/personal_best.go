package db

import (
	"time"

	"gorm.io/gorm"
)

// PersonalBest holds the highest value ever observed for a
// (member, exercise, measurement) triple. The unique index keeps exactly
// one row per triple; upserts only ever raise Value.
type PersonalBest struct {
	gorm.Model
	FamilyMember string    `gorm:"index:idx_personal_best_key,unique;not null"`
	ExerciseType string    `gorm:"index:idx_personal_best_key,unique;not null"`
	Measurement  string    `gorm:"index:idx_personal_best_key,unique;not null"`
	Value        float64   `gorm:"not null"`
	Date         time.Time `gorm:"not null"`
}
