package db

import (
	"time"

	"gorm.io/gorm"
)

// Achievement records a goal crossing its target on a specific date.
// GoalID is nullable so the record survives a later goal deletion.
// Rows are immutable.
type Achievement struct {
	gorm.Model
	GoalID          *uint     `gorm:"index"`
	FamilyMember    string    `gorm:"index;not null"`
	AchievementDate time.Time `gorm:"index;not null"`
	ExerciseType    string    `gorm:"not null"`
	GoalKind        string    `gorm:"not null"`
	TargetValue     float64   `gorm:"not null"`
	AchievedValue   float64   `gorm:"not null"`
	Description     string
	Notes           string
}
