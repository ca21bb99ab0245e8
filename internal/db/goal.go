package db

import (
	"time"

	"gorm.io/gorm"
)

// Goal lifecycle statuses. Transitions only ever leave StatusActive:
// active -> achieved (evaluator) or active -> archived (user action).
const (
	GoalStatusActive   = "active"
	GoalStatusAchieved = "achieved"
	GoalStatusArchived = "archived"
)

// Goal is a target a family member pursues for one exercise type.
// CurrentValue never decreases while the goal is active; it is only
// raised by the achievement evaluator.
type Goal struct {
	gorm.Model
	FamilyMember    string  `gorm:"index;not null"`
	ExerciseType    string  `gorm:"not null"`
	GoalKind        string  `gorm:"not null"`
	TargetValue     float64 `gorm:"not null"`
	CurrentValue    float64 `gorm:"default:0"`
	StartDate       time.Time
	TargetDate      *time.Time
	Status          string `gorm:"index;default:active"`
	Description     string
	AchievementDate *time.Time

	Progress     []GoalProgress `gorm:"constraint:OnDelete:CASCADE"`
	Achievements []Achievement
}

// GoalProgress is an append-only observation of a goal's value. One entry
// is written per session that strictly raises the goal's current value.
type GoalProgress struct {
	gorm.Model
	GoalID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"not null"`
	Value  float64   `gorm:"not null"`
	Note   string
}
