package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitlog/internal/db"
	"gorm.io/gorm"
)

// PersonalBestService maintains the highest value ever recorded per
// (member, exercise, measurement) triple.
type PersonalBestService struct {
	db *gorm.DB
}

// PersonalBestFilter narrows personal-best listings.
type PersonalBestFilter struct {
	FamilyMember string
	ExerciseType string
}

// NewPersonalBestService builds a PersonalBestService on the given handle,
// which may be a transaction.
func NewPersonalBestService(gdb *gorm.DB) *PersonalBestService {
	return &PersonalBestService{db: gdb}
}

// RecordCandidate upserts a candidate value for the key triple. The stored
// best only changes when the candidate is strictly greater, so repeated
// calls with the same value are no-ops and ties keep the earlier date.
// Returns whether a new best was set.
func (s *PersonalBestService) RecordCandidate(member, exerciseType, measurement string, value float64, date time.Time) (bool, error) {
	var existing db.PersonalBest
	err := s.db.
		Where("family_member = ? AND exercise_type = ? AND measurement = ?", member, exerciseType, measurement).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		best := db.PersonalBest{
			FamilyMember: member,
			ExerciseType: exerciseType,
			Measurement:  measurement,
			Value:        value,
			Date:         date,
		}
		if err := s.db.Create(&best).Error; err != nil {
			return false, fmt.Errorf("create personal best: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("load personal best: %w", err)
	}

	if value <= existing.Value {
		return false, nil
	}

	if err := s.db.Model(&existing).Updates(map[string]interface{}{
		"value": value,
		"date":  date,
	}).Error; err != nil {
		return false, fmt.Errorf("update personal best: %w", err)
	}
	return true, nil
}

// List returns personal bests, optionally filtered by member and exercise.
func (s *PersonalBestService) List(filter PersonalBestFilter) ([]db.PersonalBest, error) {
	query := s.db.Model(&db.PersonalBest{})

	if filter.FamilyMember != "" {
		query = query.Where("family_member = ?", filter.FamilyMember)
	}
	if filter.ExerciseType != "" {
		query = query.Where("exercise_type = ?", filter.ExerciseType)
	}

	var bests []db.PersonalBest
	if err := query.Order("family_member ASC, exercise_type ASC, measurement ASC").Find(&bests).Error; err != nil {
		return nil, fmt.Errorf("list personal bests: %w", err)
	}
	return bests, nil
}
