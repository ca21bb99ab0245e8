package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitlog/internal/db"
	"gorm.io/gorm"
)

// GoalService owns goal records, their lifecycle and progress history.
// Current values are only raised by the achievement evaluator; this
// service never mutates them directly.
type GoalService struct {
	db *gorm.DB
}

// GoalFilter narrows goal listings. An empty Status means active.
type GoalFilter struct {
	FamilyMember string
	Status       string
}

// GoalInput carries the fields a caller sets when creating a goal.
type GoalInput struct {
	FamilyMember string
	ExerciseType string
	GoalKind     string
	TargetValue  float64
	StartDate    time.Time
	TargetDate   *time.Time
	Description  string
}

// NewGoalService constructs a GoalService.
func NewGoalService(gdb *gorm.DB) *GoalService {
	return &GoalService{db: gdb}
}

// Create validates and stores a new goal with status active and a zero
// current value.
func (s *GoalService) Create(input GoalInput) (*db.Goal, error) {
	member := strings.TrimSpace(input.FamilyMember)
	if member == "" {
		return nil, fmt.Errorf("%w: family member is required", ErrSessionInvalid)
	}
	if err := validateGoalKind(input.ExerciseType, input.GoalKind); err != nil {
		return nil, err
	}
	if input.TargetValue <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTarget, input.TargetValue)
	}

	start := input.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	goal := db.Goal{
		FamilyMember: member,
		ExerciseType: input.ExerciseType,
		GoalKind:     input.GoalKind,
		TargetValue:  input.TargetValue,
		CurrentValue: 0,
		StartDate:    start,
		TargetDate:   input.TargetDate,
		Status:       db.GoalStatusActive,
		Description:  strings.TrimSpace(input.Description),
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &goal, nil
}

// List returns goals filtered by optional member and status. Status
// defaults to active; "all" disables the status filter.
func (s *GoalService) List(filter GoalFilter) ([]db.Goal, error) {
	status := filter.Status
	if status == "" {
		status = db.GoalStatusActive
	}

	query := s.db.Model(&db.Goal{})
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	if filter.FamilyMember != "" {
		query = query.Where("family_member = ?", filter.FamilyMember)
	}

	var goals []db.Goal
	if err := query.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Get loads one goal by id.
func (s *GoalService) Get(id uint) (*db.Goal, error) {
	var goal db.Goal
	if err := s.db.First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &goal, nil
}

// SetStatus applies a lifecycle transition. Only active->achieved and
// active->archived are allowed; setting the current status again is a
// tolerated no-op.
func (s *GoalService) SetStatus(id uint, status string) (*db.Goal, error) {
	if status != db.GoalStatusAchieved && status != db.GoalStatusArchived {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, status)
	}

	goal, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if goal.Status == status {
		return goal, nil
	}
	if goal.Status != db.GoalStatusActive {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, goal.Status, status)
	}

	updates := map[string]interface{}{"status": status}
	if status == db.GoalStatusAchieved && goal.AchievementDate == nil {
		now := time.Now()
		updates["achievement_date"] = &now
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update goal status: %w", err)
	}
	return goal, nil
}

// Delete removes a goal together with its progress entries in one
// transaction.
func (s *GoalService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var goal db.Goal
		if err := tx.First(&goal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoalNotFound
			}
			return fmt.Errorf("find goal: %w", err)
		}

		if err := tx.Where("goal_id = ?", id).Delete(&db.GoalProgress{}).Error; err != nil {
			return fmt.Errorf("delete goal progress: %w", err)
		}
		if err := tx.Delete(&goal).Error; err != nil {
			return fmt.Errorf("delete goal: %w", err)
		}
		return nil
	})
}

// Progress returns the progress history for a goal, oldest first.
func (s *GoalService) Progress(goalID uint) ([]db.GoalProgress, error) {
	if _, err := s.Get(goalID); err != nil {
		return nil, err
	}

	var entries []db.GoalProgress
	if err := s.db.Where("goal_id = ?", goalID).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list goal progress: %w", err)
	}
	return entries, nil
}

// appendProgress inserts a raw progress entry. Monotonicity is the
// evaluator's responsibility, not checked here.
func appendProgress(tx *gorm.DB, goalID uint, date time.Time, value float64, note string) error {
	entry := db.GoalProgress{
		GoalID: goalID,
		Date:   date,
		Value:  value,
		Note:   note,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("append goal progress: %w", err)
	}
	return nil
}
