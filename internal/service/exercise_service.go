package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fitlog/internal/db"
	"gorm.io/gorm"
)

// ExerciseService persists logged sessions and runs the achievement
// evaluator: one transaction covers the session row, personal-best
// upserts, goal progress/status mutations and achievement inserts.
type ExerciseService struct {
	db *gorm.DB
}

// SessionInput carries a session submission.
type SessionInput struct {
	FamilyMember  string
	Date          time.Time
	ExerciseType  string
	Sets          int
	RepsPerSet    []int
	SecondsPerSet []int
	Notes         string
	Feeling       string
}

// SessionFilter narrows session history queries.
type SessionFilter struct {
	FamilyMember string
	ExerciseType string
	From         *time.Time
	To           *time.Time
}

// SessionSummary aggregates session counts over a filter window.
type SessionSummary struct {
	TotalSessions int
	ByExercise    map[string]int
	FirstDate     *time.Time
	LastDate      *time.Time
}

// AchievementTotals summarizes one member's achievements.
type AchievementTotals struct {
	TotalAchievements int
	UniqueExercises   int
	AchievementDays   int
	LastAchievement   *time.Time
}

// NewExerciseService constructs an ExerciseService.
func NewExerciseService(gdb *gorm.DB) *ExerciseService {
	return &ExerciseService{db: gdb}
}

// Log validates and persists a session, then evaluates every active goal
// for the session's (member, exercise) pair. Either the whole submission
// commits or none of it does. Returns the achievements fired by this
// session, which is empty for most sessions.
func (s *ExerciseService) Log(input SessionInput) (*db.ExerciseSession, []db.Achievement, error) {
	spec, err := s.validateInput(&input)
	if err != nil {
		return nil, nil, err
	}

	session := db.ExerciseSession{
		FamilyMember:  input.FamilyMember,
		Date:          input.Date,
		ExerciseType:  input.ExerciseType,
		Sets:          input.Sets,
		RepsPerSet:    input.RepsPerSet,
		SecondsPerSet: input.SecondsPerSet,
		Notes:         strings.TrimSpace(input.Notes),
		Feeling:       strings.TrimSpace(input.Feeling),
	}

	var fired []db.Achievement

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		measurements := ExtractMeasurements(input.RepsPerSet, input.SecondsPerSet)

		bests := NewPersonalBestService(tx)
		if exerciseHasMeasurement(spec, MeasurementReps) {
			if value, ok := measurements.Candidate(GoalKindMaxReps); ok {
				if _, err := bests.RecordCandidate(input.FamilyMember, input.ExerciseType, MeasurementReps, value, input.Date); err != nil {
					return err
				}
			}
		}
		if exerciseHasMeasurement(spec, MeasurementTime) {
			if value, ok := measurements.Candidate(GoalKindMaxTime); ok {
				if _, err := bests.RecordCandidate(input.FamilyMember, input.ExerciseType, MeasurementTime, value, input.Date); err != nil {
					return err
				}
			}
		}

		fired, err = evaluateGoals(tx, input.FamilyMember, input.ExerciseType, input.Date, measurements)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return &session, fired, nil
}

// evaluateGoals applies the threshold-crossing and progress-update rules
// to every active goal of the pair. Goals are independent of each other;
// the ascending id order only keeps results reproducible.
func evaluateGoals(tx *gorm.DB, member, exerciseType string, date time.Time, measurements Measurements) ([]db.Achievement, error) {
	var goals []db.Goal
	if err := tx.
		Where("family_member = ? AND exercise_type = ? AND status = ?", member, exerciseType, db.GoalStatusActive).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("load active goals: %w", err)
	}

	var fired []db.Achievement

	for i := range goals {
		goal := &goals[i]

		candidate, ok := measurements.Candidate(goal.GoalKind)
		if !ok {
			// Axis absent from this session; the goal is untouched.
			continue
		}

		// At most once: only the transition from below target fires.
		newlyAchieved := candidate >= goal.TargetValue && goal.CurrentValue < goal.TargetValue

		if newlyAchieved {
			goalID := goal.ID
			achievement := db.Achievement{
				GoalID:          &goalID,
				FamilyMember:    member,
				AchievementDate: date,
				ExerciseType:    exerciseType,
				GoalKind:        goal.GoalKind,
				TargetValue:     goal.TargetValue,
				AchievedValue:   candidate,
				Description:     goal.Description,
			}
			if err := tx.Create(&achievement).Error; err != nil {
				return nil, fmt.Errorf("create achievement: %w", err)
			}
			fired = append(fired, achievement)
		}

		if candidate > goal.CurrentValue {
			note := fmt.Sprintf("New best: %v", candidate)
			if newlyAchieved {
				note = "Goal achieved!"
			}
			if err := appendProgress(tx, goal.ID, date, candidate, note); err != nil {
				return nil, err
			}

			updates := map[string]interface{}{"current_value": candidate}
			if newlyAchieved {
				updates["status"] = db.GoalStatusAchieved
				updates["achievement_date"] = &date
			}
			if err := tx.Model(goal).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("update goal: %w", err)
			}
		}
	}

	return fired, nil
}

func (s *ExerciseService) validateInput(input *SessionInput) (ExerciseSpec, error) {
	input.FamilyMember = strings.TrimSpace(input.FamilyMember)
	if input.FamilyMember == "" {
		return ExerciseSpec{}, fmt.Errorf("%w: family member is required", ErrSessionInvalid)
	}

	spec, err := validateExerciseType(input.ExerciseType)
	if err != nil {
		return ExerciseSpec{}, err
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.Sets <= 0 {
		return ExerciseSpec{}, fmt.Errorf("%w: set count must be positive", ErrSessionInvalid)
	}

	if exerciseHasMeasurement(spec, MeasurementReps) {
		if input.RepsPerSet == nil {
			return ExerciseSpec{}, fmt.Errorf("%w: %s requires reps per set", ErrSessionInvalid, input.ExerciseType)
		}
		if len(input.RepsPerSet) != input.Sets {
			return ExerciseSpec{}, fmt.Errorf("%w: %d sets but %d rep entries", ErrSessionInvalid, input.Sets, len(input.RepsPerSet))
		}
	} else if input.RepsPerSet != nil {
		return ExerciseSpec{}, fmt.Errorf("%w: %s does not measure reps", ErrSessionInvalid, input.ExerciseType)
	}

	if exerciseHasMeasurement(spec, MeasurementTime) {
		if input.SecondsPerSet == nil {
			return ExerciseSpec{}, fmt.Errorf("%w: %s requires seconds per set", ErrSessionInvalid, input.ExerciseType)
		}
		if len(input.SecondsPerSet) != input.Sets {
			return ExerciseSpec{}, fmt.Errorf("%w: %d sets but %d time entries", ErrSessionInvalid, input.Sets, len(input.SecondsPerSet))
		}
	} else if input.SecondsPerSet != nil {
		return ExerciseSpec{}, fmt.Errorf("%w: %s does not measure time", ErrSessionInvalid, input.ExerciseType)
	}

	for _, v := range input.RepsPerSet {
		if v < 0 {
			return ExerciseSpec{}, fmt.Errorf("%w: negative rep count", ErrSessionInvalid)
		}
	}
	for _, v := range input.SecondsPerSet {
		if v < 0 {
			return ExerciseSpec{}, fmt.Errorf("%w: negative duration", ErrSessionInvalid)
		}
	}

	return spec, nil
}

// Sessions returns logged sessions newest first, honoring the filter.
func (s *ExerciseService) Sessions(filter SessionFilter) ([]db.ExerciseSession, error) {
	query := s.db.Model(&db.ExerciseSession{})

	if filter.FamilyMember != "" {
		query = query.Where("family_member = ?", filter.FamilyMember)
	}
	if filter.ExerciseType != "" {
		query = query.Where("exercise_type = ?", filter.ExerciseType)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var sessions []db.ExerciseSession
	if err := query.Order("date DESC, created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Summary aggregates session counts for the filter window.
func (s *ExerciseService) Summary(filter SessionFilter) (*SessionSummary, error) {
	sessions, err := s.Sessions(filter)
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{
		TotalSessions: len(sessions),
		ByExercise:    make(map[string]int),
	}

	for i := range sessions {
		session := &sessions[i]
		summary.ByExercise[session.ExerciseType]++

		if summary.FirstDate == nil || session.Date.Before(*summary.FirstDate) {
			d := session.Date
			summary.FirstDate = &d
		}
		if summary.LastDate == nil || session.Date.After(*summary.LastDate) {
			d := session.Date
			summary.LastDate = &d
		}
	}

	return summary, nil
}

// RecentAchievements returns achievements within the past day window,
// newest first.
func (s *ExerciseService) RecentAchievements(days int) ([]db.Achievement, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var achievements []db.Achievement
	if err := s.db.
		Where("achievement_date >= ?", cutoff).
		Order("achievement_date DESC, created_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("list recent achievements: %w", err)
	}
	return achievements, nil
}

// AchievementSummary returns per-member achievement totals. An empty
// member summarizes everyone.
func (s *ExerciseService) AchievementSummary(member string) (map[string]AchievementTotals, error) {
	query := s.db.Model(&db.Achievement{})
	if member != "" {
		query = query.Where("family_member = ?", member)
	}

	var achievements []db.Achievement
	if err := query.Order("achievement_date ASC").Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("summarize achievements: %w", err)
	}

	type tracker struct {
		totals    AchievementTotals
		exercises map[string]struct{}
		days      map[string]struct{}
	}
	byMember := make(map[string]*tracker)

	for i := range achievements {
		a := &achievements[i]
		entry, ok := byMember[a.FamilyMember]
		if !ok {
			entry = &tracker{
				exercises: make(map[string]struct{}),
				days:      make(map[string]struct{}),
			}
			byMember[a.FamilyMember] = entry
		}

		entry.totals.TotalAchievements++
		entry.exercises[a.ExerciseType] = struct{}{}
		entry.days[a.AchievementDate.Format("2006-01-02")] = struct{}{}
		d := a.AchievementDate
		entry.totals.LastAchievement = &d
	}

	result := make(map[string]AchievementTotals, len(byMember))
	for name, entry := range byMember {
		entry.totals.UniqueExercises = len(entry.exercises)
		entry.totals.AchievementDays = len(entry.days)
		result[name] = entry.totals
	}
	return result, nil
}
