package handler

import (
	"net/http"
	"time"

	"github.com/fitlog/internal/db"
	"github.com/fitlog/internal/service"
	"github.com/gin-gonic/gin"
)

type goalPayload struct {
	FamilyMember string  `json:"family_member"`
	ExerciseType string  `json:"exercise_type"`
	GoalKind     string  `json:"goal_kind"`
	TargetValue  float64 `json:"target_value"`
	StartDate    string  `json:"start_date"`
	TargetDate   string  `json:"target_date"`
	Description  string  `json:"description"`
}

// CreateGoal stores a new active goal.
func (a *API) CreateGoal(c *gin.Context) {
	var payload goalPayload
	if !bindJSON(c, &payload, "invalid goal payload") {
		return
	}

	startPtr, ok := parseOptionalDate(payload.StartDate)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid start date")
		return
	}
	targetPtr, ok := parseOptionalDate(payload.TargetDate)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid target date")
		return
	}

	var start time.Time
	if startPtr != nil {
		start = *startPtr
	}

	goal, err := a.goals.Create(service.GoalInput{
		FamilyMember: payload.FamilyMember,
		ExerciseType: payload.ExerciseType,
		GoalKind:     payload.GoalKind,
		TargetValue:  payload.TargetValue,
		StartDate:    start,
		TargetDate:   targetPtr,
		Description:  payload.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal)})
}

// ListGoals returns goals filtered by member and status.
func (a *API) ListGoals(c *gin.Context) {
	goals, err := a.goals.List(service.GoalFilter{
		FamilyMember: c.Query("member"),
		Status:       c.Query("status"),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list goals")
		return
	}

	items := make([]gin.H, 0, len(goals))
	for i := range goals {
		items = append(items, goalToPayload(goals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"goals": items})
}

// GetGoal returns one goal.
func (a *API) GetGoal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid goal id")
		return
	}

	goal, err := a.goals.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal)})
}

// ArchiveGoal marks an active goal as archived.
func (a *API) ArchiveGoal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid goal id")
		return
	}

	goal, err := a.goals.SetStatus(id, db.GoalStatusArchived)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal)})
}

// DeleteGoal removes a goal and its progress entries.
func (a *API) DeleteGoal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := a.goals.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GoalProgress returns the progress history for a goal.
func (a *API) GoalProgress(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid goal id")
		return
	}

	entries, err := a.goals.Progress(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{
			"date":  entry.Date.Format(dateFormat),
			"value": entry.Value,
			"note":  entry.Note,
		})
	}
	c.JSON(http.StatusOK, gin.H{"goal_id": id, "progress": items})
}

func goalToPayload(goal db.Goal) gin.H {
	item := gin.H{
		"id":            goal.ID,
		"family_member": goal.FamilyMember,
		"exercise_type": goal.ExerciseType,
		"goal_kind":     goal.GoalKind,
		"target_value":  goal.TargetValue,
		"current_value": goal.CurrentValue,
		"start_date":    goal.StartDate.Format(dateFormat),
		"status":        goal.Status,
		"description":   goal.Description,
	}
	if goal.TargetDate != nil {
		item["target_date"] = goal.TargetDate.Format(dateFormat)
	}
	if goal.AchievementDate != nil {
		item["achievement_date"] = goal.AchievementDate.Format(dateFormat)
	}
	return item
}
