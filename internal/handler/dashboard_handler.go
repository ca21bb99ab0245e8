package handler

import (
	"net/http"

	"github.com/fitlog/internal/db"
	"github.com/fitlog/internal/service"
	"github.com/gin-gonic/gin"
)

// Dashboard aggregates recent achievements, recent sessions and goal
// counts into one payload for the landing page.
func (a *API) Dashboard(c *gin.Context) {
	achievements, err := a.exercises.RecentAchievements(30)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load achievements")
		return
	}

	sessions, err := a.exercises.Sessions(service.SessionFilter{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load sessions")
		return
	}
	if len(sessions) > 10 {
		sessions = sessions[:10]
	}

	var activeGoals int64
	if err := a.db.Model(&db.Goal{}).
		Where("status = ?", db.GoalStatusActive).
		Count(&activeGoals).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "failed to count goals")
		return
	}

	recent := make([]gin.H, 0, len(achievements))
	for i := range achievements {
		item := achievementToPayload(achievements[i])
		item["description_html"] = service.RenderNotes(achievements[i].Description)
		recent = append(recent, item)
	}

	recentSessions := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		item := sessionToPayload(sessions[i])
		item["notes_html"] = service.RenderNotes(sessions[i].Notes)
		recentSessions = append(recentSessions, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"recent_achievements": recent,
		"recent_sessions":     recentSessions,
		"active_goals":        activeGoals,
	})
}
