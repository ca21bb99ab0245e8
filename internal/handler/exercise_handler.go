package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fitlog/internal/db"
	"github.com/fitlog/internal/service"
	"github.com/gin-gonic/gin"
)

type sessionPayload struct {
	FamilyMember  string `json:"family_member"`
	Date          string `json:"date"`
	ExerciseType  string `json:"exercise_type"`
	Sets          int    `json:"sets"`
	RepsPerSet    []int  `json:"reps_per_set"`
	SecondsPerSet []int  `json:"seconds_per_set"`
	Notes         string `json:"notes"`
	Feeling       string `json:"feeling"`
}

// LogExercise persists a session and returns any achievements it fired.
func (a *API) LogExercise(c *gin.Context) {
	var payload sessionPayload
	if !bindJSON(c, &payload, "invalid session payload") {
		return
	}

	datePtr, ok := parseOptionalDate(payload.Date)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid session date")
		return
	}
	var date time.Time
	if datePtr != nil {
		date = *datePtr
	}

	session, achievements, err := a.exercises.Log(service.SessionInput{
		FamilyMember:  payload.FamilyMember,
		Date:          date,
		ExerciseType:  payload.ExerciseType,
		Sets:          payload.Sets,
		RepsPerSet:    payload.RepsPerSet,
		SecondsPerSet: payload.SecondsPerSet,
		Notes:         payload.Notes,
		Feeling:       payload.Feeling,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":      sessionToPayload(*session),
		"achievements": achievementsToPayload(achievements),
	})
}

// ListExercises returns session history honoring member/date/type filters.
func (a *API) ListExercises(c *gin.Context) {
	filter, ok := a.sessionFilterFromQuery(c)
	if !ok {
		return
	}

	sessions, err := a.exercises.Sessions(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		items = append(items, sessionToPayload(sessions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": items})
}

// ExerciseSummary returns aggregate counts for the filter window.
func (a *API) ExerciseSummary(c *gin.Context) {
	filter, ok := a.sessionFilterFromQuery(c)
	if !ok {
		return
	}

	summary, err := a.exercises.Summary(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to summarize sessions")
		return
	}

	payload := gin.H{
		"total_sessions": summary.TotalSessions,
		"by_exercise":    summary.ByExercise,
	}
	if summary.FirstDate != nil {
		payload["first_date"] = summary.FirstDate.Format(dateFormat)
	}
	if summary.LastDate != nil {
		payload["last_date"] = summary.LastDate.Format(dateFormat)
	}
	c.JSON(http.StatusOK, payload)
}

// ListPersonalBests returns personal bests with optional filters.
func (a *API) ListPersonalBests(c *gin.Context) {
	bests, err := a.bests.List(service.PersonalBestFilter{
		FamilyMember: c.Query("member"),
		ExerciseType: c.Query("exercise_type"),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list personal bests")
		return
	}

	items := make([]gin.H, 0, len(bests))
	for _, best := range bests {
		items = append(items, gin.H{
			"family_member": best.FamilyMember,
			"exercise_type": best.ExerciseType,
			"measurement":   best.Measurement,
			"value":         best.Value,
			"date":          best.Date.Format(dateFormat),
		})
	}
	c.JSON(http.StatusOK, gin.H{"personal_bests": items})
}

// RecentAchievements returns achievements within a day window (default 30).
func (a *API) RecentAchievements(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "invalid day window")
			return
		}
		days = parsed
	}

	achievements, err := a.exercises.RecentAchievements(days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list achievements")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":         days,
		"achievements": achievementsToPayload(achievements),
	})
}

// AchievementSummary returns per-member achievement totals.
func (a *API) AchievementSummary(c *gin.Context) {
	summary, err := a.exercises.AchievementSummary(c.Query("member"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to summarize achievements")
		return
	}

	members := make(gin.H, len(summary))
	for name, totals := range summary {
		entry := gin.H{
			"total_achievements": totals.TotalAchievements,
			"unique_exercises":   totals.UniqueExercises,
			"achievement_days":   totals.AchievementDays,
		}
		if totals.LastAchievement != nil {
			entry["last_achievement"] = totals.LastAchievement.Format(dateFormat)
		}
		members[name] = entry
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Catalog exposes exercise types, goal kinds and the family roster for
// form rendering.
func (a *API) Catalog(c *gin.Context) {
	exercises := make(gin.H, len(service.ExerciseTypes))
	for _, name := range service.ExerciseTypeNames() {
		spec := service.ExerciseTypes[name]
		exercises[name] = gin.H{
			"description":  spec.Description,
			"measurements": spec.Measurements,
			"valid_goals":  spec.ValidGoals,
		}
	}

	kinds := make(gin.H, len(service.GoalKinds))
	for name, spec := range service.GoalKinds {
		kinds[name] = gin.H{
			"description": spec.Description,
			"unit":        spec.Unit,
			"measurement": spec.Measurement,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"family_members": service.FamilyMembers,
		"exercise_types": exercises,
		"goal_kinds":     kinds,
	})
}

func (a *API) sessionFilterFromQuery(c *gin.Context) (service.SessionFilter, bool) {
	from, ok := parseOptionalDate(c.Query("from"))
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid from date")
		return service.SessionFilter{}, false
	}
	to, ok := parseOptionalDate(c.Query("to"))
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid to date")
		return service.SessionFilter{}, false
	}

	return service.SessionFilter{
		FamilyMember: c.Query("member"),
		ExerciseType: c.Query("exercise_type"),
		From:         from,
		To:           to,
	}, true
}

func sessionToPayload(session db.ExerciseSession) gin.H {
	item := gin.H{
		"id":            session.ID,
		"family_member": session.FamilyMember,
		"date":          session.Date.Format(dateFormat),
		"exercise_type": session.ExerciseType,
		"sets":          session.Sets,
		"notes":         session.Notes,
		"feeling":       session.Feeling,
	}
	if session.RepsPerSet != nil {
		item["reps_per_set"] = session.RepsPerSet
	}
	if session.SecondsPerSet != nil {
		item["seconds_per_set"] = session.SecondsPerSet
	}
	return item
}

func achievementsToPayload(achievements []db.Achievement) []gin.H {
	items := make([]gin.H, 0, len(achievements))
	for i := range achievements {
		items = append(items, achievementToPayload(achievements[i]))
	}
	return items
}

func achievementToPayload(a db.Achievement) gin.H {
	item := gin.H{
		"id":               a.ID,
		"family_member":    a.FamilyMember,
		"achievement_date": a.AchievementDate.Format(dateFormat),
		"exercise_type":    a.ExerciseType,
		"goal_kind":        a.GoalKind,
		"target_value":     a.TargetValue,
		"achieved_value":   a.AchievedValue,
		"description":      a.Description,
		"notes":            a.Notes,
	}
	if a.GoalID != nil {
		item["goal_id"] = *a.GoalID
	}
	return item
}
