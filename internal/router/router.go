package router

import (
	"github.com/fitlog/internal/backup"
	"github.com/fitlog/internal/config"
	"github.com/fitlog/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the gin engine with session middleware and all routes.
func Setup(cfg config.AppConfig, gdb *gorm.DB) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("fitlog_session", store))

	backups := backup.NewManager(cfg.DatabasePath, cfg.BackupDir)
	api, err := handler.NewAPI(gdb, backups, cfg.FamilyPassword)
	if err != nil {
		return nil, err
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)

	authed := r.Group("/api")
	authed.Use(handler.AuthRequired())
	{
		authed.GET("/dashboard", api.Dashboard)
		authed.GET("/catalog", api.Catalog)

		authed.POST("/exercises", api.LogExercise)
		authed.GET("/exercises", api.ListExercises)
		authed.GET("/exercises/summary", api.ExerciseSummary)

		authed.GET("/personal-bests", api.ListPersonalBests)

		authed.GET("/achievements/recent", api.RecentAchievements)
		authed.GET("/achievements/summary", api.AchievementSummary)

		authed.GET("/goals", api.ListGoals)
		authed.POST("/goals", api.CreateGoal)
		authed.GET("/goals/:id", api.GetGoal)
		authed.GET("/goals/:id/progress", api.GoalProgress)
		authed.POST("/goals/:id/archive", api.ArchiveGoal)
		authed.DELETE("/goals/:id", api.DeleteGoal)

		authed.POST("/backups", api.CreateBackup)
		authed.GET("/backups", api.ListBackups)
	}

	return r, nil
}
