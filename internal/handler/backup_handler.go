package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateBackup writes a snapshot in the requested format
// (sqlite|json|csv|full, default full).
func (a *API) CreateBackup(c *gin.Context) {
	format := c.DefaultQuery("format", "full")

	switch format {
	case "sqlite":
		path, err := a.backups.CreateSQLite()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "backup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": gin.H{"sqlite": path}})
	case "json":
		path, err := a.backups.CreateJSON(a.db)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "backup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": gin.H{"json": path}})
	case "csv":
		path, err := a.backups.CreateCSV(a.db)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "backup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": gin.H{"csv": path}})
	case "full":
		paths, err := a.backups.CreateFull(a.db)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "backup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": paths})
	default:
		respondError(c, http.StatusBadRequest, "unknown backup format")
	}
}

// ListBackups returns existing backup files, newest first.
func (a *API) ListBackups(c *gin.Context) {
	files, err := a.backups.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list backups")
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": files})
}
