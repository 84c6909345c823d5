package users

import (
	"net/http"
	"time"

	"freelancer-access/database"
	"freelancer-access/internal/app/http/middleware"
	domain "freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /me  (identity + restriction status + own grant summary)
// ------------------------------
func GetCurrentUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user domain.User
	if err := database.DB.First(&user, current.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	settings, err := (store.Settings{DB: database.DB}).Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	restricted := settings.UserRestricted(user.AccessUser())

	resp := gin.H{
		"id":         user.ID,
		"login":      user.Login,
		"email":      user.Email,
		"roles":      user.Roles,
		"restricted": restricted,
	}

	if restricted {
		schedule, err := (store.Schedules{DB: database.DB}).Schedule(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
			return
		}
		grants, err := (store.Grants{DB: database.DB}).GrantsFor(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load grants"})
			return
		}
		summary := make(map[string]int, len(grants))
		for contentType, ids := range grants {
			summary[contentType] = len(ids)
		}
		resp["schedule"] = schedule
		resp["access_active"] = schedule.ActiveOn(time.Now())
		resp["grant_summary"] = summary
	}

	c.JSON(http.StatusOK, resp)
}
