package grants

import (
	"net/http"
	"strconv"
	"time"

	"freelancer-access/database"
	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	var user users.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return 0, false
	}
	return id, true
}

// ------------------------------
// GET /admin/users/:id/access
// ------------------------------
func GetUserAccess(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	grantsByType, err := (store.Grants{DB: database.DB}).GrantsFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load grants"})
		return
	}

	schedule, err := (store.Schedules{DB: database.DB}).Schedule(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"grants":   grantsByType,
		"schedule": schedule,
		"active":   schedule.ActiveOn(time.Now()),
	})
}

// ------------------------------
// PUT /admin/users/:id/grants/:type
// ------------------------------
func SetUserGrant(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	contentType := c.Param("type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content type"})
		return
	}
	// A taxonomy grant key must name its taxonomy.
	if taxonomy, ok := access.TaxonomyFromKey(contentType); ok && taxonomy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid taxonomy grant key"})
		return
	}

	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := (store.Grants{DB: database.DB}).SetGrant(userID, contentType, req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save grant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"content_type": contentType,
		"ids":          access.NormalizeIDs(req.IDs),
	})
}

// ------------------------------
// PUT /admin/users/:id/schedule
// ------------------------------
func SetUserSchedule(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req struct {
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := &access.Schedule{}
	if req.StartDate != nil && *req.StartDate != "" {
		t, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return
		}
		schedule.Start = &t
	}
	if req.EndDate != nil && *req.EndDate != "" {
		t, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}
		schedule.End = &t
	}
	if schedule.Start != nil && schedule.End != nil && schedule.End.Before(*schedule.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is before start_date"})
		return
	}

	if err := (store.Schedules{DB: database.DB}).SetSchedule(userID, schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"schedule": schedule,
		"active":   schedule.ActiveOn(time.Now()),
	})
}

// ------------------------------
// DELETE /admin/users/:id/access  (clear grants + schedule)
// ------------------------------
func ClearUserAccess(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := (store.Grants{DB: database.DB}).ClearUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access cleared", "user_id": userID})
}
