package admin

import (
	"net/http"
	"time"

	"freelancer-access/database"
	"freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

type AdminStats struct {
	RestrictedUsers int   `json:"restricted_users"`
	ActiveUsers     int   `json:"active_users"`
	ExpiredUsers    int   `json:"expired_users"`
	TemplateCount   int   `json:"template_count"`
	RecentDenials   int64 `json:"recent_denials"`
}

// ------------------------------
// GET /admin/dashboard  (overview counters)
// ------------------------------
func Dashboard(c *gin.Context) {
	settings, err := (store.Settings{DB: database.DB}).Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	var all []users.User
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var stats AdminStats
	scheduleStore := store.Schedules{DB: database.DB}
	now := time.Now()
	for _, u := range all {
		if !settings.UserRestricted(u.AccessUser()) {
			continue
		}
		stats.RestrictedUsers++
		schedule, err := scheduleStore.Schedule(u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedules"})
			return
		}
		if schedule.ActiveOn(now) {
			stats.ActiveUsers++
		} else {
			stats.ExpiredUsers++
		}
	}

	tpls, err := (store.Templates{DB: database.DB}).List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}
	stats.TemplateCount = len(tpls)

	denials, err := (store.Logs{DB: database.DB}).Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count denials"})
		return
	}
	stats.RecentDenials = denials

	c.JSON(http.StatusOK, stats)
}

type AdminUser struct {
	ID         int64    `json:"id"`
	Login      string   `json:"login"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Restricted bool     `json:"restricted"`
	Active     bool     `json:"active"`
}

// ------------------------------
// GET /admin/users
// ------------------------------
func ListAllUsers(c *gin.Context) {
	settings, err := (store.Settings{DB: database.DB}).Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	var all []users.User
	if err := database.DB.Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	scheduleStore := store.Schedules{DB: database.DB}
	now := time.Now()

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		restricted := settings.UserRestricted(u.AccessUser())
		active := true
		if restricted {
			schedule, err := scheduleStore.Schedule(u.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedules"})
				return
			}
			active = schedule.ActiveOn(now)
		}
		out = append(out, AdminUser{
			ID:         u.ID,
			Login:      u.Login,
			Email:      u.Email,
			Roles:      u.Roles,
			Restricted: restricted,
			Active:     active,
		})
	}

	c.JSON(http.StatusOK, out)
}
