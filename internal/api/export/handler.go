package export

import (
	"net/http"
	"time"

	"freelancer-access/database"
	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

const exportVersion = "2.0.1"

type userAccessData struct {
	UserLogin string             `json:"user_login"`
	UserEmail string             `json:"user_email"`
	Grants    map[string][]int64 `json:"grants"`
	Schedule  *access.Schedule   `json:"schedule,omitempty"`
}

type exportData struct {
	Version    string                    `json:"version"`
	ExportedAt string                    `json:"exported_at"`
	Settings   access.Settings           `json:"settings"`
	Templates  []access.Template         `json:"templates"`
	UserAccess map[string]userAccessData `json:"user_access"`
}

// ------------------------------
// GET /admin/export  (full configuration as a JSON attachment)
// ------------------------------
func Export(c *gin.Context) {
	settings, err := (store.Settings{DB: database.DB}).Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	tpls, err := (store.Templates{DB: database.DB}).List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}

	data := exportData{
		Version:    exportVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Settings:   settings,
		Templates:  tpls,
		UserAccess: map[string]userAccessData{},
	}

	// Only users carrying a restricted role have anything to export.
	var all []users.User
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	grantStore := store.Grants{DB: database.DB}
	scheduleStore := store.Schedules{DB: database.DB}
	for _, u := range all {
		if !settings.UserRestricted(u.AccessUser()) {
			continue
		}
		grants, err := grantStore.GrantsFor(u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load grants"})
			return
		}
		schedule, err := scheduleStore.Schedule(u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
			return
		}
		data.UserAccess[u.Login] = userAccessData{
			UserLogin: u.Login,
			UserEmail: u.Email,
			Grants:    grants,
			Schedule:  schedule,
		}
	}

	filename := "access-export-" + time.Now().UTC().Format("2006-01-02-150405") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, data)
}

// ------------------------------
// POST /admin/import
// ------------------------------
func Import(c *gin.Context) {
	var data exportData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed import file"})
		return
	}
	if data.Version == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing version field"})
		return
	}

	if err := (store.Settings{DB: database.DB}).Save(data.Settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import settings"})
		return
	}

	tplStore := store.Templates{DB: database.DB}
	for _, tpl := range data.Templates {
		if _, err := tplStore.Save(tpl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import templates"})
			return
		}
	}

	grantStore := store.Grants{DB: database.DB}
	scheduleStore := store.Schedules{DB: database.DB}
	imported := 0
	skipped := 0
	for _, entry := range data.UserAccess {
		user, ok := resolveUser(entry)
		if !ok {
			skipped++
			continue
		}
		for contentType, ids := range entry.Grants {
			if err := grantStore.SetGrant(user.ID, contentType, ids); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import grants"})
				return
			}
		}
		if entry.Schedule != nil {
			if err := scheduleStore.SetSchedule(user.ID, entry.Schedule); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import schedule"})
				return
			}
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Import complete",
		"users_imported": imported,
		"users_skipped":  skipped,
	})
}

// resolveUser matches an exported record to a local account: by login
// first, then by email. Unknown users are skipped, never created.
func resolveUser(entry userAccessData) (users.User, bool) {
	var user users.User
	if entry.UserLogin != "" {
		if err := database.DB.Where("login = ?", entry.UserLogin).First(&user).Error; err == nil {
			return user, true
		}
	}
	if entry.UserEmail != "" {
		if err := database.DB.Where("email = ?", entry.UserEmail).First(&user).Error; err == nil {
			return user, true
		}
	}
	return users.User{}, false
}
