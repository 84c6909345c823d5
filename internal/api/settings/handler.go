package settings

import (
	"net/http"

	"freelancer-access/database"
	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/content"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /admin/settings
// ------------------------------
func GetSettings(c *gin.Context) {
	settings, err := (store.Settings{DB: database.DB}).Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ------------------------------
// PUT /admin/settings
// ------------------------------
func SaveSettings(c *gin.Context) {
	var req access.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := store.Settings{DB: database.DB}
	if err := s.Save(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	saved, err := s.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ------------------------------
// GET /admin/settings/catalog
// ------------------------------
// Available roles, content types and taxonomies for the settings screen.
// Roles never include administrator: it cannot be restricted.
func GetCatalog(c *gin.Context) {
	var types []string
	if err := database.DB.Model(&content.Content{}).
		Distinct("type").
		Where("type <> ?", content.TypeAttachment).
		Pluck("type", &types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content types"})
		return
	}
	// Built-ins are always offered, even before any content exists.
	types = mergeSlugs([]string{content.TypePage, content.TypePost}, types)

	var taxonomies []string
	if err := database.DB.Model(&content.Term{}).
		Distinct("taxonomy").
		Pluck("taxonomy", &taxonomies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load taxonomies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roles":      []string{"editor", "author", "contributor"},
		"types":      types,
		"taxonomies": taxonomies,
	})
}

func mergeSlugs(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range append(base, extra...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
