package media

import (
	"net/http"
	"strconv"

	"freelancer-access/database"
	"freelancer-access/internal/app/http/middleware"
	"freelancer-access/internal/domain/content"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /media  (library listing through the resolver)
// ------------------------------
func ListMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	eng := store.NewEngine(database.DB)
	decision, err := eng.AllowedMediaIDs(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}

	q := database.DB.Model(&content.Content{}).
		Where("type = ?", content.TypeAttachment)
	if !decision.Unrestricted {
		q = q.Where("id IN ?", decision.FilterIDs())
	}

	var items []content.Content
	if err := q.Order("id DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": items})
}

// ------------------------------
// GET /media/:id
// ------------------------------
func GetMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media id"})
		return
	}

	var item content.Content
	if err := database.DB.Where("type = ?", content.TypeAttachment).First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}

	eng := store.NewEngine(database.DB)
	decision, err := eng.AllowedMediaIDs(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}
	if !decision.Contains(item.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this media"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ------------------------------
// POST /media  (register an upload; author = caller)
// ------------------------------
func CreateMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		MimeType string `json:"mime_type"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Uploading into a content item requires access to that item.
	if req.ParentID != nil {
		var parent content.Content
		if err := database.DB.First(&parent, *req.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent content not found"})
			return
		}
		eng := store.NewEngine(database.DB)
		allowed, err := eng.CanAccess(user, parent.Type, parent.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to attach media here"})
			return
		}
	}

	item := content.Content{
		Type:     content.TypeAttachment,
		Title:    req.Title,
		Status:   content.StatusPublished,
		AuthorID: user.ID,
		ParentID: req.ParentID,
		MimeType: req.MimeType,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create media"})
		return
	}

	c.JSON(http.StatusCreated, item)
}
