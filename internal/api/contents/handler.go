package contents

import (
	"net/http"
	"strconv"

	"freelancer-access/database"
	"freelancer-access/internal/app/http/middleware"
	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/content"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /contents?type=page&ids=1,2,3
// ------------------------------
func ListContents(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contentType := c.DefaultQuery("type", content.TypePost)

	eng := store.NewEngine(database.DB)
	decision, err := allowedFor(eng, user, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}

	// A caller-supplied include list narrows the allowed set, it never
	// widens it.
	if pre := parseIDList(c.Query("ids")); len(pre) > 0 {
		decision = decision.Intersect(pre)
	}

	q := applyDecision(typedContentQuery(database.DB, contentType), decision)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var items []content.Content
	if err := q.Preload("Terms").Order("id ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contents": items})
}

// ------------------------------
// GET /contents/:id  (direct open; denials are logged)
// ------------------------------
func GetContent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return
	}

	var item content.Content
	if err := database.DB.Preload("Terms").First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	eng := store.NewEngine(database.DB)
	allowed, err := canAccessItem(eng, user, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}
	if !allowed {
		logDenied(c, user, item)
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this content"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// logDenied appends a denial to the capped access log. List filtering
// never logs; only direct single-item attempts do.
func logDenied(c *gin.Context, user access.User, item content.Content) {
	entry := store.AccessLogEntry{
		UserID:       user.ID,
		UserLogin:    middleware.CurrentLogin(c),
		ContentID:    item.ID,
		ContentTitle: item.Title,
		IP:           c.ClientIP(),
	}
	if err := (store.Logs{DB: database.DB}).Append(entry); err != nil {
		// Denial still stands; the log is best effort.
		return
	}
}

// ------------------------------
// POST /contents
// ------------------------------
func CreateContent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Type            string  `json:"type" binding:"required"`
		Title           string  `json:"title" binding:"required"`
		Body            string  `json:"body"`
		Status          string  `json:"status"`
		ParentID        *int64  `json:"parent_id"`
		FeaturedMediaID *int64  `json:"featured_media_id"`
		TermIDs         []int64 `json:"term_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = content.StatusDraft
	}

	item := content.Content{
		Type:            req.Type,
		Title:           req.Title,
		Body:            req.Body,
		Status:          req.Status,
		AuthorID:        user.ID,
		ParentID:        req.ParentID,
		FeaturedMediaID: req.FeaturedMediaID,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	if len(req.TermIDs) > 0 {
		var terms []content.Term
		if err := database.DB.Find(&terms, req.TermIDs).Error; err == nil {
			database.DB.Model(&item).Association("Terms").Replace(terms)
		}
	}

	c.JSON(http.StatusCreated, item)
}

// ------------------------------
// PUT /contents/:id
// ------------------------------
func UpdateContent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return
	}

	var item content.Content
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	eng := store.NewEngine(database.DB)
	allowed, err := canAccessItem(eng, user, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}
	if !allowed {
		logDenied(c, user, item)
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this content"})
		return
	}

	var req struct {
		Title           *string  `json:"title"`
		Body            *string  `json:"body"`
		Status          *string  `json:"status"`
		FeaturedMediaID *int64   `json:"featured_media_id"`
		TermIDs         *[]int64 `json:"term_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.FeaturedMediaID != nil {
		updates["featured_media_id"] = *req.FeaturedMediaID
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
			return
		}
	}

	if req.TermIDs != nil {
		var terms []content.Term
		if len(*req.TermIDs) > 0 {
			if err := database.DB.Find(&terms, *req.TermIDs).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load terms"})
				return
			}
		}
		if err := database.DB.Model(&item).Association("Terms").Replace(terms); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update terms"})
			return
		}
	}

	c.JSON(http.StatusOK, item)
}

// ------------------------------
// DELETE /contents/:id  (moves to trash)
// ------------------------------
func DeleteContent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return
	}

	var item content.Content
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	eng := store.NewEngine(database.DB)
	allowed, err := canAccessItem(eng, user, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute access"})
		return
	}
	if !allowed {
		logDenied(c, user, item)
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this content"})
		return
	}

	if err := database.DB.Model(&item).Update("status", content.StatusTrash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content moved to trash"})
}

// ------------------------------
// GET /terms?taxonomy=category
// ------------------------------
func ListTerms(c *gin.Context) {
	q := database.DB.Model(&content.Term{})
	if taxonomy := c.Query("taxonomy"); taxonomy != "" {
		q = q.Where("taxonomy = ?", taxonomy)
	}

	var terms []content.Term
	if err := q.Order("taxonomy ASC, name ASC").Find(&terms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load terms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"terms": terms})
}
