package templates

import (
	"errors"
	"net/http"
	"strconv"

	"freelancer-access/database"
	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type templateResponse struct {
	access.Template
	Summary map[string]int `json:"summary"`
}

func toResponse(tpl access.Template) templateResponse {
	return templateResponse{Template: tpl, Summary: tpl.Summary()}
}

// ------------------------------
// GET /admin/templates
// ------------------------------
func ListTemplates(c *gin.Context) {
	tpls, err := (store.Templates{DB: database.DB}).List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}

	out := make([]templateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, toResponse(tpl))
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

// ------------------------------
// GET /admin/templates/:id
// ------------------------------
func GetTemplate(c *gin.Context) {
	tpl, err := (store.Templates{DB: database.DB}).Get(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template"})
		return
	}
	c.JSON(http.StatusOK, toResponse(tpl))
}

// ------------------------------
// POST /admin/templates  /  PUT /admin/templates/:id
// ------------------------------
func SaveTemplate(c *gin.Context) {
	var req struct {
		Name        string             `json:"name" binding:"required"`
		Description string             `json:"description"`
		Content     map[string][]int64 `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := access.Template{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	}

	saved, err := (store.Templates{DB: database.DB}).Save(tpl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save template"})
		return
	}

	status := http.StatusOK
	if tpl.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, toResponse(saved))
}

// ------------------------------
// DELETE /admin/templates/:id
// ------------------------------
func DeleteTemplate(c *gin.Context) {
	err := (store.Templates{DB: database.DB}).Delete(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// ------------------------------
// POST /admin/templates/:id/apply  {"user_id": 7, "merge": true}
// ------------------------------
func ApplyTemplate(c *gin.Context) {
	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
		Merge  bool  `json:"merge"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tpl, err := (store.Templates{DB: database.DB}).Get(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template"})
		return
	}

	eng := store.NewEngine(database.DB)
	if err := eng.ApplyTemplate(tpl, req.UserID, req.Merge); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Template applied",
		"template": tpl.ID,
		"user_id":  req.UserID,
		"merge":    req.Merge,
	})
}

// ------------------------------
// POST /admin/users/:id/template  {"name": "...", "description": "..."}
// ------------------------------
func CreateFromUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eng := store.NewEngine(database.DB)
	tpl, err := eng.SnapshotUser(userID, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snapshot user"})
		return
	}

	saved, err := (store.Templates{DB: database.DB}).Save(tpl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save template"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(saved))
}
