package logs

import (
	"net/http"
	"time"

	"freelancer-access/database"
	"freelancer-access/internal/store"

	"github.com/gin-gonic/gin"
)

type entryDTO struct {
	Time         string `json:"time"`
	UserID       int64  `json:"user_id"`
	UserLogin    string `json:"user_login"`
	ContentID    int64  `json:"content_id"`
	ContentTitle string `json:"content_title"`
	IP           string `json:"ip"`
}

// ------------------------------
// GET /admin/logs  (denied attempts, newest first)
// ------------------------------
func ListLogs(c *gin.Context) {
	rows, err := (store.Logs{DB: database.DB}).List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load logs"})
		return
	}

	out := make([]entryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryDTO{
			Time:         row.CreatedAt.Format(time.RFC3339),
			UserID:       row.UserID,
			UserLogin:    row.UserLogin,
			ContentID:    row.ContentID,
			ContentTitle: row.ContentTitle,
			IP:           row.IP,
		})
	}
	c.JSON(http.StatusOK, gin.H{"logs": out})
}
