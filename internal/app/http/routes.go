package routes

import (
	adminapi "freelancer-access/internal/api/admin"
	authapi "freelancer-access/internal/api/auth"
	contentsapi "freelancer-access/internal/api/contents"
	exportapi "freelancer-access/internal/api/export"
	grantsapi "freelancer-access/internal/api/grants"
	logsapi "freelancer-access/internal/api/logs"
	mediaapi "freelancer-access/internal/api/media"
	settingsapi "freelancer-access/internal/api/settings"
	templatesapi "freelancer-access/internal/api/templates"
	usersapi "freelancer-access/internal/api/users"
	"freelancer-access/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated: listings and single-item opens run through the
	// access engine inside the handlers.
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/contents", contentsapi.ListContents)
	auth.GET("/contents/:id", contentsapi.GetContent)
	auth.POST("/contents", contentsapi.CreateContent)
	auth.PUT("/contents/:id", contentsapi.UpdateContent)
	auth.DELETE("/contents/:id", contentsapi.DeleteContent)
	auth.GET("/terms", contentsapi.ListTerms)

	auth.GET("/media", mediaapi.ListMedia)
	auth.GET("/media/:id", mediaapi.GetMedia)
	auth.POST("/media", mediaapi.CreateMedia)

	// Admin surface: grants, schedules, templates, settings, logs,
	// export/import, dashboard.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdministrator(), middleware.SanitizeAndCleanInputMiddleware())
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListAllUsers)

	admin.GET("/users/:id/access", grantsapi.GetUserAccess)
	admin.PUT("/users/:id/grants/:type", grantsapi.SetUserGrant)
	admin.PUT("/users/:id/schedule", grantsapi.SetUserSchedule)
	admin.DELETE("/users/:id/access", grantsapi.ClearUserAccess)
	admin.POST("/users/:id/template", templatesapi.CreateFromUser)

	admin.GET("/templates", templatesapi.ListTemplates)
	admin.POST("/templates", templatesapi.SaveTemplate)
	admin.GET("/templates/:id", templatesapi.GetTemplate)
	admin.PUT("/templates/:id", templatesapi.SaveTemplate)
	admin.DELETE("/templates/:id", templatesapi.DeleteTemplate)
	admin.POST("/templates/:id/apply", templatesapi.ApplyTemplate)

	admin.GET("/settings", settingsapi.GetSettings)
	admin.PUT("/settings", settingsapi.SaveSettings)
	admin.GET("/settings/catalog", settingsapi.GetCatalog)

	admin.GET("/logs", logsapi.ListLogs)

	admin.GET("/export", exportapi.Export)
	admin.POST("/import", exportapi.Import)
}
