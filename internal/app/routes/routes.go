package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakhaven/prepschool/internal/app/controllers"
	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	applicationController *controllers.ApplicationController,
	documentController *controllers.DocumentController,
	studentController *controllers.StudentController,
	authController *controllers.AuthController,
	contactController *controllers.ContactController,
	jwtService *auth.JWTService,
	svc *services.Services,
) {
	api := router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	staffAuth := middleware.StaffAuth(jwtService, svc.Auth)
	studentAuth := middleware.StudentAuth(jwtService, svc.Students)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// --- Public routes ---
	api.POST("/contact", contactController.Create)
	api.POST("/application", applicationController.Create)

	// Document upload and view stay public so applicants without an
	// account can attach and check their files
	uploads := api.Group("/uploads/applications/:id/documents")
	{
		uploads.POST("", documentController.Upload)
		uploads.GET("/:documentId/view", documentController.View)

		// Staff-only document management
		uploads.GET("", staffAuth, documentController.List)
		uploads.DELETE("/:documentId", staffAuth, documentController.Delete)
	}

	// --- Student portal routes ---
	student := api.Group("/student")
	{
		student.POST("/register", studentController.Register)
		student.POST("/login", studentController.Login)
		student.GET("/logout", studentController.Logout)
		student.POST("/forgot-password", studentController.ForgotPassword)
		student.POST("/reset-password", studentController.ResetPassword)

		authed := student.Group("", studentAuth)
		{
			authed.GET("/me", studentController.Me)
			authed.PUT("/profile", studentController.UpdateProfile)
			authed.PUT("/parents/:index", studentController.UpdateParent)
			authed.POST("/parents", studentController.AddParent)
			authed.GET("/dashboard",
				middleware.RequireStatus(models.StudentActive, models.StudentPending),
				studentController.Dashboard)
		}
	}

	// --- Staff auth routes ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.GET("/logout", authController.Logout)
		authGroup.POST("/register", authController.Register) // bootstrap only
		authGroup.GET("/me", staffAuth, authController.Me)
		authGroup.POST("/create-staff", staffAuth, adminOnly, authController.CreateStaff)
	}

	// --- Staff back office routes ---
	admin := api.Group("/admin", staffAuth)
	{
		admin.GET("/applications", applicationController.List)
		admin.GET("/applications/:id", applicationController.GetByID)
		admin.PATCH("/applications/:id", adminOnly, applicationController.UpdateStatus)

		admin.GET("/contacts", contactController.List)
		admin.PATCH("/contacts/:id/respond", contactController.MarkResponded)

		admin.GET("/students", studentController.AdminList)
		admin.PATCH("/students/:id", adminOnly, studentController.AdminUpdate)
	}
}
