package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ozank/stationhub/internal/app/controllers"
	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	readingController *controllers.ReadingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- User and session routes ---
	users := v1.Group("/users")
	{
		// Public session endpoints
		users.POST("/login", authController.Login)
		users.POST("/logout", authController.Logout)
		users.GET("/key/:authKey", authController.GetUserByAuthKey)

		// Admin-only account management
		admin := users.Group("", authMiddleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("", userController.Create)
			admin.PUT("/role", userController.ReassignRole)
			admin.DELETE("/deleteInactive", userController.DeleteInactive)
			admin.PUT("/:id", userController.Update)
			admin.DELETE("/:id", userController.Delete)
		}
	}

	// --- Reading query routes (admin and student) ---
	readings := v1.Group("/readings", authMiddleware.RequireRole(models.RoleAdmin, models.RoleStudent))
	{
		readings.GET("/range", readingController.GetByDateRange)
		readings.GET("/maxTemp", readingController.MaxTemperature)
		readings.GET("/precipitation/:deviceName", readingController.MaxPrecipitation)
		readings.GET("/hour/:deviceName/:time", readingController.GetWithinHour)
		readings.GET("/:deviceName/:time", readingController.GetByDeviceAndTime)
	}

	// --- Reading mutation routes ---
	reading := v1.Group("/reading")
	{
		reading.POST("/create",
			authMiddleware.RequireRole(models.RoleAdmin, models.RoleStation),
			readingController.Ingest)
		reading.PATCH("/update/:id",
			authMiddleware.RequireRole(models.RoleAdmin),
			readingController.UpdatePrecipitation)
	}
}
