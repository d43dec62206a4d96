package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/ratelimit"
	"alcyxob/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	historyService HistoryService,
	limiter *ratelimit.Limiter,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	historyHandler := NewHistoryHandler(historyService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:exerciseId/video-url", exerciseHandler.GetVideoURL)

			staffOnly := RoleMiddleware(domain.RoleAdmin, domain.RoleInstructor)
			exerciseGroup.POST("", staffOnly, exerciseHandler.CreateExercise)
			exerciseGroup.POST("/:exerciseId/video-upload-url", staffOnly, exerciseHandler.RequestVideoUploadURL)
			exerciseGroup.POST("/:exerciseId/video-confirm", staffOnly, exerciseHandler.ConfirmVideoUpload)
		}

		// --- Member History Routes ---
		// Building a dossier fans out to five collections, so these are throttled.
		historyGroup := protected.Group("/members/:memberId/history")
		historyGroup.Use(RateLimitMiddleware(limiter))
		{
			historyGroup.GET("", historyHandler.GetFullHistory)
			historyGroup.GET("/range", historyHandler.GetHistoryInRange)
			historyGroup.GET("/last-month", historyHandler.GetLastMonth)
			historyGroup.GET("/last-3-months", historyHandler.GetLastThreeMonths)
			historyGroup.GET("/current-year", historyHandler.GetCurrentYear)
		}
	}
}
