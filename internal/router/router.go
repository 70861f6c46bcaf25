package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mealcoach/backend/internal/api"
	"github.com/mealcoach/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	diaryHandler *api.DiaryHandler,
	planHandler *api.PlanHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.PUT("/food-setting", profileHandler.UpdateFoodSetting)
		}

		diary := protected.Group("/diary")
		{
			diary.GET("/eaten-foods", diaryHandler.ListEatenFoods)
			diary.POST("/eaten-foods", diaryHandler.UploadEatenFood)
		}

		ai := protected.Group("/ai")
		{
			ai.POST("/plan", planHandler.GeneratePlan)
			ai.GET("/plan/latest", planHandler.LatestPlan)
			ai.GET("/recommendations", planHandler.History)
			ai.GET("/mealkits", planHandler.ListMealKits)
			ai.POST("/ingredients", planHandler.GenerateIngredients)
		}
	}

	return router
}
