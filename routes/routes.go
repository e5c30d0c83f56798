package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marktudor11/fitlytics/controllers"
	"github.com/marktudor11/fitlytics/middlewares"
	"github.com/marktudor11/fitlytics/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	accountSvc := services.NewAccountService(db)
	nutritionSvc := services.NewNutritionService(db)
	trainingSvc := services.NewTrainingService(db)
	metricsSvc := services.NewMetricsService(db)
	assistantSvc := services.NewAssistantService()

	authCtl := controllers.NewAuthController(accountSvc)
	userCtl := controllers.NewUserController(accountSvc)
	nutritionCtl := controllers.NewNutritionController(nutritionSvc)
	trainingCtl := controllers.NewTrainingController(trainingSvc)
	metricsCtl := controllers.NewMetricsController(metricsSvc)
	assistantCtl := controllers.NewAssistantController(assistantSvc)

	r.GET("/", middlewares.OptionalAuth(), controllers.Home)

	accounts := r.Group("/accounts")
	{
		accounts.POST("/signup", authCtl.Signup)
		accounts.POST("/login", authCtl.Login)
		accounts.POST("/logout", middlewares.AuthRequired(), authCtl.Logout)
		accounts.GET("/profile", middlewares.AuthRequired(), userCtl.GetProfile)
		accounts.PUT("/profile", middlewares.AuthRequired(), userCtl.UpdateProfile)
	}

	// Anonymous users may view the nutrition dashboard; writes bounce to
	// login with a return path.
	r.GET("/nutrition", middlewares.OptionalAuth(), nutritionCtl.Dashboard)
	r.POST("/nutrition", middlewares.AuthOrLoginRedirect(), nutritionCtl.AddMeal)

	r.GET("/training", middlewares.AuthRequired(), trainingCtl.Dashboard)
	r.POST("/training", middlewares.AuthOrLoginRedirect(), trainingCtl.AddSession)

	r.GET("/metrics", middlewares.AuthRequired(), metricsCtl.Dashboard)

	r.POST("/assistant/chat", middlewares.AuthRequired(), assistantCtl.Chat)

	return r
}
