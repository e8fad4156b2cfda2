package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/tabsplit/tabsplit-backend/config"
	"github.com/tabsplit/tabsplit-backend/handlers"
	"github.com/tabsplit/tabsplit-backend/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config            *config.Config
	BillHandler       *handlers.BillHandler
	UserHandler       *handlers.UserHandler
	SettlementHandler *handlers.SettlementHandler
	HealthHandler     *handlers.HealthHandler
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		billRoutes := v1.Group("/bills")
		{
			billRoutes.GET("", deps.BillHandler.ListBillsHandler)
			billRoutes.POST("", deps.BillHandler.CreateBillHandler)
			billRoutes.GET("/:id", deps.BillHandler.GetBillHandler)
			billRoutes.PUT("/:id", deps.BillHandler.UpdateBillHandler)
			billRoutes.DELETE("/:id", deps.BillHandler.DeleteBillHandler)

			// Settlement status lives under its owning bill
			billRoutes.PUT("/:id/settlements", deps.SettlementHandler.UpdateSettlementStatusHandler)
		}

		userRoutes := v1.Group("/users")
		{
			userRoutes.GET("", deps.UserHandler.ListUsersHandler)
			userRoutes.POST("", deps.UserHandler.CreateUserHandler)
			userRoutes.GET("/:id", deps.UserHandler.GetUserHandler)
			userRoutes.PUT("/:id", deps.UserHandler.UpdateUserHandler)
			userRoutes.DELETE("/:id", deps.UserHandler.DeleteUserHandler)

			userRoutes.GET("/:id/settlements", deps.SettlementHandler.ListUserSettlementsHandler)
		}
	}

	return r
}
