package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/handlers"
	"github.com/buildvance/estimator-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	ContactHandler  *handlers.ContactHandler
	WorkItemHandler *handlers.WorkItemHandler
	ProjectHandler  *handlers.ProjectHandler
	EstimateHandler *handlers.EstimateHandler
	QuoteHandler    *handlers.QuoteHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/register", cfg.UserHandler.Register)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Users
	api.GET("/users/:id", cfg.UserHandler.GetByID)
	api.GET("/users", cfg.UserHandler.GetByUsername)
	api.DELETE("/users/:id", cfg.UserHandler.Delete)

	// Contacts
	api.POST("/contacts", cfg.ContactHandler.Save)
	api.GET("/contacts/:id", cfg.ContactHandler.GetByID)
	api.GET("/contacts", cfg.ContactHandler.GetByEmail)
	api.PUT("/contacts/:id", cfg.ContactHandler.Update)
	api.DELETE("/contacts/:id", cfg.ContactHandler.Delete)

	// Work items
	api.POST("/work-items", cfg.WorkItemHandler.Create)
	api.GET("/work-items", cfg.WorkItemHandler.ListByDomain)
	api.GET("/work-items/:id", cfg.WorkItemHandler.GetByID)
	api.PUT("/work-items/:id", cfg.WorkItemHandler.Update)
	api.DELETE("/work-items/:id", cfg.WorkItemHandler.Delete)
	api.GET("/users/:id/work-items", cfg.WorkItemHandler.ListByUser)

	// Projects
	api.POST("/projects", cfg.ProjectHandler.Create)
	api.GET("/projects/:id", cfg.ProjectHandler.GetByID)
	api.PUT("/projects/:id", cfg.ProjectHandler.Update)
	api.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	api.GET("/users/:id/projects", cfg.ProjectHandler.ListByUser)
	api.GET("/projects/:id/estimates", cfg.EstimateHandler.ListByProject)

	// Estimates
	api.POST("/estimates", cfg.EstimateHandler.Create)
	api.GET("/estimates/:id", cfg.EstimateHandler.Get)
	api.PATCH("/estimates/:id/multiplier", cfg.EstimateHandler.UpdateOverallMultiplier)
	api.DELETE("/estimates/:id", cfg.EstimateHandler.Delete)
	api.POST("/estimates/:id/groups", cfg.EstimateHandler.AddGroup)
	api.DELETE("/estimates/:id/groups/:groupId", cfg.EstimateHandler.RemoveGroup)
	api.POST("/estimates/:id/groups/:groupId/lines", cfg.EstimateHandler.AddLine)
	api.PUT("/estimates/:id/lines/:lineId", cfg.EstimateHandler.UpdateLine)
	api.DELETE("/estimates/:id/lines/:lineId", cfg.EstimateHandler.RemoveLine)

	// Quotes
	api.POST("/quotes", cfg.QuoteHandler.Create)
	api.GET("/quotes/:id", cfg.QuoteHandler.GetByID)
	api.PUT("/quotes/:id", cfg.QuoteHandler.Update)
	api.DELETE("/quotes/:id", cfg.QuoteHandler.Delete)
	api.GET("/users/:id/quotes", cfg.QuoteHandler.ListByUser)

	return router
}
