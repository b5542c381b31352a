package app

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:  middlewareset.Auth,
		UserHandler:     handlerset.User,
		ContactHandler:  handlerset.Contact,
		WorkItemHandler: handlerset.WorkItem,
		ProjectHandler:  handlerset.Project,
		EstimateHandler: handlerset.Estimate,
		QuoteHandler:    handlerset.Quote,
		AllowOrigins:    cfg.AllowOrigins,
	})
}
