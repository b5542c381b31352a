package app

import (
	"github.com/buildvance/estimator-backend/internal/handlers"
	"github.com/buildvance/estimator-backend/internal/logger"
)

type Handlers struct {
	User     *handlers.UserHandler
	Contact  *handlers.ContactHandler
	WorkItem *handlers.WorkItemHandler
	Project  *handlers.ProjectHandler
	Estimate *handlers.EstimateHandler
	Quote    *handlers.QuoteHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		User:     handlers.NewUserHandler(serviceset.User),
		Contact:  handlers.NewContactHandler(serviceset.Contact),
		WorkItem: handlers.NewWorkItemHandler(serviceset.WorkItem),
		Project:  handlers.NewProjectHandler(serviceset.Project),
		Estimate: handlers.NewEstimateHandler(serviceset.Estimate),
		Quote:    handlers.NewQuoteHandler(serviceset.Quote),
	}
}
