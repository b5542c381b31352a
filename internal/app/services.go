package app

import (
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/services"
)

type Services struct {
	Contact  services.ContactService
	User     services.UserService
	WorkItem services.WorkItemService
	Project  services.ProjectService
	Estimate services.EstimateService
	Quote    services.QuoteService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Contact:  services.NewContactService(db, log, reposet.Contact),
		User:     services.NewUserService(db, log, reposet.User, reposet.Contact),
		WorkItem: services.NewWorkItemService(db, log, reposet.WorkItem, reposet.User),
		Project:  services.NewProjectService(db, log, reposet.Project, reposet.User),
		Estimate: services.NewEstimateService(db, log, reposet.Estimate, reposet.Project, reposet.WorkItem, reposet.Quote),
		Quote:    services.NewQuoteService(db, log, reposet.Quote, reposet.WorkItem, reposet.User),
	}
}
