package app

import (
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
)

type Repos struct {
	Contact  repos.ContactRepo
	User     repos.UserRepo
	WorkItem repos.WorkItemRepo
	Project  repos.ProjectRepo
	Estimate repos.EstimateRepo
	Quote    repos.QuoteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Contact:  repos.NewContactRepo(db, log),
		User:     repos.NewUserRepo(db, log),
		WorkItem: repos.NewWorkItemRepo(db, log),
		Project:  repos.NewProjectRepo(db, log),
		Estimate: repos.NewEstimateRepo(db, log),
		Quote:    repos.NewQuoteRepo(db, log),
	}
}
