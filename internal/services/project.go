package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

type ProjectService interface {
	Create(ctx context.Context, builderID, ownerID uuid.UUID, location types.Address) (*types.Project, error)
	Update(ctx context.Context, project *types.Project) (*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
	GetByID(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
	ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]*types.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Project, error)
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	userRepo    repos.UserRepo
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo, userRepo repos.UserRepo) ProjectService {
	serviceLog := log.With("service", "ProjectService")
	return &projectService{db: db, log: serviceLog, projectRepo: projectRepo, userRepo: userRepo}
}

// Create resolves both users before building the project. Builder and owner
// may be the same person. The estimate collection starts empty and is only
// ever populated through the estimate service.
func (ps *projectService) Create(ctx context.Context, builderID, ownerID uuid.UUID, location types.Address) (*types.Project, error) {
	var project *types.Project
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		builderExists, err := ps.userRepo.ExistsByID(ctx, tx, builderID)
		if err != nil {
			return fmt.Errorf("checking builder: %w", err)
		}
		if !builderExists {
			return apierr.NotFound("builder user %s not found", builderID)
		}
		if ownerID != builderID {
			ownerExists, err := ps.userRepo.ExistsByID(ctx, tx, ownerID)
			if err != nil {
				return fmt.Errorf("checking owner: %w", err)
			}
			if !ownerExists {
				return apierr.NotFound("owner user %s not found", ownerID)
			}
		}
		created, err := ps.projectRepo.Create(ctx, tx, &types.Project{
			BuilderID: builderID,
			OwnerID:   ownerID,
			Location:  location,
		})
		if err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		project = created
		return nil
	}); err != nil {
		ps.log.Warn("Project creation failed", "error", err)
		return nil, err
	}
	return project, nil
}

func (ps *projectService) Update(ctx context.Context, project *types.Project) (*types.Project, error) {
	if project == nil {
		return nil, apierr.Validation("no project given")
	}
	var updated *types.Project
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, ps.projectRepo.ExistsByID, project.ID, "project"); err != nil {
			return err
		}
		result, err := ps.projectRepo.Update(ctx, tx, project)
		if err != nil {
			return fmt.Errorf("updating project: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		ps.log.Warn("Project update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (ps *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, ps.projectRepo.ExistsByID, projectID, "project"); err != nil {
			return err
		}
		return ps.projectRepo.Delete(ctx, tx, projectID)
	}); err != nil {
		ps.log.Warn("Project delete failed", "error", err)
		return err
	}
	return nil
}

func (ps *projectService) GetByID(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	if project == nil {
		return nil, apierr.NotFound("project %s not found", projectID)
	}
	return project, nil
}

func (ps *projectService) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]*types.Project, error) {
	return ps.projectRepo.ListByBuilder(ctx, nil, builderID)
}

func (ps *projectService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Project, error) {
	return ps.projectRepo.ListByOwner(ctx, nil, ownerID)
}
