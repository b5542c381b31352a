package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

// CreateWorkItemInput carries the raw request fields. Domain is the wire
// string; an invalid or missing value falls back to PUBLIC, and a blank
// group name falls back to the sentinel.
type CreateWorkItemInput struct {
	UserID           uuid.UUID
	Code             string
	Name             string
	Description      string
	Optional         bool
	Domain           string
	DefaultGroupName string
}

type WorkItemService interface {
	Create(ctx context.Context, input CreateWorkItemInput) (*types.WorkItem, error)
	Update(ctx context.Context, item *types.WorkItem) (*types.WorkItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*types.WorkItem, error)
	GetByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*types.WorkItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.WorkItem, error)
	ListByDomain(ctx context.Context, domain string) ([]*types.WorkItem, error)
	ListByUserAndDomain(ctx context.Context, userID uuid.UUID, domain string) ([]*types.WorkItem, error)
}

type workItemService struct {
	db           *gorm.DB
	log          *logger.Logger
	workItemRepo repos.WorkItemRepo
	userRepo     repos.UserRepo
}

func NewWorkItemService(db *gorm.DB, log *logger.Logger, workItemRepo repos.WorkItemRepo, userRepo repos.UserRepo) WorkItemService {
	serviceLog := log.With("service", "WorkItemService")
	return &workItemService{db: db, log: serviceLog, workItemRepo: workItemRepo, userRepo: userRepo}
}

func (ws *workItemService) Create(ctx context.Context, input CreateWorkItemInput) (*types.WorkItem, error) {
	item := &types.WorkItem{
		Code:             strings.TrimSpace(input.Code),
		Name:             strings.TrimSpace(input.Name),
		Description:      input.Description,
		Optional:         input.Optional,
		UserID:           input.UserID,
		DefaultGroupName: input.DefaultGroupName,
		Domain:           types.ParseDomain(input.Domain),
	}
	item.Normalize()
	if err := validateEntity(item.Validate()); err != nil {
		return nil, err
	}

	var created *types.WorkItem
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userExists, err := ws.userRepo.ExistsByID(ctx, tx, input.UserID)
		if err != nil {
			return fmt.Errorf("checking owning user: %w", err)
		}
		if !userExists {
			return apierr.NotFound("user %s not found", input.UserID)
		}
		dup, err := ws.workItemRepo.GetByUserAndCode(ctx, tx, input.UserID, item.Code)
		if err != nil {
			return fmt.Errorf("checking work item code: %w", err)
		}
		if dup != nil {
			return apierr.Validation("work item code %q already exists for user %s", item.Code, input.UserID)
		}
		result, err := ws.workItemRepo.Create(ctx, tx, item)
		if err != nil {
			return fmt.Errorf("creating work item: %w", err)
		}
		created = result
		return nil
	}); err != nil {
		ws.log.Warn("Work item creation failed", "error", err)
		return nil, err
	}
	return created, nil
}

func (ws *workItemService) Update(ctx context.Context, item *types.WorkItem) (*types.WorkItem, error) {
	if item == nil {
		return nil, apierr.Validation("no work item given")
	}
	item.Normalize()
	if err := validateEntity(item.Validate()); err != nil {
		return nil, err
	}
	var updated *types.WorkItem
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, ws.workItemRepo.ExistsByID, item.ID, "work item"); err != nil {
			return err
		}
		result, err := ws.workItemRepo.Update(ctx, tx, item)
		if err != nil {
			return fmt.Errorf("updating work item: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		ws.log.Warn("Work item update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (ws *workItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, ws.workItemRepo.ExistsByID, itemID, "work item"); err != nil {
			return err
		}
		return ws.workItemRepo.Delete(ctx, tx, itemID)
	}); err != nil {
		ws.log.Warn("Work item delete failed", "error", err)
		return err
	}
	return nil
}

func (ws *workItemService) GetByID(ctx context.Context, itemID uuid.UUID) (*types.WorkItem, error) {
	item, err := ws.workItemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("fetching work item: %w", err)
	}
	if item == nil {
		return nil, apierr.NotFound("work item %s not found", itemID)
	}
	return item, nil
}

// GetByUserAndCode rejects blank code before touching storage.
func (ws *workItemService) GetByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*types.WorkItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apierr.Validation("work item code must not be blank")
	}
	item, err := ws.workItemRepo.GetByUserAndCode(ctx, nil, userID, code)
	if err != nil {
		return nil, fmt.Errorf("fetching work item by code: %w", err)
	}
	if item == nil {
		return nil, apierr.NotFound("work item with code %q not found for user %s", code, userID)
	}
	return item, nil
}

func (ws *workItemService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.WorkItem, error) {
	return ws.workItemRepo.ListByUser(ctx, nil, userID)
}

func (ws *workItemService) ListByDomain(ctx context.Context, domain string) ([]*types.WorkItem, error) {
	return ws.workItemRepo.ListByDomain(ctx, nil, types.ParseDomain(domain))
}

func (ws *workItemService) ListByUserAndDomain(ctx context.Context, userID uuid.UUID, domain string) ([]*types.WorkItem, error) {
	return ws.workItemRepo.ListByUserAndDomain(ctx, nil, userID, types.ParseDomain(domain))
}
