package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

// AddLineInput carries the raw fields for a new estimate line. Strategy is
// the wire string and is parsed strictly.
type AddLineInput struct {
	GroupID    uuid.UUID
	WorkItemID uuid.UUID
	Quantity   float64
	Multiplier float64
	Strategy   string
}

// UpdateLineInput mutates quantity, multiplier or strategy; the computed
// cost is rederived on every call.
type UpdateLineInput struct {
	LineID     uuid.UUID
	Quantity   float64
	Multiplier float64
	Strategy   string
}

// EstimateService orchestrates the estimate aggregate. Every group and line
// mutation keeps both sides of the bidirectional graph consistent and runs
// inside one transaction with its parent; removed groups and lines are
// deleted from storage explicitly.
type EstimateService interface {
	CreateEstimate(ctx context.Context, projectID uuid.UUID, overallMultiplier float64) (*types.Estimate, error)
	GetEstimate(ctx context.Context, estimateID uuid.UUID) (*types.Estimate, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Estimate, error)
	UpdateOverallMultiplier(ctx context.Context, estimateID uuid.UUID, overallMultiplier float64) (*types.Estimate, error)
	DeleteEstimate(ctx context.Context, estimateID uuid.UUID) error

	AddGroup(ctx context.Context, estimateID uuid.UUID, name, description string) (*types.EstimateGroup, error)
	UpdateGroup(ctx context.Context, group *types.EstimateGroup) (*types.EstimateGroup, error)
	RemoveGroup(ctx context.Context, groupID uuid.UUID) error

	AddLine(ctx context.Context, input AddLineInput) (*types.EstimateLine, error)
	UpdateLine(ctx context.Context, input UpdateLineInput) (*types.EstimateLine, error)
	RemoveLine(ctx context.Context, lineID uuid.UUID) error
}

type estimateService struct {
	db           *gorm.DB
	log          *logger.Logger
	estimateRepo repos.EstimateRepo
	projectRepo  repos.ProjectRepo
	workItemRepo repos.WorkItemRepo
	quoteRepo    repos.QuoteRepo
}

func NewEstimateService(db *gorm.DB, log *logger.Logger, estimateRepo repos.EstimateRepo, projectRepo repos.ProjectRepo, workItemRepo repos.WorkItemRepo, quoteRepo repos.QuoteRepo) EstimateService {
	serviceLog := log.With("service", "EstimateService")
	return &estimateService{
		db:           db,
		log:          serviceLog,
		estimateRepo: estimateRepo,
		projectRepo:  projectRepo,
		workItemRepo: workItemRepo,
		quoteRepo:    quoteRepo,
	}
}

func (es *estimateService) CreateEstimate(ctx context.Context, projectID uuid.UUID, overallMultiplier float64) (*types.Estimate, error) {
	if overallMultiplier == 0 {
		overallMultiplier = 1.0
	}
	if overallMultiplier < 0 {
		return nil, apierr.Validation("overall multiplier must be positive, got %v", overallMultiplier)
	}
	var estimate *types.Estimate
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectExists, err := es.projectRepo.ExistsByID(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !projectExists {
			return apierr.NotFound("project %s not found", projectID)
		}
		created, err := es.estimateRepo.Create(ctx, tx, &types.Estimate{
			ProjectID:         projectID,
			OverallMultiplier: overallMultiplier,
		})
		if err != nil {
			return fmt.Errorf("creating estimate: %w", err)
		}
		estimate = created
		return nil
	}); err != nil {
		es.log.Warn("Estimate creation failed", "error", err)
		return nil, err
	}
	return estimate, nil
}

func (es *estimateService) GetEstimate(ctx context.Context, estimateID uuid.UUID) (*types.Estimate, error) {
	estimate, err := es.estimateRepo.GetWithGroups(ctx, nil, estimateID)
	if err != nil {
		return nil, fmt.Errorf("fetching estimate: %w", err)
	}
	if estimate == nil {
		return nil, apierr.NotFound("estimate %s not found", estimateID)
	}
	return estimate, nil
}

func (es *estimateService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Estimate, error) {
	return es.estimateRepo.ListByProject(ctx, nil, projectID)
}

// UpdateOverallMultiplier changes the estimate-wide scaling factor and
// recomputes every line's cost in the same transaction. Stale computed
// costs never survive a multiplier change.
func (es *estimateService) UpdateOverallMultiplier(ctx context.Context, estimateID uuid.UUID, overallMultiplier float64) (*types.Estimate, error) {
	if overallMultiplier <= 0 {
		return nil, apierr.Validation("overall multiplier must be positive, got %v", overallMultiplier)
	}
	var estimate *types.Estimate
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := es.estimateRepo.GetByID(ctx, tx, estimateID)
		if err != nil {
			return fmt.Errorf("fetching estimate: %w", err)
		}
		if found == nil {
			return apierr.Precondition("estimate %s is not persisted", estimateID)
		}
		found.OverallMultiplier = overallMultiplier
		if _, err := es.estimateRepo.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("updating estimate: %w", err)
		}
		builderID, err := es.resolveBuilder(ctx, tx, found.ProjectID)
		if err != nil {
			return err
		}
		lines, err := es.estimateRepo.ListLinesByEstimate(ctx, tx, estimateID)
		if err != nil {
			return fmt.Errorf("listing estimate lines: %w", err)
		}
		for _, line := range lines {
			if err := es.recomputeLine(ctx, tx, line, found.OverallMultiplier, builderID); err != nil {
				return err
			}
			if _, err := es.estimateRepo.UpdateLine(ctx, tx, line); err != nil {
				return fmt.Errorf("updating line %s: %w", line.ID, err)
			}
		}
		estimate = found
		return nil
	}); err != nil {
		es.log.Warn("Overall multiplier update failed", "error", err)
		return nil, err
	}
	return estimate, nil
}

// DeleteEstimate removes the aggregate bottom-up: lines, then groups, then
// the estimate, all in one transaction.
func (es *estimateService) DeleteEstimate(ctx context.Context, estimateID uuid.UUID) error {
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, es.estimateRepo.ExistsByID, estimateID, "estimate"); err != nil {
			return err
		}
		if err := es.estimateRepo.DeleteLinesByEstimate(ctx, tx, estimateID); err != nil {
			return fmt.Errorf("deleting estimate lines: %w", err)
		}
		if err := es.estimateRepo.DeleteGroupsByEstimate(ctx, tx, estimateID); err != nil {
			return fmt.Errorf("deleting estimate groups: %w", err)
		}
		return es.estimateRepo.Delete(ctx, tx, estimateID)
	}); err != nil {
		es.log.Warn("Estimate delete failed", "error", err)
		return err
	}
	return nil
}

func (es *estimateService) AddGroup(ctx context.Context, estimateID uuid.UUID, name, description string) (*types.EstimateGroup, error) {
	var group *types.EstimateGroup
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estimate, err := es.estimateRepo.GetByID(ctx, tx, estimateID)
		if err != nil {
			return fmt.Errorf("fetching estimate: %w", err)
		}
		if estimate == nil {
			return apierr.NotFound("estimate %s not found", estimateID)
		}
		g := &types.EstimateGroup{Name: name, Description: description}
		estimate.AddGroup(g)
		created, err := es.estimateRepo.CreateGroup(ctx, tx, g)
		if err != nil {
			return validateEntity(fmt.Errorf("creating estimate group: %w", err))
		}
		group = created
		return nil
	}); err != nil {
		es.log.Warn("Estimate group creation failed", "error", err)
		return nil, validateEntity(err)
	}
	return group, nil
}

func (es *estimateService) UpdateGroup(ctx context.Context, group *types.EstimateGroup) (*types.EstimateGroup, error) {
	if group == nil {
		return nil, apierr.Validation("no estimate group given")
	}
	var updated *types.EstimateGroup
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, es.estimateRepo.GroupExistsByID, group.ID, "estimate group"); err != nil {
			return err
		}
		result, err := es.estimateRepo.UpdateGroup(ctx, tx, group)
		if err != nil {
			return fmt.Errorf("updating estimate group: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		es.log.Warn("Estimate group update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

// RemoveGroup deletes the group and, transitively, its lines. This is the
// orphan-removal semantics made explicit.
func (es *estimateService) RemoveGroup(ctx context.Context, groupID uuid.UUID) error {
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, es.estimateRepo.GroupExistsByID, groupID, "estimate group"); err != nil {
			return err
		}
		if err := es.estimateRepo.DeleteLinesByGroup(ctx, tx, groupID); err != nil {
			return fmt.Errorf("deleting group lines: %w", err)
		}
		return es.estimateRepo.DeleteGroup(ctx, tx, groupID)
	}); err != nil {
		es.log.Warn("Estimate group removal failed", "error", err)
		return err
	}
	return nil
}

func (es *estimateService) AddLine(ctx context.Context, input AddLineInput) (*types.EstimateLine, error) {
	strategy, ok := types.ParseEstimateLineStrategy(input.Strategy)
	if !ok {
		return nil, apierr.Validation("unknown estimate line strategy %q", input.Strategy)
	}
	if input.Quantity < 0 {
		return nil, apierr.Validation("quantity must not be negative, got %v", input.Quantity)
	}
	multiplier := input.Multiplier
	if multiplier == 0 {
		multiplier = 1.0
	}
	if multiplier < 0 {
		return nil, apierr.Validation("multiplier must be positive, got %v", multiplier)
	}

	var line *types.EstimateLine
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := es.estimateRepo.GetGroupByID(ctx, tx, input.GroupID)
		if err != nil {
			return fmt.Errorf("fetching estimate group: %w", err)
		}
		if group == nil {
			return apierr.NotFound("estimate group %s not found", input.GroupID)
		}
		estimate, err := es.estimateRepo.GetByID(ctx, tx, group.EstimateID)
		if err != nil {
			return fmt.Errorf("fetching estimate: %w", err)
		}
		if estimate == nil {
			return apierr.NotFound("estimate %s not found", group.EstimateID)
		}
		itemExists, err := es.workItemRepo.ExistsByID(ctx, tx, input.WorkItemID)
		if err != nil {
			return fmt.Errorf("checking work item: %w", err)
		}
		if !itemExists {
			return apierr.NotFound("work item %s not found", input.WorkItemID)
		}

		l := &types.EstimateLine{
			WorkItemID: input.WorkItemID,
			Quantity:   input.Quantity,
			Strategy:   strategy,
			Multiplier: multiplier,
		}
		group.AddLine(l)
		builderID, err := es.resolveBuilder(ctx, tx, estimate.ProjectID)
		if err != nil {
			return err
		}
		if err := es.recomputeLine(ctx, tx, l, estimate.OverallMultiplier, builderID); err != nil {
			return err
		}
		created, err := es.estimateRepo.CreateLine(ctx, tx, l)
		if err != nil {
			return fmt.Errorf("creating estimate line: %w", err)
		}
		line = created
		return nil
	}); err != nil {
		es.log.Warn("Estimate line creation failed", "error", err)
		return nil, err
	}
	return line, nil
}

func (es *estimateService) UpdateLine(ctx context.Context, input UpdateLineInput) (*types.EstimateLine, error) {
	strategy, ok := types.ParseEstimateLineStrategy(input.Strategy)
	if !ok {
		return nil, apierr.Validation("unknown estimate line strategy %q", input.Strategy)
	}
	if input.Quantity < 0 {
		return nil, apierr.Validation("quantity must not be negative, got %v", input.Quantity)
	}
	if input.Multiplier <= 0 {
		return nil, apierr.Validation("multiplier must be positive, got %v", input.Multiplier)
	}
	var line *types.EstimateLine
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := es.estimateRepo.GetLineByID(ctx, tx, input.LineID)
		if err != nil {
			return fmt.Errorf("fetching estimate line: %w", err)
		}
		if found == nil {
			return apierr.Precondition("estimate line %s is not persisted", input.LineID)
		}
		estimate, err := es.estimateRepo.GetByID(ctx, tx, found.EstimateID)
		if err != nil {
			return fmt.Errorf("fetching estimate: %w", err)
		}
		if estimate == nil {
			return apierr.NotFound("estimate %s not found", found.EstimateID)
		}
		found.Quantity = input.Quantity
		found.Multiplier = input.Multiplier
		found.Strategy = strategy
		builderID, err := es.resolveBuilder(ctx, tx, estimate.ProjectID)
		if err != nil {
			return err
		}
		if err := es.recomputeLine(ctx, tx, found, estimate.OverallMultiplier, builderID); err != nil {
			return err
		}
		updated, err := es.estimateRepo.UpdateLine(ctx, tx, found)
		if err != nil {
			return fmt.Errorf("updating estimate line: %w", err)
		}
		line = updated
		return nil
	}); err != nil {
		es.log.Warn("Estimate line update failed", "error", err)
		return nil, err
	}
	return line, nil
}

func (es *estimateService) RemoveLine(ctx context.Context, lineID uuid.UUID) error {
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, es.estimateRepo.LineExistsByID, lineID, "estimate line"); err != nil {
			return err
		}
		return es.estimateRepo.DeleteLine(ctx, tx, lineID)
	}); err != nil {
		es.log.Warn("Estimate line removal failed", "error", err)
		return err
	}
	return nil
}

func (es *estimateService) resolveBuilder(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (uuid.UUID, error) {
	project, err := es.projectRepo.GetByID(ctx, tx, projectID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("fetching project: %w", err)
	}
	if project == nil {
		return uuid.Nil, apierr.NotFound("project %s not found", projectID)
	}
	return project.BuilderID, nil
}

// recomputeLine rederives the line's cost from the quotes visible to the
// project's builder. Quote prices feed the strategy; quantity and both
// multipliers scale the result.
func (es *estimateService) recomputeLine(ctx context.Context, tx *gorm.DB, line *types.EstimateLine, overallMultiplier float64, builderID uuid.UUID) error {
	quotes, err := es.quoteRepo.ListValidByWorkItemVisibleTo(ctx, tx, line.WorkItemID, builderID)
	if err != nil {
		return fmt.Errorf("listing quotes for work item %s: %w", line.WorkItemID, err)
	}
	prices := make([]decimal.Decimal, 0, len(quotes))
	for _, q := range quotes {
		prices = append(prices, q.UnitPrice)
	}
	line.ComputedCost = types.ComputeLineCost(line.Strategy, line.Quantity, prices, line.Multiplier, overallMultiplier)
	return nil
}
