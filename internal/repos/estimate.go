package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/types"
)

// EstimateRepo persists the whole aggregate: estimates, groups and lines.
// Orphan removal is explicit here (DeleteLinesByGroup, DeleteGroupsByEstimate)
// rather than delegated to the storage engine.
type EstimateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, estimate *types.Estimate) (*types.Estimate, error)
	Update(ctx context.Context, tx *gorm.DB, estimate *types.Estimate) (*types.Estimate, error)
	Delete(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (*types.Estimate, error)
	GetWithGroups(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (*types.Estimate, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (bool, error)
	ListByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Estimate, error)

	CreateGroup(ctx context.Context, tx *gorm.DB, group *types.EstimateGroup) (*types.EstimateGroup, error)
	UpdateGroup(ctx context.Context, tx *gorm.DB, group *types.EstimateGroup) (*types.EstimateGroup, error)
	DeleteGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
	GetGroupByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.EstimateGroup, error)
	GroupExistsByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (bool, error)
	DeleteGroupsByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error

	CreateLine(ctx context.Context, tx *gorm.DB, line *types.EstimateLine) (*types.EstimateLine, error)
	UpdateLine(ctx context.Context, tx *gorm.DB, line *types.EstimateLine) (*types.EstimateLine, error)
	DeleteLine(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) error
	GetLineByID(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) (*types.EstimateLine, error)
	LineExistsByID(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) (bool, error)
	ListLinesByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) ([]*types.EstimateLine, error)
	DeleteLinesByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
	DeleteLinesByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error
}

type estimateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEstimateRepo(db *gorm.DB, baseLog *logger.Logger) EstimateRepo {
	repoLog := baseLog.With("repo", "EstimateRepo")
	return &estimateRepo{db: db, log: repoLog}
}

func (er *estimateRepo) Create(ctx context.Context, tx *gorm.DB, estimate *types.Estimate) (*types.Estimate, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Project", "Groups").Create(estimate).Error; err != nil {
		return nil, err
	}
	return estimate, nil
}

func (er *estimateRepo) Update(ctx context.Context, tx *gorm.DB, estimate *types.Estimate) (*types.Estimate, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Project", "Groups").Save(estimate).Error; err != nil {
		return nil, err
	}
	return estimate, nil
}

func (er *estimateRepo) Delete(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", estimateID).
		Delete(&types.Estimate{}).Error
}

func (er *estimateRepo) GetByID(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (*types.Estimate, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Estimate
	if err := transaction.WithContext(ctx).
		Where("id = ?", estimateID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estimateRepo) GetWithGroups(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (*types.Estimate, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Estimate
	if err := transaction.WithContext(ctx).
		Preload("Groups").
		Preload("Groups.Lines").
		Where("id = ?", estimateID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estimateRepo) ExistsByID(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Estimate{}).
		Where("id = ?", estimateID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *estimateRepo) ListByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Estimate, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Estimate
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *estimateRepo) CreateGroup(ctx context.Context, tx *gorm.DB, group *types.EstimateGroup) (*types.EstimateGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Estimate", "Lines").Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (er *estimateRepo) UpdateGroup(ctx context.Context, tx *gorm.DB, group *types.EstimateGroup) (*types.EstimateGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Estimate", "Lines").Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (er *estimateRepo) DeleteGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", groupID).
		Delete(&types.EstimateGroup{}).Error
}

func (er *estimateRepo) GetGroupByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.EstimateGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.EstimateGroup
	if err := transaction.WithContext(ctx).
		Where("id = ?", groupID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estimateRepo) GroupExistsByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EstimateGroup{}).
		Where("id = ?", groupID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *estimateRepo) DeleteGroupsByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Delete(&types.EstimateGroup{}).Error
}

func (er *estimateRepo) CreateLine(ctx context.Context, tx *gorm.DB, line *types.EstimateLine) (*types.EstimateLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Group", "WorkItem").Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (er *estimateRepo) UpdateLine(ctx context.Context, tx *gorm.DB, line *types.EstimateLine) (*types.EstimateLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit("Group", "WorkItem").Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (er *estimateRepo) DeleteLine(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", lineID).
		Delete(&types.EstimateLine{}).Error
}

func (er *estimateRepo) GetLineByID(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) (*types.EstimateLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.EstimateLine
	if err := transaction.WithContext(ctx).
		Where("id = ?", lineID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estimateRepo) LineExistsByID(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EstimateLine{}).
		Where("id = ?", lineID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *estimateRepo) ListLinesByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) ([]*types.EstimateLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.EstimateLine
	if err := transaction.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *estimateRepo) DeleteLinesByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&types.EstimateLine{}).Error
}

func (er *estimateRepo) DeleteLinesByEstimate(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Delete(&types.EstimateLine{}).Error
}
