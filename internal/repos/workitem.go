package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/types"
)

type WorkItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.WorkItem) (*types.WorkItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.WorkItem) (*types.WorkItem, error)
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.WorkItem, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WorkItem, error)
	ListByDomain(ctx context.Context, tx *gorm.DB, domain types.Domain) ([]*types.WorkItem, error)
	ListByUserAndDomain(ctx context.Context, tx *gorm.DB, userID uuid.UUID, domain types.Domain) ([]*types.WorkItem, error)
	GetByUserAndCode(ctx context.Context, tx *gorm.DB, userID uuid.UUID, code string) (*types.WorkItem, error)
}

type workItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkItemRepo(db *gorm.DB, baseLog *logger.Logger) WorkItemRepo {
	repoLog := baseLog.With("repo", "WorkItemRepo")
	return &workItemRepo{db: db, log: repoLog}
}

func (wr *workItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.WorkItem) (*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (wr *workItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.WorkItem) (*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (wr *workItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.WorkItem{}).Error
}

func (wr *workItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.WorkItem
	if err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (wr *workItemRepo) ExistsByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WorkItem{}).
		Where("id = ?", itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (wr *workItemRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WorkItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workItemRepo) ListByDomain(ctx context.Context, tx *gorm.DB, domain types.Domain) ([]*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WorkItem
	if err := transaction.WithContext(ctx).
		Where("domain = ?", domain).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workItemRepo) ListByUserAndDomain(ctx context.Context, tx *gorm.DB, userID uuid.UUID, domain types.Domain) ([]*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WorkItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND domain = ?", userID, domain).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workItemRepo) GetByUserAndCode(ctx context.Context, tx *gorm.DB, userID uuid.UUID, code string) (*types.WorkItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.WorkItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
