package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/types"
)

type QuoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quote *types.Quote) (*types.Quote, error)
	Update(ctx context.Context, tx *gorm.DB, quote *types.Quote) (*types.Quote, error)
	Delete(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) (*types.Quote, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) (bool, error)
	ListByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, offset, limit int) ([]*types.Quote, error)
	ListBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, offset, limit int) ([]*types.Quote, error)
	CountByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID) (int64, error)
	ListValidByWorkItemVisibleTo(ctx context.Context, tx *gorm.DB, workItemID, viewerID uuid.UUID) ([]*types.Quote, error)
}

type quoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
	repoLog := baseLog.With("repo", "QuoteRepo")
	return &quoteRepo{db: db, log: repoLog}
}

func (qr *quoteRepo) Create(ctx context.Context, tx *gorm.DB, quote *types.Quote) (*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if err := transaction.WithContext(ctx).Omit("WorkItem", "CreatedBy", "Supplier").Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (qr *quoteRepo) Update(ctx context.Context, tx *gorm.DB, quote *types.Quote) (*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if err := transaction.WithContext(ctx).Omit("WorkItem", "CreatedBy", "Supplier").Save(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (qr *quoteRepo) Delete(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", quoteID).
		Delete(&types.Quote{}).Error
}

func (qr *quoteRepo) GetByID(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) (*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.Quote
	if err := transaction.WithContext(ctx).
		Where("id = ?", quoteID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (qr *quoteRepo) ExistsByID(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Quote{}).
		Where("id = ?", quoteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (qr *quoteRepo) ListByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, offset, limit int) ([]*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.Quote
	if err := transaction.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quoteRepo) ListBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, offset, limit int) ([]*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.Quote
	if err := transaction.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quoteRepo) CountByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Quote{}).
		Where("created_by_id = ?", creatorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (qr *quoteRepo) CountBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Quote{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListValidByWorkItemVisibleTo returns the quotes that may feed a cost
// computation for viewerID: valid quotes on the work item that are PUBLIC or
// were created by the viewer.
func (qr *quoteRepo) ListValidByWorkItemVisibleTo(ctx context.Context, tx *gorm.DB, workItemID, viewerID uuid.UUID) ([]*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.Quote
	if err := transaction.WithContext(ctx).
		Where("work_item_id = ? AND valid = ?", workItemID, true).
		Where("domain = ? OR created_by_id = ?", types.DomainPublic, viewerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
