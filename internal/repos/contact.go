package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/types"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error)
	Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error)
	Delete(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (*types.Contact, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Contact, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (bool, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (cr *contactRepo) Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (cr *contactRepo) Delete(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", contactID).
		Delete(&types.Contact{}).Error
}

func (cr *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ?", contactID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *contactRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Contact
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *contactRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *contactRepo) ExistsByID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("id = ?", contactID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
