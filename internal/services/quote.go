package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

// QuotePage is one page of quotes, newest first.
type QuotePage struct {
	Items      []*types.Quote `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	HasNext    bool           `json:"has_next"`
}

// CreateQuoteInput carries the raw request fields. Unit is parsed strictly,
// domain leniently (fallback PUBLIC).
type CreateQuoteInput struct {
	WorkItemID  uuid.UUID
	CreatedByID uuid.UUID
	SupplierID  uuid.UUID
	Unit        string
	UnitPrice   decimal.Decimal
	Currency    string
	Domain      string
	Location    types.Address
}

type QuoteService interface {
	Create(ctx context.Context, input CreateQuoteInput) (*types.Quote, error)
	Update(ctx context.Context, quote *types.Quote) (*types.Quote, error)
	Delete(ctx context.Context, quoteID uuid.UUID) error
	GetByID(ctx context.Context, quoteID uuid.UUID) (*types.Quote, error)
	GetQuotesByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) (*QuotePage, error)
	GetQuotesBySupplier(ctx context.Context, supplierID uuid.UUID, page, pageSize int) (*QuotePage, error)
	CountByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

type quoteService struct {
	db           *gorm.DB
	log          *logger.Logger
	quoteRepo    repos.QuoteRepo
	workItemRepo repos.WorkItemRepo
	userRepo     repos.UserRepo
}

func NewQuoteService(db *gorm.DB, log *logger.Logger, quoteRepo repos.QuoteRepo, workItemRepo repos.WorkItemRepo, userRepo repos.UserRepo) QuoteService {
	serviceLog := log.With("service", "QuoteService")
	return &quoteService{db: db, log: serviceLog, quoteRepo: quoteRepo, workItemRepo: workItemRepo, userRepo: userRepo}
}

const defaultQuotePageSize = 20

func (qs *quoteService) Create(ctx context.Context, input CreateQuoteInput) (*types.Quote, error) {
	unit, ok := types.ParseUnitOfMeasure(input.Unit)
	if !ok {
		return nil, apierr.Validation("unknown unit of measure %q", input.Unit)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if len(currency) != 3 {
		return nil, apierr.Validation("currency must be a 3-letter ISO code, got %q", input.Currency)
	}
	if input.UnitPrice.IsNegative() {
		return nil, apierr.Validation("unit price must not be negative, got %s", input.UnitPrice)
	}

	var quote *types.Quote
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemExists, err := qs.workItemRepo.ExistsByID(ctx, tx, input.WorkItemID)
		if err != nil {
			return fmt.Errorf("checking work item: %w", err)
		}
		if !itemExists {
			return apierr.NotFound("work item %s not found", input.WorkItemID)
		}
		creatorExists, err := qs.userRepo.ExistsByID(ctx, tx, input.CreatedByID)
		if err != nil {
			return fmt.Errorf("checking creator: %w", err)
		}
		if !creatorExists {
			return apierr.NotFound("creator user %s not found", input.CreatedByID)
		}
		if input.SupplierID != input.CreatedByID {
			supplierExists, err := qs.userRepo.ExistsByID(ctx, tx, input.SupplierID)
			if err != nil {
				return fmt.Errorf("checking supplier: %w", err)
			}
			if !supplierExists {
				return apierr.NotFound("supplier user %s not found", input.SupplierID)
			}
		}
		created, err := qs.quoteRepo.Create(ctx, tx, &types.Quote{
			WorkItemID:  input.WorkItemID,
			CreatedByID: input.CreatedByID,
			SupplierID:  input.SupplierID,
			Unit:        unit,
			UnitPrice:   input.UnitPrice.Round(2),
			Currency:    currency,
			Domain:      types.ParseDomain(input.Domain),
			Location:    input.Location,
			Valid:       true,
		})
		if err != nil {
			return fmt.Errorf("creating quote: %w", err)
		}
		quote = created
		return nil
	}); err != nil {
		qs.log.Warn("Quote creation failed", "error", err)
		return nil, err
	}
	return quote, nil
}

func (qs *quoteService) Update(ctx context.Context, quote *types.Quote) (*types.Quote, error) {
	if quote == nil {
		return nil, apierr.Validation("no quote given")
	}
	var updated *types.Quote
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, qs.quoteRepo.ExistsByID, quote.ID, "quote"); err != nil {
			return err
		}
		result, err := qs.quoteRepo.Update(ctx, tx, quote)
		if err != nil {
			return fmt.Errorf("updating quote: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		qs.log.Warn("Quote update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (qs *quoteService) Delete(ctx context.Context, quoteID uuid.UUID) error {
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, qs.quoteRepo.ExistsByID, quoteID, "quote"); err != nil {
			return err
		}
		return qs.quoteRepo.Delete(ctx, tx, quoteID)
	}); err != nil {
		qs.log.Warn("Quote delete failed", "error", err)
		return err
	}
	return nil
}

func (qs *quoteService) GetByID(ctx context.Context, quoteID uuid.UUID) (*types.Quote, error) {
	quote, err := qs.quoteRepo.GetByID(ctx, nil, quoteID)
	if err != nil {
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if quote == nil {
		return nil, apierr.NotFound("quote %s not found", quoteID)
	}
	return quote, nil
}

func (qs *quoteService) GetQuotesByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) (*QuotePage, error) {
	return qs.getPage(ctx, creatorID, page, pageSize, qs.quoteRepo.ListByCreator, qs.quoteRepo.CountByCreator)
}

func (qs *quoteService) GetQuotesBySupplier(ctx context.Context, supplierID uuid.UUID, page, pageSize int) (*QuotePage, error) {
	return qs.getPage(ctx, supplierID, page, pageSize, qs.quoteRepo.ListBySupplier, qs.quoteRepo.CountBySupplier)
}

func (qs *quoteService) CountByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	return qs.quoteRepo.CountByCreator(ctx, nil, creatorID)
}

func (qs *quoteService) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	return qs.quoteRepo.CountBySupplier(ctx, nil, supplierID)
}

// getPage assembles one page; pages are 1-based.
func (qs *quoteService) getPage(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
	list func(context.Context, *gorm.DB, uuid.UUID, int, int) ([]*types.Quote, error),
	count func(context.Context, *gorm.DB, uuid.UUID) (int64, error),
) (*QuotePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultQuotePageSize
	}
	offset := (page - 1) * pageSize

	items, err := list(ctx, nil, userID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	total, err := count(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}
	return &QuotePage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		HasNext:    int64(offset+len(items)) < total,
	}, nil
}
