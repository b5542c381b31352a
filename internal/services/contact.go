package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

type ContactService interface {
	Save(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	Update(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	Delete(ctx context.Context, contactID uuid.UUID) error
	GetByID(ctx context.Context, contactID uuid.UUID) (*types.Contact, error)
	GetByEmail(ctx context.Context, email string) (*types.Contact, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{db: db, log: serviceLog, contactRepo: contactRepo}
}

// Save persists a new contact. A contact that already exists in storage
// cannot be re-saved, and the email must be unique.
func (cs *contactService) Save(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if contact == nil {
		return nil, apierr.Validation("no contact given")
	}
	if err := validateEntity(contact.Validate()); err != nil {
		return nil, err
	}
	var saved *types.Contact
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contact.ID != uuid.Nil {
			exists, err := cs.contactRepo.ExistsByID(ctx, tx, contact.ID)
			if err != nil {
				return fmt.Errorf("checking contact existence: %w", err)
			}
			if exists {
				return apierr.Precondition("contact %s is already persisted, cannot re-save", contact.ID)
			}
		}
		emailTaken, err := cs.contactRepo.EmailExists(ctx, tx, contact.Email)
		if err != nil {
			return fmt.Errorf("checking contact email: %w", err)
		}
		if emailTaken {
			return apierr.Validation("contact email %q already exists", contact.Email)
		}
		created, err := cs.contactRepo.Create(ctx, tx, contact)
		if err != nil {
			return fmt.Errorf("creating contact: %w", err)
		}
		saved = created
		return nil
	}); err != nil {
		cs.log.Warn("Contact save failed", "error", err)
		return nil, err
	}
	return saved, nil
}

func (cs *contactService) Update(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if contact == nil {
		return nil, apierr.Validation("no contact given")
	}
	if err := validateEntity(contact.Validate()); err != nil {
		return nil, err
	}
	var updated *types.Contact
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, cs.contactRepo.ExistsByID, contact.ID, "contact"); err != nil {
			return err
		}
		result, err := cs.contactRepo.Update(ctx, tx, contact)
		if err != nil {
			return fmt.Errorf("updating contact: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		cs.log.Warn("Contact update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (cs *contactService) Delete(ctx context.Context, contactID uuid.UUID) error {
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, cs.contactRepo.ExistsByID, contactID, "contact"); err != nil {
			return err
		}
		return cs.contactRepo.Delete(ctx, tx, contactID)
	}); err != nil {
		cs.log.Warn("Contact delete failed", "error", err)
		return err
	}
	return nil
}

func (cs *contactService) GetByID(ctx context.Context, contactID uuid.UUID) (*types.Contact, error) {
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetching contact: %w", err)
	}
	if contact == nil {
		return nil, apierr.NotFound("contact %s not found", contactID)
	}
	return contact, nil
}

func (cs *contactService) GetByEmail(ctx context.Context, email string) (*types.Contact, error) {
	contact, err := cs.contactRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("fetching contact by email: %w", err)
	}
	if contact == nil {
		return nil, apierr.NotFound("contact with email %q not found", email)
	}
	return contact, nil
}

func (cs *contactService) EmailExists(ctx context.Context, email string) (bool, error) {
	return cs.contactRepo.EmailExists(ctx, nil, email)
}

// requirePersisted enforces the persisted precondition shared by every
// update/delete operation: the target must carry an identifier that exists
// in storage.
func requirePersisted(ctx context.Context, tx *gorm.DB, existsByID func(context.Context, *gorm.DB, uuid.UUID) (bool, error), id uuid.UUID, entity string) error {
	if id == uuid.Nil {
		return apierr.Precondition("%s is not persisted", entity)
	}
	exists, err := existsByID(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("checking %s existence: %w", entity, err)
	}
	if !exists {
		return apierr.Precondition("%s %s is not persisted", entity, id)
	}
	return nil
}

// validateEntity converts an entity-level blank-field error into the
// validation kind.
func validateEntity(err error) error {
	if err == nil {
		return nil
	}
	var blank *types.BlankFieldError
	if errors.As(err, &blank) {
		return apierr.Validation("%s", blank.Error())
	}
	return err
}
