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

type UserService interface {
	NewRegisteredUser(ctx context.Context, username, email string, contact *types.Contact, labels ...types.ContactLabel) (*types.User, error)
	NewUnregisteredUser(ctx context.Context, username, email string, contact *types.Contact, labels ...types.ContactLabel) (*types.User, error)
	Update(ctx context.Context, user *types.User) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	GetByUsername(ctx context.Context, username string) (*types.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	contactRepo repos.ContactRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, contactRepo repos.ContactRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, contactRepo: contactRepo}
}

func (us *userService) NewRegisteredUser(ctx context.Context, username, email string, contact *types.Contact, labels ...types.ContactLabel) (*types.User, error) {
	return us.newUser(ctx, username, email, true, contact, labels...)
}

func (us *userService) NewUnregisteredUser(ctx context.Context, username, email string, contact *types.Contact, labels ...types.ContactLabel) (*types.User, error) {
	return us.newUser(ctx, username, email, false, contact, labels...)
}

// newUser merges the given role labels into the contact's label set, saves
// the contact, then the user, all in one transaction. A user never exists
// without its contact.
func (us *userService) newUser(ctx context.Context, username, email string, registered bool, contact *types.Contact, labels ...types.ContactLabel) (*types.User, error) {
	if contact == nil {
		return nil, apierr.Validation("a user requires a contact")
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, apierr.Validation("user: username must not be blank")
	}
	if email == "" {
		return nil, apierr.Validation("user: email must not be blank")
	}
	if err := validateEntity(contact.Validate()); err != nil {
		return nil, err
	}
	contact.Labels = types.MergeLabels(contact.Labels, labels...)

	var user *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usernameTaken, err := us.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("checking username: %w", err)
		}
		if usernameTaken {
			return apierr.Validation("username %q already exists", username)
		}
		emailTaken, err := us.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("checking user email: %w", err)
		}
		if emailTaken {
			return apierr.Validation("user email %q already exists", email)
		}

		if contact.ID == uuid.Nil {
			contactEmailTaken, err := us.contactRepo.EmailExists(ctx, tx, contact.Email)
			if err != nil {
				return fmt.Errorf("checking contact email: %w", err)
			}
			if contactEmailTaken {
				return apierr.Validation("contact email %q already exists", contact.Email)
			}
			if _, err := us.contactRepo.Create(ctx, tx, contact); err != nil {
				return fmt.Errorf("creating contact: %w", err)
			}
		} else {
			if _, err := us.contactRepo.Update(ctx, tx, contact); err != nil {
				return fmt.Errorf("updating contact: %w", err)
			}
		}

		created, err := us.userRepo.Create(ctx, tx, &types.User{
			Username:   username,
			Email:      email,
			Registered: registered,
			ContactID:  contact.ID,
			Contact:    contact,
		})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		user = created
		return nil
	}); err != nil {
		us.log.Warn("User creation failed", "error", err)
		return nil, err
	}
	user.Contact = contact
	return user, nil
}

func (us *userService) Update(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, apierr.Validation("no user given")
	}
	var updated *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, us.userRepo.ExistsByID, user.ID, "user"); err != nil {
			return err
		}
		result, err := us.userRepo.Update(ctx, tx, user)
		if err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		updated = result
		return nil
	}); err != nil {
		us.log.Warn("User update failed", "error", err)
		return nil, err
	}
	return updated, nil
}

// Delete removes the user only. Its contact stays and is deleted explicitly
// through the contact service if wanted.
func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePersisted(ctx, tx, us.userRepo.ExistsByID, userID, "user"); err != nil {
			return err
		}
		return us.userRepo.Delete(ctx, tx, userID)
	}); err != nil {
		us.log.Warn("User delete failed", "error", err)
		return err
	}
	return nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", userID)
	}
	return user, nil
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	user, err := us.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user with email %q not found", email)
	}
	return user, nil
}

func (us *userService) GetByUsername(ctx context.Context, username string) (*types.User, error) {
	user, err := us.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("fetching user by username: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user with username %q not found", username)
	}
	return user, nil
}

func (us *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	return us.userRepo.EmailExists(ctx, nil, email)
}

func (us *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return us.userRepo.UsernameExists(ctx, nil, username)
}
