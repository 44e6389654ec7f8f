// Package userstore persists users and their claims, logins, tokens and role
// memberships for the membership framework.
package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
	"github.com/GhostNetwork/account/internal/identity"
)

const (
	idQueryPattern       = "id = ?"
	idInQueryPattern     = "id IN ?"
	userIDQueryPattern   = "user_id = ?"
	userNameQueryPattern = "normalized_user_name = ?"
	emailQueryPattern    = "normalized_email = ?"
	duplicateUserPattern = "id = ? OR normalized_user_name = ? OR normalized_email = ?"
)

var (
	// ErrUserNil is returned when an operation is called without a user.
	ErrUserNil = fmt.Errorf("user is nil: %w", collection.ErrInvalid)
	// ErrUserExists is returned when the id, user name or email of a new user is taken.
	ErrUserExists = fmt.Errorf("user already exists: %w", collection.ErrConflict)
	// ErrUserNotFound is returned when updating a user that does not exist.
	ErrUserNotFound = fmt.Errorf("user: %w", collection.ErrNotFound)
	// ErrRoleNotFound is returned when a membership operation names an unknown role.
	ErrRoleNotFound = fmt.Errorf("role: %w", collection.ErrNotFound)
	// ErrAlreadyInRole is returned when adding a user to a role twice.
	ErrAlreadyInRole = fmt.Errorf("user already in role: %w", collection.ErrConflict)
)

var _ identity.Users = (*Store)(nil)

// Store implements identity.Users on top of the account collections.
type Store struct {
	acc *collection.Accessor
}

// New returns a Store using acc.
func New(acc *collection.Accessor) *Store {
	return &Store{acc: acc}
}

// Create inserts user. An empty id is replaced by a random UUID.
func (s *Store) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrUserNil
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		result := tx.Table(collection.Users).
			Where(duplicateUserPattern, user.ID, user.NormalizedUserName, user.NormalizedEmail).
			Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count > 0 {
			return ErrUserExists
		}

		return tx.Table(collection.Users).Create(user).Error
	})
}

// Delete removes user together with its claims, logins, tokens and role
// memberships. Deleting an unknown user is not an error.
func (s *Store) Delete(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrUserNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		owned := []struct {
			name  string
			model any
		}{
			{collection.UserClaims, &models.UserClaim{}},
			{collection.UserLogins, &models.UserLogin{}},
			{collection.UserTokens, &models.UserToken{}},
			{collection.UserRoles, &models.UserRole{}},
		}
		for _, o := range owned {
			if err := tx.Table(o.name).Where(userIDQueryPattern, user.ID).Delete(o.model).Error; err != nil {
				return err
			}
		}

		return tx.Table(collection.Users).Where(idQueryPattern, user.ID).Delete(&models.User{}).Error
	})
}

// Update replaces every field of the stored user except its id.
// The concurrency stamp is stored as given; the last writer wins.
func (s *Store) Update(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrUserNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		result := tx.Table(collection.Users).Where(idQueryPattern, user.ID).Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ErrUserNotFound, user.ID)
		}

		return tx.Table(collection.Users).
			Where(idQueryPattern, user.ID).
			Select("*").
			Omit("id").
			Updates(user).Error
	})
}

// FindByID returns the user with id, or nil if there is none.
func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, idQueryPattern, id)
}

// FindByNormalizedUserName returns the user with the normalized user name, or nil.
func (s *Store) FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error) {
	return s.findOne(ctx, userNameQueryPattern, normalizedUserName)
}

// FindByNormalizedEmail returns the user with the normalized email, or nil.
func (s *Store) FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	return s.findOne(ctx, emailQueryPattern, normalizedEmail)
}

// List returns all users ordered by normalized user name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	users, err := s.acc.Collection(ctx, collection.Users)
	if err != nil {
		return nil, err
	}

	var list []models.User
	result := users.Order("normalized_user_name").Find(&list)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return list, nil
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	users, err := s.acc.Collection(ctx, collection.Users)
	if err != nil {
		return nil, err
	}

	var user models.User
	result := users.Where(query, arg).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, collection.Translate(result.Error)
	}

	return &user, nil
}

// findUsers loads the users with the given ids, in no particular order.
func findUsers(db *gorm.DB, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	result := db.Table(collection.Users).Where(idInQueryPattern, ids).Find(&users)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return users, nil
}
