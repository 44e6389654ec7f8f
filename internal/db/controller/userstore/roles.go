package userstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
)

const (
	roleNameQueryPattern   = "normalized_name = ?"
	roleIDQueryPattern     = "role_id = ?"
	membershipQueryPattern = "user_id = ? AND role_id = ?"
)

// AddToRole makes user a member of the role with the normalized name.
func (s *Store) AddToRole(ctx context.Context, user *models.User, normalizedRoleName string) error {
	if user == nil {
		return ErrUserNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		role, err := findRole(tx, normalizedRoleName)
		if err != nil {
			return err
		}

		var count int64
		result := tx.Table(collection.UserRoles).Where(membershipQueryPattern, user.ID, role.ID).Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrAlreadyInRole, role.Name)
		}

		return tx.Table(collection.UserRoles).Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error
	})
}

// RemoveFromRole ends the membership of user in the role with the normalized name.
func (s *Store) RemoveFromRole(ctx context.Context, user *models.User, normalizedRoleName string) error {
	if user == nil {
		return ErrUserNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		role, err := findRole(tx, normalizedRoleName)
		if err != nil {
			return err
		}

		return tx.Table(collection.UserRoles).
			Where(membershipQueryPattern, user.ID, role.ID).
			Delete(&models.UserRole{}).Error
	})
}

// IsInRole reports whether user is a member of the role with the normalized name.
func (s *Store) IsInRole(ctx context.Context, user *models.User, normalizedRoleName string) (bool, error) {
	if user == nil {
		return false, ErrUserNil
	}

	db, err := s.acc.Session(ctx)
	if err != nil {
		return false, err
	}

	role, err := findRole(db, normalizedRoleName)
	if err != nil {
		return false, collection.Translate(err)
	}

	var count int64
	result := db.Table(collection.UserRoles).Where(membershipQueryPattern, user.ID, role.ID).Count(&count)
	if result.Error != nil {
		return false, collection.Translate(result.Error)
	}

	return count > 0, nil
}

// GetRoles returns the names of the roles user is a member of.
func (s *Store) GetRoles(ctx context.Context, user *models.User) ([]string, error) {
	if user == nil {
		return nil, ErrUserNil
	}

	db, err := s.acc.Session(ctx)
	if err != nil {
		return nil, err
	}

	var roleIDs []string
	result := db.Table(collection.UserRoles).Where(userIDQueryPattern, user.ID).Pluck("role_id", &roleIDs)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	names := []string{}
	if len(roleIDs) == 0 {
		return names, nil
	}

	result = db.Table(collection.Roles).Where(idInQueryPattern, roleIDs).Order("name").Pluck("name", &names)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return names, nil
}

// GetUsersInRole returns the members of the role with the normalized name.
func (s *Store) GetUsersInRole(ctx context.Context, normalizedRoleName string) ([]models.User, error) {
	db, err := s.acc.Session(ctx)
	if err != nil {
		return nil, err
	}

	role, err := findRole(db, normalizedRoleName)
	if err != nil {
		return nil, collection.Translate(err)
	}

	var userIDs []string
	result := db.Table(collection.UserRoles).Where(roleIDQueryPattern, role.ID).Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return findUsers(db, userIDs)
}

func findRole(db *gorm.DB, normalizedName string) (*models.Role, error) {
	var role models.Role
	result := db.Table(collection.Roles).Where(roleNameQueryPattern, normalizedName).Take(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, normalizedName)
		}
		return nil, result.Error
	}

	return &role, nil
}
