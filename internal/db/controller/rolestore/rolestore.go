// Package rolestore persists roles and their claims for the membership framework.
package rolestore

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
	idQueryPattern        = "id = ?"
	nameQueryPattern      = "normalized_name = ?"
	roleIDQueryPattern    = "role_id = ?"
	roleClaimQueryPattern = "role_id = ? AND claim_type = ? AND claim_value = ?"
)

var (
	// ErrRoleNil is returned when an operation is called without a role.
	ErrRoleNil = fmt.Errorf("role is nil: %w", collection.ErrInvalid)
	// ErrRoleExists is returned when the id or normalized name of a new role is taken.
	ErrRoleExists = fmt.Errorf("role already exists: %w", collection.ErrConflict)
	// ErrRoleNotFound is returned when updating a role that does not exist.
	ErrRoleNotFound = fmt.Errorf("role: %w", collection.ErrNotFound)
)

var _ identity.Roles = (*Store)(nil)

// Store implements identity.Roles on top of the account collections.
type Store struct {
	acc *collection.Accessor
}

// New returns a Store using acc.
func New(acc *collection.Accessor) *Store {
	return &Store{acc: acc}
}

// Create inserts role. An empty id is replaced by a random UUID.
func (s *Store) Create(ctx context.Context, role *models.Role) error {
	if role == nil {
		return ErrRoleNil
	}
	if role.ID == "" {
		role.ID = uuid.NewString()
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		result := tx.Table(collection.Roles).
			Where("id = ? OR normalized_name = ?", role.ID, role.NormalizedName).
			Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrRoleExists, role.Name)
		}

		return tx.Table(collection.Roles).Create(role).Error
	})
}

// Delete removes role, its claims and every membership in it.
// Deleting an unknown role is not an error.
func (s *Store) Delete(ctx context.Context, role *models.Role) error {
	if role == nil {
		return ErrRoleNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Table(collection.RoleClaims).Where(roleIDQueryPattern, role.ID).Delete(&models.RoleClaim{}).Error; err != nil {
			return err
		}
		if err := tx.Table(collection.UserRoles).Where(roleIDQueryPattern, role.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		return tx.Table(collection.Roles).Where(idQueryPattern, role.ID).Delete(&models.Role{}).Error
	})
}

// Update replaces the name, normalized name and concurrency stamp of the stored role.
func (s *Store) Update(ctx context.Context, role *models.Role) error {
	if role == nil {
		return ErrRoleNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		result := tx.Table(collection.Roles).Where(idQueryPattern, role.ID).Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, role.ID)
		}

		return tx.Table(collection.Roles).
			Where(idQueryPattern, role.ID).
			Select("*").
			Omit("id").
			Updates(role).Error
	})
}

// FindByID returns the role with id, or nil if there is none.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Role, error) {
	return s.findOne(ctx, idQueryPattern, id)
}

// FindByNormalizedName returns the role with the normalized name, or nil.
func (s *Store) FindByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error) {
	return s.findOne(ctx, nameQueryPattern, normalizedName)
}

// List returns all roles ordered by normalized name.
func (s *Store) List(ctx context.Context) ([]models.Role, error) {
	roles, err := s.acc.Collection(ctx, collection.Roles)
	if err != nil {
		return nil, err
	}

	var list []models.Role
	result := roles.Order("normalized_name").Find(&list)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return list, nil
}

// AddClaim stores claim for role.
func (s *Store) AddClaim(ctx context.Context, role *models.Role, claim models.Claim) error {
	if role == nil {
		return ErrRoleNil
	}

	roleClaims, err := s.acc.Collection(ctx, collection.RoleClaims)
	if err != nil {
		return err
	}

	row := models.RoleClaim{RoleID: role.ID, ClaimType: claim.Type, ClaimValue: claim.Value}

	return collection.Translate(roleClaims.Create(&row).Error)
}

// RemoveClaim deletes every claim row of role matching claim.
func (s *Store) RemoveClaim(ctx context.Context, role *models.Role, claim models.Claim) error {
	if role == nil {
		return ErrRoleNil
	}

	roleClaims, err := s.acc.Collection(ctx, collection.RoleClaims)
	if err != nil {
		return err
	}

	result := roleClaims.
		Where(roleClaimQueryPattern, role.ID, claim.Type, claim.Value).
		Delete(&models.RoleClaim{})

	return collection.Translate(result.Error)
}

// GetClaims returns the claims of role in insertion order.
func (s *Store) GetClaims(ctx context.Context, role *models.Role) ([]models.Claim, error) {
	if role == nil {
		return nil, ErrRoleNil
	}

	roleClaims, err := s.acc.Collection(ctx, collection.RoleClaims)
	if err != nil {
		return nil, err
	}

	var rows []models.RoleClaim
	result := roleClaims.Where(roleIDQueryPattern, role.ID).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	claims := make([]models.Claim, 0, len(rows))
	for _, r := range rows {
		claims = append(claims, r.ToClaim())
	}

	return claims, nil
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*models.Role, error) {
	roles, err := s.acc.Collection(ctx, collection.Roles)
	if err != nil {
		return nil, err
	}

	var role models.Role
	result := roles.Where(query, arg).Take(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, collection.Translate(result.Error)
	}

	return &role, nil
}
