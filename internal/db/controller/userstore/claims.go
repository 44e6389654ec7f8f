package userstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
)

const (
	userClaimQueryPattern = "user_id = ? AND claim_type = ? AND claim_value = ?"
	claimQueryPattern     = "claim_type = ? AND claim_value = ?"
)

// AddClaims stores claims for user. Duplicates are kept.
func (s *Store) AddClaims(ctx context.Context, user *models.User, claims []models.Claim) error {
	if user == nil {
		return ErrUserNil
	}
	if len(claims) == 0 {
		return nil
	}

	rows := make([]models.UserClaim, 0, len(claims))
	for _, c := range claims {
		rows = append(rows, models.UserClaim{UserID: user.ID, ClaimType: c.Type, ClaimValue: c.Value})
	}

	userClaims, err := s.acc.Collection(ctx, collection.UserClaims)
	if err != nil {
		return err
	}

	return collection.Translate(userClaims.Create(&rows).Error)
}

// RemoveClaims deletes every row of user matching one of claims.
func (s *Store) RemoveClaims(ctx context.Context, user *models.User, claims []models.Claim) error {
	if user == nil {
		return ErrUserNil
	}
	if len(claims) == 0 {
		return nil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		for _, c := range claims {
			result := tx.Table(collection.UserClaims).
				Where(userClaimQueryPattern, user.ID, c.Type, c.Value).
				Delete(&models.UserClaim{})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// ReplaceClaim swaps the claim of user for newClaim. Nothing happens if user
// does not hold the claim.
func (s *Store) ReplaceClaim(ctx context.Context, user *models.User, claim, newClaim models.Claim) error {
	if user == nil {
		return ErrUserNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Table(collection.UserClaims).
			Where(userClaimQueryPattern, user.ID, claim.Type, claim.Value).
			Delete(&models.UserClaim{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		row := models.UserClaim{UserID: user.ID, ClaimType: newClaim.Type, ClaimValue: newClaim.Value}
		return tx.Table(collection.UserClaims).Create(&row).Error
	})
}

// GetClaims returns the claims of user in insertion order.
func (s *Store) GetClaims(ctx context.Context, user *models.User) ([]models.Claim, error) {
	if user == nil {
		return nil, ErrUserNil
	}

	userClaims, err := s.acc.Collection(ctx, collection.UserClaims)
	if err != nil {
		return nil, err
	}

	var rows []models.UserClaim
	result := userClaims.Where(userIDQueryPattern, user.ID).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	claims := make([]models.Claim, 0, len(rows))
	for _, r := range rows {
		claims = append(claims, r.ToClaim())
	}

	return claims, nil
}

// GetUsersForClaim returns every user holding claim.
func (s *Store) GetUsersForClaim(ctx context.Context, claim models.Claim) ([]models.User, error) {
	db, err := s.acc.Session(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	result := db.Table(collection.UserClaims).
		Where(claimQueryPattern, claim.Type, claim.Value).
		Distinct().
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return findUsers(db, ids)
}
