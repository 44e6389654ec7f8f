package userstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
)

const tokenQueryPattern = "user_id = ? AND login_provider = ? AND name = ?"

// ErrTokenNil is returned when AddToken is called without a token.
var ErrTokenNil = fmt.Errorf("token is nil: %w", collection.ErrInvalid)

// AddToken stores token, replacing an existing token with the same user,
// provider and name.
func (s *Store) AddToken(ctx context.Context, token *models.UserToken) error {
	if token == nil {
		return ErrTokenNil
	}

	return s.acc.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Table(collection.UserTokens).
			Where(tokenQueryPattern, token.UserID, token.LoginProvider, token.Name).
			Delete(&models.UserToken{})
		if result.Error != nil {
			return result.Error
		}

		return tx.Table(collection.UserTokens).Create(token).Error
	})
}

// RemoveToken deletes the token of user with the provider and name.
func (s *Store) RemoveToken(ctx context.Context, user *models.User, loginProvider, name string) error {
	if user == nil {
		return ErrUserNil
	}

	userTokens, err := s.acc.Collection(ctx, collection.UserTokens)
	if err != nil {
		return err
	}

	result := userTokens.Where(tokenQueryPattern, user.ID, loginProvider, name).Delete(&models.UserToken{})

	return collection.Translate(result.Error)
}

// FindToken returns the token of user with the provider and name, or nil.
func (s *Store) FindToken(ctx context.Context, user *models.User, loginProvider, name string) (*models.UserToken, error) {
	if user == nil {
		return nil, ErrUserNil
	}

	userTokens, err := s.acc.Collection(ctx, collection.UserTokens)
	if err != nil {
		return nil, err
	}

	var token models.UserToken
	result := userTokens.Where(tokenQueryPattern, user.ID, loginProvider, name).Take(&token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, collection.Translate(result.Error)
	}

	return &token, nil
}
