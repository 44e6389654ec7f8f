package userstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
)

const (
	loginQueryPattern        = "login_provider = ? AND provider_key = ?"
	userLoginQueryPattern    = "user_id = ? AND login_provider = ? AND provider_key = ?"
	loginProviderOrderColumn = "login_provider"
)

// AddLogin links the external login to user. An external identity can only
// be linked to one user.
func (s *Store) AddLogin(ctx context.Context, user *models.User, login models.LoginInfo) error {
	if user == nil {
		return ErrUserNil
	}

	userLogins, err := s.acc.Collection(ctx, collection.UserLogins)
	if err != nil {
		return err
	}

	row := models.UserLogin{
		LoginProvider:       login.LoginProvider,
		ProviderKey:         login.ProviderKey,
		ProviderDisplayName: login.ProviderDisplayName,
		UserID:              user.ID,
	}

	return collection.Translate(userLogins.Create(&row).Error)
}

// RemoveLogin unlinks the external login from user.
func (s *Store) RemoveLogin(ctx context.Context, user *models.User, loginProvider, providerKey string) error {
	if user == nil {
		return ErrUserNil
	}

	userLogins, err := s.acc.Collection(ctx, collection.UserLogins)
	if err != nil {
		return err
	}

	result := userLogins.
		Where(userLoginQueryPattern, user.ID, loginProvider, providerKey).
		Delete(&models.UserLogin{})

	return collection.Translate(result.Error)
}

// FindLogin returns the login row for the external identity, or nil.
func (s *Store) FindLogin(ctx context.Context, loginProvider, providerKey string) (*models.UserLogin, error) {
	return s.findLogin(ctx, loginQueryPattern, loginProvider, providerKey)
}

// FindLoginForUser returns the login row if the external identity belongs to userID, or nil.
func (s *Store) FindLoginForUser(ctx context.Context, userID, loginProvider, providerKey string) (*models.UserLogin, error) {
	return s.findLogin(ctx, userLoginQueryPattern, userID, loginProvider, providerKey)
}

// FindByLogin returns the user linked to the external identity, or nil.
func (s *Store) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*models.User, error) {
	login, err := s.FindLogin(ctx, loginProvider, providerKey)
	if err != nil || login == nil {
		return nil, err
	}

	return s.FindByID(ctx, login.UserID)
}

// GetLogins returns the external logins of user.
func (s *Store) GetLogins(ctx context.Context, user *models.User) ([]models.LoginInfo, error) {
	if user == nil {
		return nil, ErrUserNil
	}

	userLogins, err := s.acc.Collection(ctx, collection.UserLogins)
	if err != nil {
		return nil, err
	}

	var rows []models.UserLogin
	result := userLogins.Where(userIDQueryPattern, user.ID).Order(loginProviderOrderColumn).Find(&rows)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	logins := make([]models.LoginInfo, 0, len(rows))
	for _, r := range rows {
		logins = append(logins, r.Info())
	}

	return logins, nil
}

func (s *Store) findLogin(ctx context.Context, query string, args ...any) (*models.UserLogin, error) {
	userLogins, err := s.acc.Collection(ctx, collection.UserLogins)
	if err != nil {
		return nil, err
	}

	var login models.UserLogin
	result := userLogins.Where(query, args...).Take(&login)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, collection.Translate(result.Error)
	}

	return &login, nil
}
