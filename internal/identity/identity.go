// Package identity defines the storage contracts the membership framework
// requires from the account database.
//
// The contracts are split the way the framework consumes them: core user
// CRUD, claims, external logins, authentication tokens and role membership
// for users, plus CRUD and claims for roles. Point lookups return a nil
// entity and a nil error when nothing matches. Operations that need a related
// entity to exist (adding a user to an unknown role) fail with an error
// wrapping collection.ErrNotFound.
package identity

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GhostNetwork/account/internal/db/models"
)

// Normalize returns the lookup key for user names, emails and role names.
func Normalize(s string) string {
	return cases.Upper(language.Und).String(s)
}

// UserStore is the core user persistence contract.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error)
	FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserClaimStore stores claims asserted about users.
type UserClaimStore interface {
	AddClaims(ctx context.Context, user *models.User, claims []models.Claim) error
	RemoveClaims(ctx context.Context, user *models.User, claims []models.Claim) error
	ReplaceClaim(ctx context.Context, user *models.User, claim, newClaim models.Claim) error
	GetClaims(ctx context.Context, user *models.User) ([]models.Claim, error)
	GetUsersForClaim(ctx context.Context, claim models.Claim) ([]models.User, error)
}

// UserLoginStore links external identities to users.
type UserLoginStore interface {
	AddLogin(ctx context.Context, user *models.User, login models.LoginInfo) error
	RemoveLogin(ctx context.Context, user *models.User, loginProvider, providerKey string) error
	FindLogin(ctx context.Context, loginProvider, providerKey string) (*models.UserLogin, error)
	FindLoginForUser(ctx context.Context, userID, loginProvider, providerKey string) (*models.UserLogin, error)
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*models.User, error)
	GetLogins(ctx context.Context, user *models.User) ([]models.LoginInfo, error)
}

// UserTokenStore stores authentication tokens, at most one per (user, provider, name).
type UserTokenStore interface {
	AddToken(ctx context.Context, token *models.UserToken) error
	RemoveToken(ctx context.Context, user *models.User, loginProvider, name string) error
	FindToken(ctx context.Context, user *models.User, loginProvider, name string) (*models.UserToken, error)
}

// UserRoleStore manages role membership by normalized role name.
type UserRoleStore interface {
	AddToRole(ctx context.Context, user *models.User, normalizedRoleName string) error
	RemoveFromRole(ctx context.Context, user *models.User, normalizedRoleName string) error
	IsInRole(ctx context.Context, user *models.User, normalizedRoleName string) (bool, error)
	GetRoles(ctx context.Context, user *models.User) ([]string, error)
	GetUsersInRole(ctx context.Context, normalizedRoleName string) ([]models.User, error)
}

// Users is the full user contract of the membership framework.
type Users interface {
	UserStore
	UserClaimStore
	UserLoginStore
	UserTokenStore
	UserRoleStore
}

// RoleStore is the core role persistence contract.
type RoleStore interface {
	Create(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	FindByID(ctx context.Context, id string) (*models.Role, error)
	FindByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
}

// RoleClaimStore stores claims asserted about roles.
type RoleClaimStore interface {
	AddClaim(ctx context.Context, role *models.Role, claim models.Claim) error
	RemoveClaim(ctx context.Context, role *models.Role, claim models.Claim) error
	GetClaims(ctx context.Context, role *models.Role) ([]models.Claim, error)
}

// Roles is the full role contract of the membership framework.
type Roles interface {
	RoleStore
	RoleClaimStore
}
