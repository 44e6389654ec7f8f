// Package clients persists OAuth client registrations with their embedded secrets.
//
// The repository performs no ownership checks. Callers deleting a user owned
// client must verify the owner first.
package clients

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/models"
)

// OAuth grant types a client may be registered with.
const (
	GrantTypePassword          = "password"
	GrantTypeClientCredentials = "client_credentials"
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeImplicit          = "implicit"
	GrantTypeRefreshToken      = "refresh_token"
)

const (
	idQueryPattern    = "id = ?"
	ownerQueryPattern = "owner = ?"
)

var (
	// ErrClientNil is returned when Create is called without a client.
	ErrClientNil = fmt.Errorf("client is nil: %w", collection.ErrInvalid)
	// ErrClientIDEmpty is returned when creating a client without an id.
	ErrClientIDEmpty = fmt.Errorf("client id cannot be empty: %w", collection.ErrInvalid)
)

// Repository stores clients in the clients collection.
type Repository struct {
	acc *collection.Accessor
}

// New returns a Repository using acc.
func New(acc *collection.Accessor) *Repository {
	return &Repository{acc: acc}
}

// FindMany returns the clients owned by owner, or every client when owner is empty.
// The order is unspecified.
func (r *Repository) FindMany(ctx context.Context, owner string) ([]models.Client, error) {
	clients, err := r.acc.Collection(ctx, collection.Clients)
	if err != nil {
		return nil, err
	}

	if owner != "" {
		clients = clients.Where(ownerQueryPattern, owner)
	}

	var list []models.Client
	result := clients.Find(&list)
	if result.Error != nil {
		return nil, collection.Translate(result.Error)
	}

	return list, nil
}

// FindOne returns the client with id, or nil if there is none.
func (r *Repository) FindOne(ctx context.Context, id string) (*models.Client, error) {
	clients, err := r.acc.Collection(ctx, collection.Clients)
	if err != nil {
		return nil, err
	}

	var client models.Client
	result := clients.Where(idQueryPattern, id).Take(&client)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, collection.Translate(result.Error)
	}

	return &client, nil
}

// Create inserts client. The id must be set and secrets must already be hashed.
// Expirations are stored in UTC.
func (r *Repository) Create(ctx context.Context, client *models.Client) error {
	if client == nil {
		return ErrClientNil
	}
	if client.ID == "" {
		return ErrClientIDEmpty
	}

	for i := range client.Secrets {
		client.Secrets[i].Expiration = client.Secrets[i].Expiration.UTC()
	}

	clients, err := r.acc.Collection(ctx, collection.Clients)
	if err != nil {
		return err
	}

	return collection.Translate(clients.Create(client).Error)
}

// DeleteOne removes the client with id. Deleting an unknown id is not an error.
func (r *Repository) DeleteOne(ctx context.Context, id string) error {
	clients, err := r.acc.Collection(ctx, collection.Clients)
	if err != nil {
		return err
	}

	result := clients.Where(idQueryPattern, id).Delete(&models.Client{})

	return collection.Translate(result.Error)
}
