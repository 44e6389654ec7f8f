package resolver

import (
	"context"
	"slices"

	"github.com/GhostNetwork/account/internal/db/models"
)

// DefaultScopes are granted to persisted clients when no scopes are configured.
var DefaultScopes = []string{"openid", "profile", "api"} //nolint:gochecknoglobals

// ClientFinder loads a persisted client, nil if absent.
type ClientFinder interface {
	FindOne(ctx context.Context, clientID string) (*models.Client, error)
}

// PersistedSource serves clients from the client repository.
type PersistedSource struct {
	finder ClientFinder
	scopes []string
}

// NewPersistedSource returns a source over finder granting scopes to every client.
func NewPersistedSource(finder ClientFinder, scopes []string) *PersistedSource {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	return &PersistedSource{finder: finder, scopes: slices.Clone(scopes)}
}

// Name implements named.
func (*PersistedSource) Name() string {
	return "persisted"
}

// FindClientByID implements Source.
func (p *PersistedSource) FindClientByID(ctx context.Context, clientID string) (*Descriptor, error) {
	client, err := p.finder.FindOne(ctx, clientID)
	if err != nil || client == nil {
		return nil, err
	}

	return p.describe(client), nil
}

func (p *PersistedSource) describe(client *models.Client) *Descriptor {
	secrets := make([]SecretDescriptor, 0, len(client.Secrets))
	for _, s := range client.Secrets {
		expiration := s.Expiration
		secrets = append(secrets, SecretDescriptor{Value: s.Value, Expiration: &expiration})
	}

	return &Descriptor{
		ClientID:          client.ID,
		ClientName:        client.Name,
		AllowedGrantTypes: []string{client.GrantType},
		AllowedScopes:     slices.Clone(p.scopes),
		Secrets:           secrets,
	}
}
