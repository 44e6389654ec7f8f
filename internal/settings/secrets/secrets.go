// Package secrets manages the long-lived API secrets users create for
// themselves in their account settings.
//
// Each secret is a dedicated OAuth client owned by the user, registered for the
// password grant. The plaintext is returned once by Create and Rotate and only
// its hash is stored. Every operation on an existing secret checks ownership
// before touching the client repository.
package secrets

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/GhostNetwork/account/internal/config"
	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/controller/clients"
	"github.com/GhostNetwork/account/internal/db/models"
	"github.com/GhostNetwork/account/internal/secret"
)

const defaultValidityMonths = 3

var (
	// ErrForbidden is returned when the secret belongs to another user.
	ErrForbidden = errors.New("secret belongs to another user")
	// ErrNotFound is returned when no client with the id exists.
	ErrNotFound = fmt.Errorf("secret: %w", collection.ErrNotFound)
	// ErrOwnerEmpty is returned when an operation is called without an owner.
	ErrOwnerEmpty = fmt.Errorf("owner cannot be empty: %w", collection.ErrInvalid)
)

// Repository is the part of the client repository the service needs.
type Repository interface {
	FindMany(ctx context.Context, owner string) ([]models.Client, error)
	FindOne(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	DeleteOne(ctx context.Context, id string) error
}

// CreateRequest asks for a new secret.
type CreateRequest struct {
	Owner       string `validate:"required,max=64"`
	Description string `validate:"required,max=256"`
}

// Created is a freshly issued secret. Plaintext is not stored anywhere.
type Created struct {
	ClientID    string
	Description string
	Plaintext   string
	Expiration  time.Time
}

// Summary describes a stored secret without any secret material.
type Summary struct {
	ClientID    string
	Description string
	Expiration  time.Time
}

// Service issues, lists and revokes user owned secrets.
type Service struct {
	repo     Repository
	hasher   secret.Hasher
	validate *validator.Validate
	months   int
	length   int
	now      func() time.Time

	invalidate func(clientID string)
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source used for expirations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithInvalidator registers fn to be called with the id of every revoked
// secret, after it is removed from the repository.
func WithInvalidator(fn func(clientID string)) Option {
	return func(s *Service) {
		s.invalidate = fn
	}
}

// New returns a Service storing secrets in repo, hashed with hasher.
func New(repo Repository, hasher secret.Hasher, cfg config.Secrets, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
		months:   cfg.ValidityMonths,
		length:   cfg.Length,
		now:      time.Now,
	}
	if s.hasher == nil {
		s.hasher = secret.SHA256{}
	}
	if s.months <= 0 {
		s.months = defaultValidityMonths
	}
	if s.length <= 0 {
		s.length = secret.DefaultLength
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create issues a new secret for the owner.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", collection.ErrInvalid, err)
	}

	plaintext, err := secret.NewPlaintext(s.length)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	expiration := s.now().UTC().AddDate(0, s.months, 0)
	client := &models.Client{
		ID:        uuid.NewString(),
		Name:      req.Description,
		GrantType: clients.GrantTypePassword,
		Owner:     req.Owner,
		Secrets:   []models.Secret{{Value: hashed, Expiration: expiration}},
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create secret: %w", err)
	}

	return &Created{
		ClientID:    client.ID,
		Description: client.Name,
		Plaintext:   plaintext,
		Expiration:  expiration,
	}, nil
}

// List returns one entry per stored secret of the owner, soonest expiration first.
func (s *Service) List(ctx context.Context, owner string) ([]Summary, error) {
	if owner == "" {
		return nil, ErrOwnerEmpty
	}

	owned, err := s.repo.FindMany(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}

	list := []Summary{}
	for _, c := range owned {
		for _, sec := range c.Secrets {
			list = append(list, Summary{ClientID: c.ID, Description: c.Name, Expiration: sec.Expiration})
		}
	}

	slices.SortFunc(list, func(a, b Summary) int {
		return cmp.Or(a.Expiration.Compare(b.Expiration), cmp.Compare(a.ClientID, b.ClientID))
	})

	return list, nil
}

// Get returns the secret clientID if it belongs to owner.
func (s *Service) Get(ctx context.Context, owner, clientID string) (*Summary, error) {
	client, err := s.owned(ctx, owner, clientID)
	if err != nil {
		return nil, err
	}

	return summarize(client), nil
}

// Delete revokes the secret clientID if it belongs to owner.
func (s *Service) Delete(ctx context.Context, owner, clientID string) error {
	if _, err := s.owned(ctx, owner, clientID); err != nil {
		return err
	}

	if err := s.repo.DeleteOne(ctx, clientID); err != nil {
		return fmt.Errorf("delete secret %s: %w", clientID, err)
	}
	s.revoked(clientID)

	return nil
}

// Rotate issues a replacement for the secret clientID with the same
// description and then revokes the old one. If revoking fails the new secret
// is still returned together with the error.
func (s *Service) Rotate(ctx context.Context, owner, clientID string) (*Created, error) {
	client, err := s.owned(ctx, owner, clientID)
	if err != nil {
		return nil, err
	}

	created, err := s.Create(ctx, CreateRequest{Owner: owner, Description: client.Name})
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteOne(ctx, clientID); err != nil {
		return created, fmt.Errorf("revoke rotated secret %s: %w", clientID, err)
	}
	s.revoked(clientID)

	return created, nil
}

func (s *Service) revoked(clientID string) {
	if s.invalidate != nil {
		s.invalidate(clientID)
	}
}

func (s *Service) owned(ctx context.Context, owner, clientID string) (*models.Client, error) {
	if owner == "" {
		return nil, ErrOwnerEmpty
	}

	client, err := s.repo.FindOne(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("find secret %s: %w", clientID, err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clientID)
	}
	if client.Owner != owner {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, clientID)
	}

	return client, nil
}

func summarize(client *models.Client) *Summary {
	sum := &Summary{ClientID: client.ID, Description: client.Name}
	if len(client.Secrets) > 0 {
		sum.Expiration = client.Secrets[0].Expiration
	}

	return sum
}
