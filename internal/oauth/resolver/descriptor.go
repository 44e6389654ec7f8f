package resolver

import (
	"time"

	"github.com/GhostNetwork/account/internal/secret"
)

// Descriptor is the client as seen by the authorization server. Only hashed
// secrets are carried. Descriptors returned by a Source must not be modified.
type Descriptor struct {
	ClientID                    string             `json:"clientId" yaml:"clientId"`
	ClientName                  string             `json:"clientName" yaml:"clientName"`
	AllowedGrantTypes           []string           `json:"allowedGrantTypes" yaml:"allowedGrantTypes"`
	AllowedScopes               []string           `json:"allowedScopes" yaml:"allowedScopes"`
	Secrets                     []SecretDescriptor `json:"secrets,omitempty" yaml:"secrets,omitempty"`
	RedirectURIs                []string           `json:"redirectUris,omitempty" yaml:"redirectUris,omitempty"`
	PostLogoutRedirectURIs      []string           `json:"postLogoutRedirectUris,omitempty" yaml:"postLogoutRedirectUris,omitempty"`
	AllowedCorsOrigins          []string           `json:"allowedCorsOrigins,omitempty" yaml:"allowedCorsOrigins,omitempty"`
	ClientURI                   string             `json:"clientUri,omitempty" yaml:"clientUri,omitempty"`
	AllowAccessTokensViaBrowser bool               `json:"allowAccessTokensViaBrowser" yaml:"allowAccessTokensViaBrowser"`
}

// SecretDescriptor is a hashed client secret. A nil Expiration never expires.
type SecretDescriptor struct {
	Value      string     `json:"value" yaml:"value"`
	Expiration *time.Time `json:"expiration,omitempty" yaml:"expiration,omitempty"`
}

// Expired reports whether the secret is no longer valid at now.
func (s SecretDescriptor) Expired(now time.Time) bool {
	return s.Expiration != nil && !now.Before(*s.Expiration)
}

// MatchSecret reports whether plaintext matches one of the secrets that are
// still valid at now. Both stored hash formats are accepted.
func (d *Descriptor) MatchSecret(plaintext string, now time.Time) (bool, error) {
	for _, s := range d.Secrets {
		if s.Expired(now) {
			continue
		}

		ok, err := secret.Verify(plaintext, s.Value)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
