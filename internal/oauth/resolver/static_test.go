package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	s, err := NewStaticSource([]Descriptor{
		{ClientID: "spa", ClientName: "SPA", ClientURI: "http://localhost:4200/"},
		{ClientID: "cli", ClientName: "CLI"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	d, err := s.FindClientByID(context.Background(), "spa")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "SPA", d.ClientName)

	// An unknown id is absent, not an error.
	d, err = s.FindClientByID(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, d)

	uri, ok := s.ClientURI("spa")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:4200/", uri)

	_, ok = s.ClientURI("cli")
	assert.False(t, ok)
	_, ok = s.ClientURI("unknown")
	assert.False(t, ok)
}

func TestStaticSourceErrors(t *testing.T) {
	_, err := NewStaticSource([]Descriptor{{ClientID: "a"}, {ClientID: "a"}})
	require.ErrorIs(t, err, ErrDuplicateClient)

	_, err = NewStaticSource([]Descriptor{{ClientName: "nameless"}})
	require.ErrorIs(t, err, ErrEmptyClientID)
}

func TestLoadStaticFileJSON(t *testing.T) {
	clients, err := LoadStaticFile(filepath.Join("..", "..", "..", "etc", "clients.json"))
	require.NoError(t, err)
	require.Len(t, clients, 2)

	spa := clients[0]
	assert.Equal(t, "angular_spa", spa.ClientID)
	assert.Equal(t, []string{"implicit"}, spa.AllowedGrantTypes)
	assert.Equal(t, []string{"openid", "profile", "api"}, spa.AllowedScopes)
	assert.Equal(t, []string{"http://localhost:4200/auth-callback"}, spa.RedirectURIs)
	assert.Equal(t, "http://localhost:4200/", spa.ClientURI)
	assert.True(t, spa.AllowAccessTokensViaBrowser)
}

func TestLoadStaticFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- clientId: tool
  clientName: Tool
  allowedGrantTypes: [client_credentials]
  allowedScopes: [api]
  secrets:
    - value: K7gNU3sdo+OL0wNhqoVWhr3g6s1xYv72ol/pe/Unols=
      expiration: 2030-01-01T00:00:00Z
`), 0o600))

	clients, err := LoadStaticFile(path)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "tool", clients[0].ClientID)
	require.Len(t, clients[0].Secrets, 1)
	require.NotNil(t, clients[0].Secrets[0].Expiration)
	assert.Equal(t, 2030, clients[0].Secrets[0].Expiration.Year())
}

func TestLoadStaticFileErrors(t *testing.T) {
	_, err := LoadStaticFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"clientId":"a","unknownField":1}]`), 0o600))
	_, err = LoadStaticFile(path)
	require.Error(t, err)
}
