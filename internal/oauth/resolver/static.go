package resolver

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDuplicateClient is returned when two static clients share an id.
	ErrDuplicateClient = errors.New("duplicate static client")
	// ErrEmptyClientID is returned for a static client without an id.
	ErrEmptyClientID = errors.New("static client without id")
)

// StaticSource serves clients defined in configuration. It is immutable after construction.
type StaticSource struct {
	clients map[string]*Descriptor
}

// NewStaticSource indexes clients by id.
func NewStaticSource(clients []Descriptor) (*StaticSource, error) {
	s := &StaticSource{clients: make(map[string]*Descriptor, len(clients))}

	for i := range clients {
		d := clients[i]
		if d.ClientID == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyClientID, i)
		}
		if _, ok := s.clients[d.ClientID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, d.ClientID)
		}
		s.clients[d.ClientID] = &d
	}

	return s, nil
}

// Name implements named.
func (*StaticSource) Name() string {
	return "static"
}

// FindClientByID implements Source.
func (s *StaticSource) FindClientByID(_ context.Context, clientID string) (*Descriptor, error) {
	return s.clients[clientID], nil
}

// ClientURI returns the home page of the static client id, used as the
// default redirect target after login and logout.
func (s *StaticSource) ClientURI(clientID string) (string, bool) {
	d, ok := s.clients[clientID]
	if !ok || d.ClientURI == "" {
		return "", false
	}

	return d.ClientURI, true
}

// Len returns the number of static clients.
func (s *StaticSource) Len() int {
	return len(s.clients)
}
