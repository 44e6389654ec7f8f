package models

import "time"

// Client is an OAuth client registration. Secrets are embedded in the client
// document and never normalized into their own collection. A client is never
// updated in place: rotating a secret creates a new client and deletes the old one.
type Client struct {
	// ID is the OAuth client_id.
	ID string `gorm:"primaryKey;size:64"`
	// Name is the display name, for user owned clients the description entered by the user.
	Name string `gorm:"size:256"`
	// GrantType is the single OAuth grant type the client may use.
	GrantType string `gorm:"size:64"`
	// Owner is the id of the owning user, empty for system clients.
	Owner string `gorm:"size:64;index:idx_clients_owner"`
	// Secrets holds the one-way derived secrets with their absolute expiration.
	Secrets []Secret `gorm:"type:text;serializer:json"`
}

// TableName specifies the collection name for the Client model.
func (Client) TableName() string {
	return "clients"
}

// Secret is a hashed, time bounded client credential. Value is never the plaintext.
type Secret struct {
	Value      string    `json:"value"`
	Expiration time.Time `json:"expiration"`
}
