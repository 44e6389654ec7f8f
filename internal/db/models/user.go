package models

import "time"

// User represents a user account managed by the membership framework.
// NormalizedUserName and NormalizedEmail are the lookup keys and are unique
// across all users.
type User struct {
	// ID is the opaque identifier of the user. It never changes once created.
	ID string `gorm:"primaryKey;size:64"`
	// UserName is the name as entered by the user.
	UserName string `gorm:"size:256"`
	// NormalizedUserName is the upper-cased user name used for lookups.
	NormalizedUserName string `gorm:"size:256;uniqueIndex:idx_users_normalized_user_name"`
	// Email is the email address as entered by the user.
	Email string `gorm:"size:256"`
	// NormalizedEmail is the upper-cased email used for lookups.
	NormalizedEmail string `gorm:"size:256;uniqueIndex:idx_users_normalized_email"`
	// EmailConfirmed is set once the user confirmed the email address.
	EmailConfirmed bool
	// PasswordHash is the framework owned password hash.
	PasswordHash string `gorm:"size:512"`
	// SecurityStamp changes whenever the credentials of the user change.
	SecurityStamp string `gorm:"size:256"`
	// ConcurrencyStamp is stored as is. Updates are last-writer-wins.
	ConcurrencyStamp string `gorm:"size:256"`

	PhoneNumber          string `gorm:"size:64"`
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	// LockoutEnd is the instant until which the user is locked out, nil if not locked.
	LockoutEnd        *time.Time
	LockoutEnabled    bool
	AccessFailedCount int
}

// TableName specifies the collection name for the User model.
func (User) TableName() string {
	return "users"
}
