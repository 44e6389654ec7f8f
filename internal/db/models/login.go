package models

// UserLogin links an external identity (provider + key) to a user.
// The pair (LoginProvider, ProviderKey) identifies exactly one external identity.
type UserLogin struct {
	LoginProvider       string `gorm:"primaryKey;size:128"`
	ProviderKey         string `gorm:"primaryKey;size:128"`
	ProviderDisplayName string `gorm:"size:256"`
	UserID              string `gorm:"size:64;not null;index:idx_user_logins_user_id"`
}

// TableName specifies the collection name for the UserLogin model.
func (UserLogin) TableName() string {
	return "user_logins"
}

// LoginInfo is the external login as seen by the membership framework.
type LoginInfo struct {
	LoginProvider       string
	ProviderKey         string
	ProviderDisplayName string
}

// Info strips the owner from the login row.
func (l UserLogin) Info() LoginInfo {
	return LoginInfo{
		LoginProvider:       l.LoginProvider,
		ProviderKey:         l.ProviderKey,
		ProviderDisplayName: l.ProviderDisplayName,
	}
}
