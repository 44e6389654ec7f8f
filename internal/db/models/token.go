package models

// UserToken is an authentication token (recovery codes, authenticator keys,
// external access tokens) stored for a user. There is at most one row per
// (UserID, LoginProvider, Name).
type UserToken struct {
	UserID        string `gorm:"primaryKey;size:64"`
	LoginProvider string `gorm:"primaryKey;size:128"`
	Name          string `gorm:"primaryKey;size:128"`
	Value         string `gorm:"type:text"`
}

// TableName specifies the collection name for the UserToken model.
func (UserToken) TableName() string {
	return "user_tokens"
}
