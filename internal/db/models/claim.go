package models

// Claim is a typed key/value fact asserted about a user or role.
type Claim struct {
	Type  string `json:"type"  yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// UserClaim is a claim row owned by a user.
type UserClaim struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UserID     string `gorm:"size:64;not null;index:idx_user_claims_user_id"`
	ClaimType  string `gorm:"size:128;index:idx_user_claims_claim"`
	ClaimValue string `gorm:"size:512;index:idx_user_claims_claim"`
}

// TableName specifies the collection name for the UserClaim model.
func (UserClaim) TableName() string {
	return "user_claims"
}

// ToClaim returns the claim carried by the row.
func (c UserClaim) ToClaim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}

// RoleClaim is a claim row owned by a role.
type RoleClaim struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	RoleID     string `gorm:"size:64;not null;index:idx_role_claims_role_id"`
	ClaimType  string `gorm:"size:256"`
	ClaimValue string `gorm:"size:1024"`
}

// TableName specifies the collection name for the RoleClaim model.
func (RoleClaim) TableName() string {
	return "role_claims"
}

// ToClaim returns the claim carried by the row.
func (c RoleClaim) ToClaim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}
