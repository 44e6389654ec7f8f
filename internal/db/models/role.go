package models

// Role represents a named role users can be a member of.
type Role struct {
	// ID is the opaque identifier of the role.
	ID string `gorm:"primaryKey;size:64"`
	// Name is the display name of the role.
	Name string `gorm:"size:256"`
	// NormalizedName is the upper-cased name used for lookups, unique across roles.
	NormalizedName   string `gorm:"size:256;uniqueIndex:idx_roles_normalized_name"`
	ConcurrencyStamp string `gorm:"size:256"`
}

// TableName specifies the collection name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// UserRole is the membership of a user in a role.
type UserRole struct {
	UserID string `gorm:"primaryKey;size:64"`
	RoleID string `gorm:"primaryKey;size:64;index:idx_user_roles_role_id"`
}

// TableName specifies the collection name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
