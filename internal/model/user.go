package model

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:120" json:"name"`
	Email    string   `gorm:"size:190;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"column:password_hash;not null" json:"-"`
	Role     UserRole `gorm:"size:16;not null;default:'USER'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
