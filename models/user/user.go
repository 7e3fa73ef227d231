package user

import (
	"time"
)

// User represents an account that owns bookings. Guest bookings are all
// attached to one sentinel account with Role = "guest" and a reserved email
// address; that account has no password hash and can never log in.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(36);not null;unique" json:"uuid"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	FullName     string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	PasswordHash *string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// IsGuest reports whether this is the guest sentinel account.
func (u *User) IsGuest() bool {
	return u.Role == "guest"
}

// CanAuthenticate reports whether the account may log in with a password.
func (u *User) CanAuthenticate() bool {
	return !u.IsGuest() && u.PasswordHash != nil && *u.PasswordHash != ""
}
