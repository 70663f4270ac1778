package models

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleModerator = "moderator"
)

// ValidRole reports whether role is one of the known person roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}

// Person is an application user. Password always holds a bcrypt hash and is
// never serialized; the only read path exposing it is
// PersonService.FindByEmailForAuth.
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string     `gorm:"size:50;not null" json:"firstName"`
	LastName  string     `gorm:"size:50;not null" json:"lastName"`
	Email     string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	BirthDate *time.Time `gorm:"type:date" json:"birthDate"`
	Role      string     `gorm:"size:20;not null;default:user" json:"role"`

	CityID *uint `json:"cityId"`
	City   *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}
