package models

import (
	"time"
)

// Country is the root of the geographic hierarchy.
// Name is unique; Code is unique only when present (NULLs don't collide).
type Country struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Code *string `gorm:"size:10;uniqueIndex" json:"code"`

	Provinces []Province `gorm:"foreignKey:CountryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"provinces,omitempty"`
}
