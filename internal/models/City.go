package models

import (
	"time"
)

// City is a second-level region (municipality). Like Province, the
// coordinate pair is unique across the table.
type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string  `gorm:"size:100;not null" json:"name"`
	Latitude  float64 `gorm:"not null;uniqueIndex:idx_cities_lat_lon" json:"latitude"`
	Longitude float64 `gorm:"not null;uniqueIndex:idx_cities_lat_lon" json:"longitude"`

	ProvinceID uint     `gorm:"not null;index" json:"province_id"`
	Province   Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`

	// Persons keep living when their city is removed; the service clears
	// city_id before deleting.
	Persons []Person `gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"persons,omitempty"`
}
