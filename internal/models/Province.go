package models

import (
	"time"
)

// Province is a first-level administrative region. The (latitude, longitude)
// pair is unique across all provinces and is the natural key the seeder
// dedups on.
type Province struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string  `gorm:"size:100;not null" json:"name"`
	Latitude  float64 `gorm:"not null;uniqueIndex:idx_provinces_lat_lon" json:"latitude"`
	Longitude float64 `gorm:"not null;uniqueIndex:idx_provinces_lat_lon" json:"longitude"`

	CountryID uint    `gorm:"not null;index" json:"country_id"`
	Country   Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`

	Cities []City `gorm:"foreignKey:ProvinceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"cities,omitempty"`
}
